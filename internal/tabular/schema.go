package tabular

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"edumanager/internal/models"
)

var ErrFieldIndex = errors.New("field index out of range")

// DefaultImportSchema is used to validate uploads for classes that have no
// schema configured.
func DefaultImportSchema() []models.DataField {
	return []models.DataField{
		{ID: "1", Name: models.StudentIDField, Type: models.FieldTypeText, Required: true, Order: 0},
		{ID: "2", Name: "First Name", Type: models.FieldTypeText, Required: true, Order: 1},
		{ID: "3", Name: "Last Name", Type: models.FieldTypeText, Required: true, Order: 2},
	}
}

// DefaultEditorSchema is offered as the starting point when editing a new class.
func DefaultEditorSchema() []models.DataField {
	return []models.DataField{
		{ID: "1", Name: "First Name", Type: models.FieldTypeText, Required: true, Order: 0},
		{ID: "2", Name: "Last Name", Type: models.FieldTypeText, Required: true, Order: 1},
		{ID: "3", Name: "Birth Date", Type: models.FieldTypeDate, Required: true, Order: 2},
		{ID: "4", Name: "Student Photo", Type: models.FieldTypePhoto, Required: false, Order: 3, HasPhoto: true},
	}
}

// SortFields returns a copy of fields ordered by Order.
func SortFields(fields []models.DataField) []models.DataField {
	sorted := make([]models.DataField, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// EffectiveSchema is the schema uploads and edits are validated against.
func EffectiveSchema(fields []models.DataField) []models.DataField {
	if len(fields) == 0 {
		return DefaultImportSchema()
	}
	return SortFields(fields)
}

// Renumber rewrites Order to follow slice position.
func Renumber(fields []models.DataField) []models.DataField {
	for i := range fields {
		fields[i].Order = i
	}
	return fields
}

// Reorder moves the field at from to position to.
func Reorder(fields []models.DataField, from, to int) ([]models.DataField, error) {
	sorted := SortFields(fields)
	if from < 0 || from >= len(sorted) || to < 0 || to >= len(sorted) {
		return nil, fmt.Errorf("%w: move %d to %d in %d fields", ErrFieldIndex, from, to, len(sorted))
	}

	moved := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]models.DataField{moved}, sorted[to:]...)...)

	return Renumber(sorted), nil
}

// CheckSchema enforces unique, non-empty field names and known types.
func CheckSchema(fields []models.DataField) error {
	seen := make(map[string]bool, len(fields))
	for i, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return &ValidationError{Row: 0, Field: fmt.Sprintf("fields[%d].name", i), Reason: "Field name cannot be empty"}
		}
		if seen[name] {
			return &ValidationError{Field: name, Reason: fmt.Sprintf("Duplicate field name: %s", name)}
		}
		seen[name] = true
		if !field.Type.Valid() {
			return &ValidationError{Field: name, Reason: fmt.Sprintf("Unknown field type %q for %s", field.Type, name)}
		}
	}
	return nil
}
