package tabular

import (
	"fmt"
	"strings"

	"edumanager/internal/models"
)

type pendingValue struct {
	row   int
	field string
	value string
}

// Validate checks rows against a field schema. On success number and date
// values are replaced in place by their canonical text; on failure no row is
// touched.
func Validate(rows []models.Row, schema []models.DataField) error {
	fields := SortFields(schema)
	if err := checkShape(rows, fields); err != nil {
		return err
	}

	var pending []pendingValue
	for i, row := range rows {
		for _, field := range fields {
			normalized, changed, err := checkCell(i, row, field)
			if err != nil {
				return err
			}
			if changed {
				pending = append(pending, pendingValue{row: i, field: field.Name, value: normalized})
			}
		}
	}

	for _, p := range pending {
		rows[p.row][p.field] = p.value
	}

	return nil
}

// Inspect reports every problem in rows instead of stopping at the first.
// Rows are not modified.
func Inspect(rows []models.Row, schema []models.DataField) []*ValidationError {
	fields := SortFields(schema)
	if err := checkShape(rows, fields); err != nil {
		return []*ValidationError{err}
	}

	var issues []*ValidationError
	for i, row := range rows {
		for _, field := range fields {
			if _, _, err := checkCell(i, row, field); err != nil {
				issues = append(issues, err)
			}
		}
	}
	return issues
}

func checkShape(rows []models.Row, fields []models.DataField) *ValidationError {
	if len(rows) == 0 {
		return &ValidationError{Reason: "No data found in the file"}
	}

	var missing []string
	for _, field := range fields {
		if !field.Required {
			continue
		}
		if _, ok := rows[0][field.Name]; !ok {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Missing: missing,
			Reason:  fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// checkCell validates one value and returns its canonical form when the
// field type has one.
func checkCell(index int, row models.Row, field models.DataField) (string, bool, *ValidationError) {
	value, ok := row[field.Name]
	if !ok || isEmpty(value) {
		if field.Required {
			return "", false, &ValidationError{
				Row:    index + 1,
				Field:  field.Name,
				Reason: fmt.Sprintf("Missing required value for %s", field.Name),
			}
		}
		return "", false, nil
	}

	switch field.Type {
	case models.FieldTypeNumber:
		normalized, err := NormalizeGrade(value)
		if err != nil {
			return "", false, &ValidationError{
				Row:    index + 1,
				Field:  field.Name,
				Reason: fmt.Sprintf("Invalid grade format for %s. Use format: 12-15-13.5 or 121513.5", field.Name),
				Value:  CellString(value),
				Err:    err,
			}
		}
		return normalized, true, nil
	case models.FieldTypeDate:
		normalized, err := NormalizeDate(value)
		if err != nil {
			return "", false, &ValidationError{
				Row:    index + 1,
				Field:  field.Name,
				Reason: fmt.Sprintf("Invalid date format for %s. Use DD/MM/YYYY or YYYY-MM-DD", field.Name),
				Value:  CellString(value),
				Err:    err,
			}
		}
		return normalized, true, nil
	}

	return "", false, nil
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
