package tabular

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"edumanager/internal/models"
)

// GridRow carries a stable identity so that "new" survives deletions above it.
type GridRow struct {
	ID     string     `json:"id"`
	Values models.Row `json:"values"`
	New    bool       `json:"new"`
}

// Grid is an in-progress edit of one imported file. Nothing reaches the file
// until Commit succeeds.
type Grid struct {
	SessionID    string             `json:"session_id"`
	FileID       string             `json:"file_id"`
	ClassID      string             `json:"class_id"`
	PrimaryField string             `json:"primary_field"`
	Columns      []string           `json:"columns"`
	Schema       []models.DataField `json:"schema"`
	Rows         []GridRow          `json:"rows"`
}

func NewGrid(file *models.ImportedFile, schema []models.DataField) *Grid {
	schema = EffectiveSchema(schema)

	g := &Grid{
		SessionID:    uuid.New().String(),
		FileID:       file.ID,
		ClassID:      file.ClassID,
		PrimaryField: primaryField(schema),
		Schema:       schema,
		Rows:         make([]GridRow, 0, len(file.Content)),
	}
	g.Columns = gridColumns(g.PrimaryField, file.Content, schema)

	for _, row := range file.Content {
		g.Rows = append(g.Rows, GridRow{ID: uuid.New().String(), Values: row.Clone()})
	}

	return g
}

// primaryField is Student ID when the schema has it, otherwise the first
// text field of the schema.
func primaryField(schema []models.DataField) string {
	for _, field := range schema {
		if field.Name == models.StudentIDField {
			return field.Name
		}
	}
	for _, field := range schema {
		if field.Type == models.FieldTypeText {
			return field.Name
		}
	}
	if len(schema) > 0 {
		return schema[0].Name
	}
	return models.StudentIDField
}

func gridColumns(primary string, rows []models.Row, schema []models.DataField) []string {
	columns := []string{primary}
	seen := map[string]bool{primary: true}
	for _, field := range schema {
		if !seen[field.Name] {
			seen[field.Name] = true
			columns = append(columns, field.Name)
		}
	}
	for _, col := range Columns(rows, nil) {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return columns
}

func (g *Grid) checkIndex(index int) error {
	if index < 0 || index >= len(g.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, len(g.Rows))
	}
	return nil
}

// SetCell replaces one value. The identifier of a row that was already
// committed is read-only.
func (g *Grid) SetCell(index int, field string, value interface{}) error {
	if err := g.checkIndex(index); err != nil {
		return err
	}
	row := &g.Rows[index]
	if field == g.PrimaryField && !row.New {
		return ErrReadOnlyCell
	}

	row.Values[field] = value
	g.addColumn(field)
	return nil
}

func (g *Grid) addColumn(field string) {
	for _, col := range g.Columns {
		if col == field {
			return
		}
	}
	g.Columns = append(g.Columns, field)
}

// AddRow appends a blank row marked as new.
func (g *Grid) AddRow() GridRow {
	values := make(models.Row, len(g.Columns))
	for _, col := range g.Columns {
		values[col] = ""
	}
	row := GridRow{ID: uuid.New().String(), Values: values, New: true}
	g.Rows = append(g.Rows, row)
	return row
}

func (g *Grid) DeleteRow(index int) error {
	if err := g.checkIndex(index); err != nil {
		return err
	}
	g.Rows = append(g.Rows[:index], g.Rows[index+1:]...)
	return nil
}

// NewRowIndices lists the positions of rows added in this session.
func (g *Grid) NewRowIndices() []int {
	indices := make([]int, 0)
	for i, row := range g.Rows {
		if row.New {
			indices = append(indices, i)
		}
	}
	return indices
}

func (g *Grid) Values() []models.Row {
	rows := make([]models.Row, len(g.Rows))
	for i, row := range g.Rows {
		rows[i] = row.Values.Clone()
	}
	return rows
}

// Commit returns the validated replacement content for the file. The grid
// itself is left untouched so a failed save can be corrected and retried.
func (g *Grid) Commit() ([]models.Row, error) {
	for i, row := range g.Rows {
		if !row.New {
			continue
		}
		if strings.TrimSpace(CellString(row.Values[g.PrimaryField])) == "" {
			return nil, &ValidationError{
				Row:    i + 1,
				Field:  g.PrimaryField,
				Reason: fmt.Sprintf("Please provide a %s for all new rows before saving", g.PrimaryField),
			}
		}
	}

	rows := g.Values()
	if err := Validate(rows, g.Schema); err != nil {
		return nil, err
	}
	return rows, nil
}
