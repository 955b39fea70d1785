package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumanager/internal/models"
)

func names(fields []models.DataField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func orders(fields []models.DataField) []int {
	out := make([]int, len(fields))
	for i, f := range fields {
		out[i] = f.Order
	}
	return out
}

func TestEffectiveSchemaFallsBackToDefault(t *testing.T) {
	schema := EffectiveSchema(nil)

	assert.Equal(t, []string{"Student ID", "First Name", "Last Name"}, names(schema))
	for _, f := range schema {
		assert.True(t, f.Required)
		assert.Equal(t, models.FieldTypeText, f.Type)
	}
}

func TestReorder(t *testing.T) {
	fields := []models.DataField{
		{Name: "A", Order: 0},
		{Name: "B", Order: 1},
		{Name: "C", Order: 2},
		{Name: "D", Order: 3},
	}

	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 3, []string{"B", "C", "D", "A"}},
		{3, 0, []string{"D", "A", "B", "C"}},
		{1, 2, []string{"A", "C", "B", "D"}},
		{2, 2, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		got, err := Reorder(fields, tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, names(got))
		assert.Equal(t, []int{0, 1, 2, 3}, orders(got))
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, names(fields))
}

func TestReorderOutOfRange(t *testing.T) {
	fields := []models.DataField{{Name: "A"}}

	_, err := Reorder(fields, 0, 1)
	assert.ErrorIs(t, err, ErrFieldIndex)
	_, err = Reorder(fields, -1, 0)
	assert.ErrorIs(t, err, ErrFieldIndex)
}

func TestCheckSchema(t *testing.T) {
	assert.NoError(t, CheckSchema(DefaultEditorSchema()))

	err := CheckSchema([]models.DataField{{Name: "A", Type: "text"}, {Name: "A ", Type: "number"}})
	assert.ErrorContains(t, err, "Duplicate field name: A")

	err = CheckSchema([]models.DataField{{Name: " ", Type: "text"}})
	assert.ErrorContains(t, err, "cannot be empty")

	err = CheckSchema([]models.DataField{{Name: "Photo", Type: "image"}})
	assert.ErrorContains(t, err, "Unknown field type")
}
