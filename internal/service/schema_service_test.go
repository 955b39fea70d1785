package service

import (
	"context"
	"testing"

	"edumanager/internal/models"
	"edumanager/internal/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(fields []models.DataField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestSchemaService_GetDefault(t *testing.T) {
	classes := newFakeClassStore()
	classes.addClass("primary", "grade-5", nil)
	svc := NewSchemaService(classes)

	view, err := svc.Get(context.Background(), "grade-5")
	require.NoError(t, err)
	assert.True(t, view.Default)
	assert.Equal(t, []string{"First Name", "Last Name", "Birth Date", "Student Photo"}, fieldNames(view.Fields))

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestSchemaService_Save(t *testing.T) {
	classes := newFakeClassStore()
	classes.addClass("primary", "grade-5", nil)
	svc := NewSchemaService(classes)

	view, err := svc.Save(context.Background(), "grade-5", models.SchemaRequest{Fields: []models.DataFieldRequest{
		{Name: " Student ID ", Type: "text", Required: true},
		{ID: "math", Name: "Math", Type: "number", Required: true},
		{Name: "Photo", Type: "photo"},
	}})
	require.NoError(t, err)
	assert.False(t, view.Default)
	assert.Equal(t, []string{models.StudentIDField, "Math", "Photo"}, fieldNames(view.Fields))

	for i, f := range view.Fields {
		assert.Equal(t, i, f.Order)
		assert.NotEmpty(t, f.ID)
	}
	assert.Equal(t, "math", view.Fields[1].ID)
	assert.True(t, view.Fields[2].HasPhoto)
	assert.Equal(t, view.Fields, classes.classes["grade-5"].DataStructure)
}

func TestSchemaService_SaveRejected(t *testing.T) {
	tests := []struct {
		name   string
		fields []models.DataFieldRequest
	}{
		{name: "duplicate name", fields: []models.DataFieldRequest{{Name: "Math", Type: "number"}, {Name: " Math", Type: "text"}}},
		{name: "blank name", fields: []models.DataFieldRequest{{Name: "  ", Type: "text"}}},
		{name: "unknown type", fields: []models.DataFieldRequest{{Name: "Math", Type: "grade"}}},
		{name: "duplicate id", fields: []models.DataFieldRequest{{ID: "x", Name: "A", Type: "text"}, {ID: "x", Name: "B", Type: "text"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes := newFakeClassStore()
			classes.addClass("primary", "grade-5", gradeSchema)
			svc := NewSchemaService(classes)

			_, err := svc.Save(context.Background(), "grade-5", models.SchemaRequest{Fields: tt.fields})
			_, ok := tabular.AsValidationError(err)
			assert.True(t, ok)
			assert.Equal(t, gradeSchema, classes.classes["grade-5"].DataStructure)
		})
	}
}

func TestSchemaService_Reorder(t *testing.T) {
	classes := newFakeClassStore()
	classes.addClass("primary", "grade-5", gradeSchema)
	svc := NewSchemaService(classes)

	view, err := svc.Reorder(context.Background(), "grade-5", models.ReorderRequest{From: 2, To: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", models.StudentIDField, "First Name"}, fieldNames(view.Fields))
	for i, f := range classes.classes["grade-5"].DataStructure {
		assert.Equal(t, i, f.Order)
	}

	_, err = svc.Reorder(context.Background(), "grade-5", models.ReorderRequest{From: 0, To: 3})
	assert.ErrorIs(t, err, tabular.ErrFieldIndex)
}

func TestSchemaService_SavePersistenceFailure(t *testing.T) {
	classes := newFakeClassStore()
	classes.addClass("primary", "grade-5", nil)
	svc := NewSchemaService(classes)
	classes.fieldsErr = errStoreDown

	_, err := svc.Save(context.Background(), "grade-5", models.SchemaRequest{Fields: []models.DataFieldRequest{{Name: "A", Type: "text"}}})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, classes.classes["grade-5"].DataStructure)
}
