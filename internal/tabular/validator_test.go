package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumanager/internal/models"
)

func gradeSchema() []models.DataField {
	return []models.DataField{
		{ID: "1", Name: "Student ID", Type: models.FieldTypeText, Required: true, Order: 0},
		{ID: "2", Name: "Math", Type: models.FieldTypeNumber, Required: true, Order: 1},
	}
}

func TestValidateAcceptsCanonicalGrade(t *testing.T) {
	rows := []models.Row{{"Student ID": "S1", "Math": "12-15-13.5"}}

	require.NoError(t, Validate(rows, gradeSchema()))
	assert.Equal(t, "12-15-13.5", rows[0]["Math"])
}

func TestValidateNormalizesCompactGrade(t *testing.T) {
	rows := []models.Row{{"Student ID": "S1", "Math": "121513.5"}}

	require.NoError(t, Validate(rows, gradeSchema()))
	assert.Equal(t, "12-15-13.5", rows[0]["Math"])
}

func TestValidateRejectsBadGradeWidth(t *testing.T) {
	rows := []models.Row{{"Student ID": "S1", "Math": "12-5-13"}}

	err := Validate(rows, gradeSchema())
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Row)
	assert.Equal(t, "Math", ve.Field)
	assert.Contains(t, err.Error(), "Row 1")
	assert.Contains(t, err.Error(), "Math")
}

func TestValidateRejectsInvalidMonth(t *testing.T) {
	schema := []models.DataField{
		{Name: "Student ID", Type: models.FieldTypeText, Required: true, Order: 0},
		{Name: "Birth Date", Type: models.FieldTypeDate, Required: true, Order: 1},
	}
	rows := []models.Row{{"Student ID": "S1", "Birth Date": "2024/13/01"}}

	err := Validate(rows, schema)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Birth Date", ve.Field)
	assert.Equal(t, "2024/13/01", ve.Value)
}

func TestValidateEmpty(t *testing.T) {
	err := Validate(nil, gradeSchema())
	require.Error(t, err)
	assert.Equal(t, "No data found in the file", err.Error())
}

func TestValidateMissingRequiredColumns(t *testing.T) {
	schema := []models.DataField{
		{Name: "Last Name", Type: models.FieldTypeText, Required: true, Order: 2},
		{Name: "Student ID", Type: models.FieldTypeText, Required: true, Order: 0},
		{Name: "First Name", Type: models.FieldTypeText, Required: true, Order: 1},
		{Name: "Notes", Type: models.FieldTypeText, Order: 3},
	}
	rows := []models.Row{{"First Name": "Ada"}}

	err := Validate(rows, schema)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Student ID", "Last Name"}, ve.Missing)
	assert.Equal(t, "Missing required fields: Student ID, Last Name", err.Error())
}

func TestValidateMissingRequiredValue(t *testing.T) {
	rows := []models.Row{
		{"Student ID": "S1", "Math": "12-15-13.5"},
		{"Student ID": "", "Math": "12-15-13.5"},
	}

	err := Validate(rows, gradeSchema())
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, 2, ve.Row)
	assert.Equal(t, "Student ID", ve.Field)
	assert.Equal(t, "Row 2: Missing required value for Student ID", err.Error())
}

func TestValidateSkipsEmptyOptionalFields(t *testing.T) {
	schema := append(gradeSchema(),
		models.DataField{Name: "Physics", Type: models.FieldTypeNumber, Order: 2},
		models.DataField{Name: "Exam Date", Type: models.FieldTypeDate, Order: 3},
	)
	rows := []models.Row{
		{"Student ID": "S1", "Math": "12-15-13.5", "Physics": ""},
		{"Student ID": "S2", "Math": "10/11/10.5", "Exam Date": "2024-06-30"},
	}

	require.NoError(t, Validate(rows, schema))
	assert.Equal(t, "", rows[0]["Physics"])
	assert.Equal(t, "10-11-10.5", rows[1]["Math"])
	assert.Equal(t, "30/06/2024", rows[1]["Exam Date"])
}

func TestValidateIsAllOrNothing(t *testing.T) {
	rows := []models.Row{
		{"Student ID": "S1", "Math": "121513.5"},
		{"Student ID": "S2", "Math": "12/15/13.5"},
		{"Student ID": "S3", "Math": "bad"},
	}
	before := models.CloneRows(rows)

	require.Error(t, Validate(rows, gradeSchema()))
	assert.Equal(t, before, rows)
}

func TestValidateFailsOnAnyMissingRequiredValue(t *testing.T) {
	for i := 0; i < 3; i++ {
		rows := []models.Row{
			{"Student ID": "S1", "Math": "12-15-13.5"},
			{"Student ID": "S2", "Math": "12-15-13.5"},
			{"Student ID": "S3", "Math": "12-15-13.5"},
		}
		rows[i]["Math"] = ""

		err := Validate(rows, gradeSchema())
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, i+1, ve.Row)
	}
}

func TestInspectCollectsEveryIssue(t *testing.T) {
	schema := append(gradeSchema(), models.DataField{Name: "Birth Date", Type: models.FieldTypeDate, Order: 2})
	rows := []models.Row{
		{"Student ID": "S1", "Math": "12-15-13.5", "Birth Date": "31/02/2010"},
		{"Student ID": "", "Math": "1-2-3"},
		{"Student ID": "S3", "Math": "121513"},
	}
	before := models.CloneRows(rows)

	issues := Inspect(rows, schema)
	require.Len(t, issues, 3)
	assert.Equal(t, 1, issues[0].Row)
	assert.Equal(t, "Birth Date", issues[0].Field)
	assert.Equal(t, 2, issues[1].Row)
	assert.Equal(t, "Student ID", issues[1].Field)
	assert.Equal(t, 2, issues[2].Row)
	assert.Equal(t, "Math", issues[2].Field)
	assert.Equal(t, before, rows)
}

func TestInspectStopsAtMissingColumns(t *testing.T) {
	issues := Inspect([]models.Row{{"Math": "x"}}, gradeSchema())
	require.Len(t, issues, 1)
	assert.Equal(t, []string{"Student ID"}, issues[0].Missing)

	assert.Empty(t, Inspect([]models.Row{{"Student ID": "S1", "Math": "121513"}}, gradeSchema()))
}
