package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumanager/internal/models"
)

func TestColumnsOrder(t *testing.T) {
	schema := []models.DataField{
		{Name: "Physics", Order: 1},
		{Name: "Math", Order: 0},
		{Name: "Unused", Order: 2},
	}
	rows := []models.Row{
		{"Physics": "1", "Zeta": "z", "Student ID": "S1"},
		{"Math": "2", "Alpha": "a"},
	}

	assert.Equal(t, []string{"Student ID", "Math", "Physics", "Alpha", "Zeta"}, Columns(rows, schema))
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "grades_march_exported.csv", ExportFileName("grades_march.xlsx", FormatCSV))
	assert.Equal(t, "grades.v2_exported.xlsx", ExportFileName("grades.v2.csv", FormatXLSX))
	assert.Equal(t, "roster_exported.csv", ExportFileName("roster", FormatCSV))
	assert.Equal(t, "export_exported.csv", ExportFileName("", FormatCSV))
}

func TestEncodeCSVQuotes(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.Row{{"Student ID": "S1", "Name": "Doe, \"JD\" Jr."}}

	require.NoError(t, EncodeCSV(&buf, []string{"Student ID", "Name"}, rows))
	assert.Equal(t, "Student ID,Name\nS1,\"Doe, \"\"JD\"\" Jr.\"\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	schema := gradeSchema()
	rows := []models.Row{
		{"Student ID": "S1", "Math": "121513.5", "Comment": "good, steady"},
		{"Student ID": "S2", "Math": "10/11/12", "Comment": "line\nbreak"},
		{"Student ID": "S3", "Math": 15.0, "Comment": ""},
	}
	require.NoError(t, Validate(rows, schema))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, Columns(rows, schema), rows))

	rr, format, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)
	decoded, err := ReadAll(rr)
	require.NoError(t, err)

	require.Len(t, decoded, len(rows))
	for i := range rows {
		want := models.Row{}
		for k, v := range rows[i] {
			want[k] = CellString(v)
		}
		assert.Equal(t, want, decoded[i])
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	rows := []models.Row{
		{"Student ID": "S1", "Math": "12-15-13.5"},
		{"Student ID": "S2", "Math": "08-09-08.5"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatXLSX, Columns(rows, gradeSchema()), rows))

	rr, format, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)
	decoded, err := ReadAll(rr)
	require.NoError(t, err)
	assert.Equal(t, rows, decoded)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, Format("pdf"), nil, nil))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" XLSX ")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, f)

	_, ok = ParseFormat("ods")
	assert.False(t, ok)
}
