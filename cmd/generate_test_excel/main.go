package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"edumanager/internal/models"
	"edumanager/internal/tabular"
)

// Writes sample grade sheets for manual upload testing: one valid workbook
// mixing the three grade encodings, and CSV files that the importer rejects.
func main() {
	outputDir := filepath.Join("storage", "samples")
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Printf("Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	columns := []string{models.StudentIDField, "First Name", "Last Name", "Birth Date", "Math", "French", "Physics"}

	valid := []models.Row{
		{models.StudentIDField: "S001", "First Name": "Amina", "Last Name": "Diallo", "Birth Date": "14/02/2011", "Math": "12-15-13.5", "French": "14/13/13.5", "Physics": "111211.5"},
		{models.StudentIDField: "S002", "First Name": "Karim", "Last Name": "Benali", "Birth Date": "2010-09-03", "Math": "09-11-10", "French": "15-16-15.5", "Physics": "10/10/10"},
		{models.StudentIDField: "S003", "First Name": "Lucie", "Last Name": "Martin", "Birth Date": "30-11-2010", "Math": "171817.5", "French": "16-16-16", "Physics": "13-12-12.5"},
		{models.StudentIDField: "S004", "First Name": "Omar", "Last Name": "Sow", "Birth Date": "2011/01/22", "Math": "08-10-09", "French": "", "Physics": "11-09-10"},
	}

	// Row 2 has a short grade, row 3 an impossible date, row 4 no last name.
	invalid := []models.Row{
		{models.StudentIDField: "S101", "First Name": "Ines", "Last Name": "Haddad", "Birth Date": "01/05/2011", "Math": "12-15-13", "French": "14-14-14", "Physics": "10-10-10"},
		{models.StudentIDField: "S102", "First Name": "Yann", "Last Name": "Leroy", "Birth Date": "12/12/2010", "Math": "12-5-13", "French": "14-14-14", "Physics": "10-10-10"},
		{models.StudentIDField: "S103", "First Name": "Sara", "Last Name": "Kone", "Birth Date": "31/02/2011", "Math": "12-15-13", "French": "14-14-14", "Physics": "10-10-10"},
		{models.StudentIDField: "S104", "First Name": "Noah", "Last Name": "", "Birth Date": "2011-13-01", "Math": "12-15-13", "French": "14-14-14", "Physics": "10-10-10"},
	}

	files := []struct {
		name   string
		format tabular.Format
		rows   []models.Row
	}{
		{"sample_grades.xlsx", tabular.FormatXLSX, valid},
		{"sample_grades.csv", tabular.FormatCSV, valid},
		{"sample_grades_invalid.csv", tabular.FormatCSV, invalid},
	}

	for _, file := range files {
		var buf bytes.Buffer
		if err := tabular.Encode(&buf, file.format, columns, file.rows); err != nil {
			fmt.Printf("Error encoding %s: %v\n", file.name, err)
			os.Exit(1)
		}

		path := filepath.Join(outputDir, file.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			fmt.Printf("Error saving %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Sample file created: %s (%d rows)\n", path, len(file.rows))
	}

	fmt.Println("\nSchema to configure for the sample class:")
	fmt.Println("  Student ID (text, required), First Name (text, required), Last Name (text, required),")
	fmt.Println("  Birth Date (date, required), Math / French / Physics (number, optional)")
}
