package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"edumanager/internal/models"
)

const (
	exportSuffix = "_exported"
	sheetName    = "Sheet1"
)

// Columns orders the keys present in rows: the student identifier, schema
// fields by order, then remaining keys alphabetically.
func Columns(rows []models.Row, schema []models.DataField) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			present[key] = true
		}
	}

	columns := make([]string, 0, len(present))
	used := make(map[string]bool, len(present))
	add := func(name string) {
		if present[name] && !used[name] {
			used[name] = true
			columns = append(columns, name)
		}
	}

	add(models.StudentIDField)
	for _, field := range SortFields(schema) {
		add(field.Name)
	}

	var extra []string
	for key := range present {
		if !used[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		add(key)
	}

	return columns
}

// ExportFileName derives the download name from the stored file name.
func ExportFileName(original string, format Format) string {
	base := filepath.Base(original)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "export"
	}
	return base + exportSuffix + "." + string(format)
}

// Encode writes rows in the given format.
func Encode(w io.Writer, format Format, columns []string, rows []models.Row) error {
	switch format {
	case FormatCSV:
		return EncodeCSV(w, columns, rows)
	case FormatXLSX:
		return EncodeXLSX(w, columns, rows)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func EncodeCSV(w io.Writer, columns []string, rows []models.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = CellString(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func EncodeXLSX(w io.Writer, columns []string, rows []models.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := WriteSheet(f, sheetName, columns, rows); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteSheet fills a sheet with a bold header row followed by rows as text cells.
func WriteSheet(f *excelize.File, sheet string, columns []string, rows []models.Row) error {
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if len(columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(columns))
		if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		values := make([]interface{}, len(columns))
		for i, col := range columns {
			values[i] = CellString(row[col])
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	return nil
}
