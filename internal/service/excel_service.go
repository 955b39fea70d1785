package service

import (
	"bytes"
	"fmt"
	"strings"

	"edumanager/internal/models"
	"edumanager/internal/tabular"

	"github.com/xuri/excelize/v2"
)

// ExcelService builds the helper workbooks offered around an import.
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

var fieldFormatHints = map[models.FieldType]string{
	models.FieldTypeText:   "Free text",
	models.FieldTypeNumber: "Grade as class-department-average, e.g. 12-15-13.5, 12/15/13.5 or 121513.5",
	models.FieldTypeDate:   "Date as DD/MM/YYYY or YYYY-MM-DD",
	models.FieldTypePhoto:  "Leave empty, photos are attached in the application",
}

// GenerateTemplate returns an empty workbook whose header follows schema,
// with an instructions sheet describing each column.
func (s *ExcelService) GenerateTemplate(schema []models.DataField) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Data"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	fields := tabular.SortFields(schema)
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Name
	}
	if err := tabular.WriteSheet(f, sheetName, headers, nil); err != nil {
		return nil, err
	}

	helpSheet := "Instructions"
	if _, err := f.NewSheet(helpSheet); err != nil {
		return nil, err
	}

	helpRows := make([]models.Row, len(fields))
	for i, field := range fields {
		required := "No"
		if field.Required {
			required = "Yes"
		}
		helpRows[i] = models.Row{
			"Column":   field.Name,
			"Type":     string(field.Type),
			"Required": required,
			"Format":   fieldFormatHints[field.Type],
		}
	}
	if err := tabular.WriteSheet(f, helpSheet, []string{"Column", "Type", "Required", "Format"}, helpRows); err != nil {
		return nil, err
	}
	f.SetColWidth(helpSheet, "D", "D", 70)

	noteRow := len(fields) + 3
	f.SetCellValue(helpSheet, fmt.Sprintf("A%d", noteRow), "Do not rename the header row. Fill data from row 2 of the Data sheet.")

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport lists every problem found in an upload that failed
// validation.
func (s *ExcelService) GenerateErrorReport(fileName string, totalRows int, issues []*tabular.ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Import Errors"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"Row Number", "Field", "Error Message", "Invalid Value"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE6E6"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle)

	errorStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFFFCC"}, Pattern: 1},
	})

	rowsWithIssues := make(map[int]bool)
	for i, issue := range issues {
		row := i + 2
		var rowNumber interface{} = "-"
		if issue.Row > 0 {
			rowNumber = issue.Row
			rowsWithIssues[issue.Row] = true
		}
		field := issue.Field
		if len(issue.Missing) > 0 {
			field = strings.Join(issue.Missing, ", ")
		}

		values := []interface{}{rowNumber, field, issue.Error(), issue.Value}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), errorStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 70)
	f.SetColWidth(sheetName, "D", "D", 25)

	summaryStartRow := len(issues) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow), "Import Summary")
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+1), "File:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+1), fileName)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+2), "Rows Read:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+2), totalRows)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+3), "Rows With Errors:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+3), len(rowsWithIssues))
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+4), "Errors Found:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+4), len(issues))

	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryStartRow), fmt.Sprintf("A%d", summaryStartRow), summaryStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
