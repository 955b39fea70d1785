package service

import (
	"bytes"
	"fmt"
	"sort"

	"edumanager/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportFileList writes the import history of a class to a workbook.
func (s *ExcelService) ExportFileList(className string, files []models.ImportedFileSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Imported Files"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"File Name", "Period", "Period Name", "Uploaded At", "Records", "Status", "Archived Original"}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Imported files of %s", className))
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerRow := 3
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	totalRecords := 0
	periodCounts := make(map[string]int)
	for i, file := range files {
		row := headerRow + 1 + i
		archived := "No"
		if file.FileURL != "" {
			archived = "Yes"
		}
		values := []interface{}{
			file.FileName,
			file.Period,
			models.PeriodName(file.Period),
			file.UploadDate.UTC().Format("2006-01-02 15:04"),
			file.RecordCount,
			file.Status,
			archived,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), dataStyle)

		totalRecords += file.RecordCount
		periodCounts[file.Period]++
	}

	f.SetColWidth(sheetName, "A", "A", 35)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "E", "G", 15)

	summaryRow := headerRow + len(files) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Summary:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("Total Files: %d", len(files)))
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), fmt.Sprintf("Total Records: %d", totalRecords))

	periods := make([]string, 0, len(periodCounts))
	for p := range periodCounts {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for i, p := range periods {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2+i), fmt.Sprintf("%s: %d", models.PeriodName(p), periodCounts[p]))
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("A%d", summaryRow), summaryStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
