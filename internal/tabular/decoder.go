package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	"edumanager/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	MIMECSV       = "text/csv"
	MIMELegacyXLS = "application/vnd.ms-excel"
	MIMEXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const utf8BOM = "\ufeff"

// ParseFormat maps an export format name to a Format.
func ParseFormat(name string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return MIMEXLSX
	}
	return MIMECSV
}

// IsAcceptedMIMEType reports whether a declared upload type is one of the
// spreadsheet types the importer takes.
func IsAcceptedMIMEType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case MIMECSV, MIMELegacyXLS, MIMEXLSX:
		return true
	}
	return false
}

// DetectFormat sniffs the content of an upload. Legacy binary workbooks are
// refused since only the Office Open XML layout can be read.
func DetectFormat(data []byte) (Format, error) {
	mt := mimetype.Detect(data)

	switch {
	case descends(mt, "application/zip"):
		return FormatXLSX, nil
	case descends(mt, "application/x-ole-storage"):
		return "", &DecodeError{Msg: "legacy .xls workbooks are not supported, save the file as .xlsx or CSV"}
	case descends(mt, "text/plain"):
		return FormatCSV, nil
	}

	return "", &DecodeError{Msg: "unrecognised spreadsheet content (" + mt.String() + ")"}
}

func descends(mt *mimetype.MIME, ancestor string) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(ancestor) {
			return true
		}
	}
	return false
}

// RowReader yields decoded rows one at a time. It cannot be restarted.
type RowReader interface {
	Header() []string
	Next() bool
	Row() models.Row
	Err() error
	Close() error
}

// Decode sniffs data and opens the matching row reader.
func Decode(data []byte) (RowReader, Format, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, "", err
	}
	rr, err := NewDecoder(format, bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return rr, format, nil
}

func NewDecoder(format Format, r io.Reader) (RowReader, error) {
	switch format {
	case FormatCSV:
		return newCSVRowReader(r)
	case FormatXLSX:
		return newXLSXRowReader(r)
	}
	return nil, &DecodeError{Format: format, Msg: "unsupported format " + string(format)}
}

// ReadAll drains a reader and closes it.
func ReadAll(rr RowReader) ([]models.Row, error) {
	defer rr.Close()

	rows := make([]models.Row, 0)
	for rr.Next() {
		rows = append(rows, rr.Row())
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// usableHeader blanks out unnamed and repeated columns so they are ignored.
func usableHeader(cells []string) ([]string, int) {
	header := make([]string, len(cells))
	seen := make(map[string]bool, len(cells))
	usable := 0
	for i, cell := range cells {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		name := strings.TrimSpace(cell)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		header[i] = name
		usable++
	}
	return header, usable
}

func buildRow(header, cells []string) (models.Row, bool) {
	row := make(models.Row, len(header))
	blank := true
	for i, name := range header {
		if name == "" || i >= len(cells) {
			continue
		}
		row[name] = cells[i]
		if strings.TrimSpace(cells[i]) != "" {
			blank = false
		}
	}
	return row, !blank
}

type csvRowReader struct {
	r      *csv.Reader
	header []string
	row    models.Row
	err    error
	done   bool
}

func newCSVRowReader(r io.Reader) (*csvRowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DecodeError{Format: FormatCSV, Msg: "the file is empty"}
	}
	if err != nil {
		return nil, &DecodeError{Format: FormatCSV, Line: 1, Msg: "cannot parse header", Err: err}
	}

	header, usable := usableHeader(record)
	if usable == 0 {
		return nil, &DecodeError{Format: FormatCSV, Line: 1, Msg: "no usable header columns"}
	}

	return &csvRowReader{r: cr, header: header}, nil
}

func (c *csvRowReader) Header() []string { return compact(c.header) }

func (c *csvRowReader) Next() bool {
	for !c.done {
		record, err := c.r.Read()
		if errors.Is(err, io.EOF) {
			c.done = true
			break
		}
		if err != nil {
			line, _ := c.r.FieldPos(0)
			c.err = &DecodeError{Format: FormatCSV, Line: line, Msg: "cannot parse row", Err: err}
			c.done = true
			break
		}
		if row, ok := buildRow(c.header, record); ok {
			c.row = row
			return true
		}
	}
	c.row = nil
	return false
}

func (c *csvRowReader) Row() models.Row { return c.row }
func (c *csvRowReader) Err() error      { return c.err }
func (c *csvRowReader) Close() error    { c.done = true; return nil }

type xlsxRowReader struct {
	file   *excelize.File
	sheet  string
	rows   *excelize.Rows
	header []string
	row    models.Row
	err    error
	line   int
	done   bool
}

func newXLSXRowReader(r io.Reader) (*xlsxRowReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DecodeError{Format: FormatXLSX, Msg: "cannot open workbook", Err: err}
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, &DecodeError{Format: FormatXLSX, Msg: "workbook has no sheets"}
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, &DecodeError{Format: FormatXLSX, Msg: "cannot read sheet " + sheets[0], Err: err}
	}

	x := &xlsxRowReader{file: f, sheet: sheets[0], rows: rows}
	for rows.Next() {
		x.line++
		cells, err := rows.Columns()
		if err != nil {
			x.Close()
			return nil, &DecodeError{Format: FormatXLSX, Line: x.line, Msg: "cannot read header", Err: err}
		}
		if len(cells) == 0 {
			continue
		}
		header, usable := usableHeader(cells)
		if usable == 0 {
			x.Close()
			return nil, &DecodeError{Format: FormatXLSX, Line: x.line, Msg: "no usable header columns"}
		}
		x.header = header
		return x, nil
	}

	x.Close()
	if err := rows.Error(); err != nil {
		return nil, &DecodeError{Format: FormatXLSX, Msg: "cannot read sheet", Err: err}
	}
	return nil, &DecodeError{Format: FormatXLSX, Msg: "the first sheet is empty"}
}

func (x *xlsxRowReader) Header() []string { return compact(x.header) }

func (x *xlsxRowReader) Next() bool {
	for !x.done && x.rows.Next() {
		x.line++
		cells, err := x.rows.Columns()
		if err != nil {
			x.err = &DecodeError{Format: FormatXLSX, Line: x.line, Msg: "cannot read row", Err: err}
			x.done = true
			break
		}
		if row, ok := buildRow(x.header, cells); ok {
			x.typeNumbers(row, cells)
			x.row = row
			return true
		}
	}
	if !x.done {
		if err := x.rows.Error(); err != nil {
			x.err = &DecodeError{Format: FormatXLSX, Msg: "cannot read sheet", Err: err}
		}
		x.done = true
	}
	x.row = nil
	return false
}

// typeNumbers stores numeric cells as float64; Columns returns formatted text.
func (x *xlsxRowReader) typeNumbers(row models.Row, cells []string) {
	for i, name := range x.header {
		if name == "" || i >= len(cells) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(cells[i]), 64)
		if err != nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, x.line)
		if err != nil {
			continue
		}
		typ, err := x.file.GetCellType(x.sheet, cell)
		if err != nil {
			continue
		}
		// Number cells usually carry no type attribute at all.
		if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
			row[name] = n
		}
	}
}

func (x *xlsxRowReader) Row() models.Row { return x.row }
func (x *xlsxRowReader) Err() error      { return x.err }

func (x *xlsxRowReader) Close() error {
	x.done = true
	if x.rows != nil {
		x.rows.Close()
	}
	return x.file.Close()
}

func compact(header []string) []string {
	out := make([]string, 0, len(header))
	for _, name := range header {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
