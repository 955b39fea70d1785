package models

import "time"

// Row maps a column name to its raw cell value (string or number).
type Row map[string]interface{}

// Clone returns a shallow copy; values are scalars so this is enough to isolate edits.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// ImportStatusCompleted marks a file whose rows passed validation. Failed
// uploads are never stored.
const ImportStatusCompleted = "completed"

type ImportedFile struct {
	ID           string    `db:"id" json:"id"`
	ClassID      string    `db:"class_id" json:"class_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	Period       string    `db:"period" json:"period"`
	UploadDate   time.Time `db:"upload_date" json:"upload_date"`
	Status       string    `db:"status" json:"status"`
	RecordCount  int       `db:"record_count" json:"record_count"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	FileURL      string    `db:"file_url" json:"file_url,omitempty"`
	Content      []Row     `db:"-" json:"content"`
}

// ImportedFileSummary is the listing shape, without row content.
type ImportedFileSummary struct {
	ID          string    `db:"id" json:"id"`
	FileName    string    `db:"file_name" json:"file_name"`
	Period      string    `db:"period" json:"period"`
	UploadDate  time.Time `db:"upload_date" json:"upload_date"`
	Status      string    `db:"status" json:"status"`
	RecordCount int       `db:"record_count" json:"record_count"`
	FileURL     string    `db:"file_url" json:"file_url,omitempty"`
}

func (f *ImportedFile) Summary() ImportedFileSummary {
	return ImportedFileSummary{
		ID:          f.ID,
		FileName:    f.FileName,
		Period:      f.Period,
		UploadDate:  f.UploadDate,
		Status:      f.Status,
		RecordCount: f.RecordCount,
		FileURL:     f.FileURL,
	}
}
