package models

import "time"

type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypePhoto  FieldType = "photo"
)

// StudentIDField is the column that identifies a student inside an imported file.
const StudentIDField = "Student ID"

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypePhoto:
		return true
	}
	return false
}

type Cycle struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	Classes   []Class   `db:"-" json:"classes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Class struct {
	ID            string         `db:"id" json:"id"`
	CycleID       string         `db:"cycle_id" json:"cycle_id"`
	Name          string         `db:"name" json:"name"`
	Enabled       bool           `db:"enabled" json:"enabled"`
	DataStructure []DataField    `db:"-" json:"data_structure"`
	ImportedData  []ImportedFile `db:"-" json:"imported_data,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// DataField describes one column of a class's data structure.
type DataField struct {
	ID       string    `db:"id" json:"id"`
	ClassID  string    `db:"class_id" json:"-"`
	Name     string    `db:"name" json:"name"`
	Type     FieldType `db:"type" json:"type"`
	Required bool      `db:"required" json:"required"`
	Order    int       `db:"sort_order" json:"order"`
	HasPhoto bool      `db:"has_photo" json:"has_photo"`
}

type CycleRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Enabled *bool  `json:"enabled"`
}

type ClassRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Enabled *bool  `json:"enabled"`
}

type DataFieldRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,oneof=text number date photo"`
	Required bool   `json:"required"`
	HasPhoto bool   `json:"has_photo"`
}

type SchemaRequest struct {
	Fields []DataFieldRequest `json:"fields" validate:"dive"`
}

type ReorderRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}
