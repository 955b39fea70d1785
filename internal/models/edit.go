package models

// CellUpdateRequest sets one cell of an open edit session.
type CellUpdateRequest struct {
	Row   int         `json:"row" validate:"min=0"`
	Field string      `json:"field" validate:"required,notblank"`
	Value interface{} `json:"value"`
}
