package tabular

import (
	"errors"
	"fmt"
)

var (
	ErrRowOutOfRange = errors.New("row index out of range")
	ErrReadOnlyCell  = errors.New("the identifier of an existing row cannot be changed")
	errInvalidGrade  = errors.New("invalid grade")
	errInvalidDate   = errors.New("invalid date")
)

// DecodeError reports a spreadsheet that could not be read at all.
type DecodeError struct {
	Format Format
	Line   int
	Msg    string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := e.Msg
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports the first rule a batch of rows broke.
// Row is 1-indexed and zero when the failure is not tied to a row.
type ValidationError struct {
	Row     int      `json:"row,omitempty"`
	Field   string   `json:"field,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Reason  string   `json:"reason"`
	Value   string   `json:"value,omitempty"`
	Err     error    `json:"-"`
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
