package service

import (
	"errors"
	"fmt"

	"edumanager/internal/repository"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCycleNotFound   = fmt.Errorf("cycle %w", ErrNotFound)
	ErrClassNotFound   = fmt.Errorf("class %w", ErrNotFound)
	ErrFileNotFound    = fmt.Errorf("imported file %w", ErrNotFound)
	ErrStudentNotFound = fmt.Errorf("student %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("edit session %w", ErrNotFound)

	ErrInvalidFileType = errors.New("invalid file type, upload a CSV or Excel file")
	ErrInvalidPeriod   = errors.New("unknown period")
	ErrNoResults       = errors.New("no data available for this class")
)

// PersistenceError wraps a failure of the backing store. The caller's input
// is still valid and the action can be retried as is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// lookup maps a repository miss to notFound and anything else to a
// PersistenceError.
func lookup(op string, err error, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return persistence(op, err)
}
