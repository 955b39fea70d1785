package service

import (
	"context"

	"edumanager/internal/models"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"
)

// ClassStore is the class configuration backing store.
type ClassStore interface {
	ListCycles(ctx context.Context) ([]models.Cycle, error)
	GetCycle(ctx context.Context, id string) (*models.Cycle, error)
	CreateCycle(ctx context.Context, cycle *models.Cycle) error
	UpdateCycle(ctx context.Context, cycle *models.Cycle) error
	DeleteCycle(ctx context.Context, id string) error

	GetClass(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, class *models.Class) error
	UpdateClass(ctx context.Context, class *models.Class) error
	DeleteClass(ctx context.Context, id string) error
	ReplaceFields(ctx context.Context, classID string, fields []models.DataField) error
}

// FileStore persists imported files.
type FileStore interface {
	Create(ctx context.Context, file *models.ImportedFile) error
	FindByID(ctx context.Context, id string) (*models.ImportedFile, error)
	ListByClass(ctx context.Context, classID string, params utils.PaginationParams) ([]models.ImportedFileSummary, int64, error)
	ListWithContentByClass(ctx context.Context, classID string) ([]models.ImportedFile, error)
	LatestByClass(ctx context.Context, classID string) (*models.ImportedFile, error)
	ReplaceContent(ctx context.Context, id string, rows []models.Row) error
	Delete(ctx context.Context, id string) error
}

// GridStore holds open edit sessions.
type GridStore interface {
	Save(ctx context.Context, grid *tabular.Grid) error
	Get(ctx context.Context, sessionID string) (*tabular.Grid, error)
	Delete(ctx context.Context, sessionID string) error
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.SchoolSettings, error)
	Save(ctx context.Context, settings *models.SchoolSettings) error
}

// Archiver keeps the original upload of a file outside the database.
type Archiver interface {
	Archive(ctx context.Context, file *models.ImportedFile, data []byte, contentType string) error
	Purge(ctx context.Context, file *models.ImportedFile) error
}
