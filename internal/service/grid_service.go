package service

import (
	"context"
	"errors"

	"edumanager/internal/models"
	"edumanager/internal/repository"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/sirupsen/logrus"
)

// GridService drives edit sessions over imported files. A session holds
// uncommitted edits; the file changes only when Save succeeds.
type GridService struct {
	classes ClassStore
	files   FileStore
	grids   GridStore
	log     *logrus.Logger
}

func NewGridService(classes ClassStore, files FileStore, grids GridStore) *GridService {
	return &GridService{classes: classes, files: files, grids: grids, log: utils.GetLogger()}
}

// Open starts a session on the current content of a file.
func (s *GridService) Open(ctx context.Context, fileID string) (*tabular.Grid, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, lookup("get imported file", err, ErrFileNotFound)
	}

	class, err := s.classes.GetClass(ctx, file.ClassID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	grid := tabular.NewGrid(file, class.DataStructure)
	if err := s.grids.Save(ctx, grid); err != nil {
		return nil, persistence("open edit session", err)
	}

	s.log.WithFields(logrus.Fields{"file_id": fileID, "session_id": grid.SessionID, "rows": len(grid.Rows)}).Info("Edit session opened")
	return grid, nil
}

func (s *GridService) Get(ctx context.Context, fileID, sessionID string) (*tabular.Grid, error) {
	grid, err := s.grids.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, persistence("load edit session", err)
	}
	if grid.FileID != fileID {
		return nil, ErrSessionNotFound
	}
	return grid, nil
}

func (s *GridService) SetCell(ctx context.Context, fileID, sessionID string, req models.CellUpdateRequest) (*tabular.Grid, error) {
	return s.mutate(ctx, fileID, sessionID, func(g *tabular.Grid) error {
		return g.SetCell(req.Row, req.Field, req.Value)
	})
}

func (s *GridService) AddRow(ctx context.Context, fileID, sessionID string) (*tabular.Grid, error) {
	return s.mutate(ctx, fileID, sessionID, func(g *tabular.Grid) error {
		g.AddRow()
		return nil
	})
}

func (s *GridService) DeleteRow(ctx context.Context, fileID, sessionID string, index int) (*tabular.Grid, error) {
	return s.mutate(ctx, fileID, sessionID, func(g *tabular.Grid) error {
		return g.DeleteRow(index)
	})
}

func (s *GridService) mutate(ctx context.Context, fileID, sessionID string, apply func(*tabular.Grid) error) (*tabular.Grid, error) {
	grid, err := s.Get(ctx, fileID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(grid); err != nil {
		return nil, err
	}
	if err := s.grids.Save(ctx, grid); err != nil {
		return nil, persistence("save edit session", err)
	}
	return grid, nil
}

// Save validates the session and replaces the file content. On any failure
// the session stays open with its edits so the user can fix and retry.
func (s *GridService) Save(ctx context.Context, fileID, sessionID string) (*models.ImportedFile, error) {
	grid, err := s.Get(ctx, fileID, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := grid.Commit()
	if err != nil {
		return nil, err
	}

	if err := s.files.ReplaceContent(ctx, fileID, rows); err != nil {
		return nil, lookup("save file content", err, ErrFileNotFound)
	}

	if err := s.grids.Delete(ctx, sessionID); err != nil {
		s.log.WithField("session_id", sessionID).WithError(err).Warn("Failed to close edit session")
	}

	s.log.WithFields(logrus.Fields{"file_id": fileID, "session_id": sessionID, "rows": len(rows)}).Info("Edited file saved")

	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, lookup("get imported file", err, ErrFileNotFound)
	}
	return file, nil
}

func (s *GridService) Discard(ctx context.Context, fileID, sessionID string) error {
	if _, err := s.Get(ctx, fileID, sessionID); err != nil {
		return err
	}
	if err := s.grids.Delete(ctx, sessionID); err != nil {
		return persistence("discard edit session", err)
	}
	return nil
}
