package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"edumanager/internal/repository"
	"edumanager/internal/storage"
	"edumanager/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// ObjectStore is where originals end up.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(ref string) (string, bool)
}

// FileURLSetter records the archive location on an imported file.
type FileURLSetter interface {
	SetFileURL(ctx context.Context, id, url string) error
}

type ArchiveTaskHandler struct {
	files FileURLSetter
	store ObjectStore
	log   *logrus.Logger
}

func NewArchiveTaskHandler(files FileURLSetter, store ObjectStore) *ArchiveTaskHandler {
	return &ArchiveTaskHandler{files: files, store: store, log: utils.GetLogger()}
}

func (h *ArchiveTaskHandler) HandleArchive(ctx context.Context, task *asynq.Task) error {
	var payload ArchivePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := h.log.WithFields(logrus.Fields{"file_id": payload.FileID, "class_id": payload.ClassID})

	f, err := os.Open(payload.LocalPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Spooled upload is gone, nothing to archive")
			return nil
		}
		return fmt.Errorf("failed to open spooled upload: %w", err)
	}
	defer f.Close()

	key := storage.OriginalKey(payload.ClassID, payload.FileID, payload.FileName)
	url, err := h.store.Put(ctx, key, f, payload.ContentType)
	if err != nil {
		return err
	}

	if err := h.files.SetFileURL(ctx, payload.FileID, url); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to record file url: %w", err)
		}
		// Deleted while the task was queued.
		logger.Info("Imported file deleted before archival, removing object")
		if err := h.store.Delete(ctx, key); err != nil {
			return err
		}
	}

	if err := os.Remove(payload.LocalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithError(err).Warn("Failed to remove spooled upload")
	}

	logger.WithField("url", url).Info("Original upload archived")
	return nil
}

func (h *ArchiveTaskHandler) HandlePurge(ctx context.Context, task *asynq.Task) error {
	var payload PurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	key, ok := h.store.KeyFromURL(payload.FileURL)
	if !ok {
		h.log.WithFields(logrus.Fields{"file_id": payload.FileID, "url": payload.FileURL}).Warn("File url does not belong to this bucket, skipping purge")
		return nil
	}

	if err := h.store.Delete(ctx, key); err != nil {
		return err
	}
	h.log.WithField("file_id", payload.FileID).Info("Archived original removed")
	return nil
}
