package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"edumanager/internal/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of asynq.Client the archiver needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueArchiver spools original uploads to disk and hands them to the worker.
type QueueArchiver struct {
	client     Enqueuer
	uploadPath string
}

func NewQueueArchiver(client Enqueuer, uploadPath string) *QueueArchiver {
	return &QueueArchiver{client: client, uploadPath: uploadPath}
}

func (a *QueueArchiver) Archive(ctx context.Context, file *models.ImportedFile, data []byte, contentType string) error {
	if err := os.MkdirAll(a.uploadPath, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	localPath := filepath.Join(a.uploadPath, file.ID+filepath.Ext(file.FileName))
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to spool upload: %w", err)
	}

	task, err := NewArchiveTask(ArchivePayload{
		FileID:      file.ID,
		ClassID:     file.ClassID,
		FileName:    file.FileName,
		ContentType: contentType,
		LocalPath:   localPath,
	})
	if err == nil {
		_, err = a.client.EnqueueContext(ctx, task)
	}
	if err != nil {
		os.Remove(localPath)
		return fmt.Errorf("failed to enqueue archive task: %w", err)
	}
	return nil
}

func (a *QueueArchiver) Purge(ctx context.Context, file *models.ImportedFile) error {
	task, err := NewPurgeTask(PurgePayload{FileID: file.ID, FileURL: file.FileURL})
	if err != nil {
		return err
	}
	if _, err := a.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue purge task: %w", err)
	}
	return nil
}
