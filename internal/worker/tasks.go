package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeArchiveOriginal = "import:archive"
	TypePurgeOriginal   = "import:purge"
)

// ArchivePayload points at an upload spooled on local disk.
type ArchivePayload struct {
	FileID      string `json:"file_id"`
	ClassID     string `json:"class_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	LocalPath   string `json:"local_path"`
}

type PurgePayload struct {
	FileID  string `json:"file_id"`
	FileURL string `json:"file_url"`
}

func NewArchiveTask(p ArchivePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive payload: %w", err)
	}
	return asynq.NewTask(TypeArchiveOriginal, payload, asynq.MaxRetry(5), asynq.Queue("low")), nil
}

func NewPurgeTask(p PurgePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode purge payload: %w", err)
	}
	return asynq.NewTask(TypePurgeOriginal, payload, asynq.MaxRetry(5), asynq.Queue("low")), nil
}
