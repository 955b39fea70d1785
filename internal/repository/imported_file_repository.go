package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"edumanager/internal/models"
	"edumanager/internal/utils"

	"github.com/jmoiron/sqlx"
)

const importedFileColumns = `id, class_id, file_name, period, upload_date, status, record_count,
	COALESCE(error_message, '') AS error_message, file_url`

var sortableFileColumns = map[string]string{
	"upload_date":  "upload_date",
	"file_name":    "file_name",
	"period":       "period",
	"record_count": "record_count",
}

// importedFileRecord carries the row content as its JSON column.
type importedFileRecord struct {
	models.ImportedFile
	ContentJSON string `db:"content"`
}

func (rec *importedFileRecord) decode() (*models.ImportedFile, error) {
	file := rec.ImportedFile
	file.Content = []models.Row{}
	if rec.ContentJSON != "" {
		if err := json.Unmarshal([]byte(rec.ContentJSON), &file.Content); err != nil {
			return nil, fmt.Errorf("corrupt content for file %s: %w", file.ID, err)
		}
	}
	return &file, nil
}

// ImportedFileRepository persists imported files with their row content.
type ImportedFileRepository struct {
	db *sqlx.DB
}

func NewImportedFileRepository(db *sqlx.DB) *ImportedFileRepository {
	return &ImportedFileRepository{db: db}
}

func (r *ImportedFileRepository) Create(ctx context.Context, file *models.ImportedFile) error {
	content, err := json.Marshal(file.Content)
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}

	rec := importedFileRecord{ImportedFile: *file, ContentJSON: string(content)}
	query := `INSERT INTO imported_files (id, class_id, file_name, period, upload_date, status,
	          record_count, error_message, file_url, content)
	          VALUES (:id, :class_id, :file_name, :period, :upload_date, :status,
	          :record_count, :error_message, :file_url, :content)`
	_, err = r.db.NamedExecContext(ctx, query, rec)
	return err
}

func (r *ImportedFileRepository) FindByID(ctx context.Context, id string) (*models.ImportedFile, error) {
	var rec importedFileRecord
	query := "SELECT " + importedFileColumns + ", COALESCE(content, '') AS content FROM imported_files WHERE id = ? LIMIT 1"
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		return nil, notFound(err)
	}
	return rec.decode()
}

// ListByClass pages through a class's files without their content.
func (r *ImportedFileRepository) ListByClass(ctx context.Context, classID string, params utils.PaginationParams) ([]models.ImportedFileSummary, int64, error) {
	whereClause := "WHERE class_id = ?"
	args := []interface{}{classID}

	if params.Search != "" {
		whereClause += " AND (file_name LIKE ? OR period LIKE ?)"
		pattern := "%" + params.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM imported_files "+whereClause, args...); err != nil {
		return nil, 0, err
	}

	orderBy, ok := sortableFileColumns[params.OrderBy]
	if !ok {
		orderBy = "upload_date"
	}
	orderDir := "DESC"
	if params.OrderDir == "asc" {
		orderDir = "ASC"
	}

	query := fmt.Sprintf(`SELECT id, file_name, period, upload_date, status, record_count, file_url
		FROM imported_files %s
		ORDER BY %s %s, id
		LIMIT ? OFFSET ?`, whereClause, orderBy, orderDir)
	args = append(args, params.Limit, utils.GetOffset(params.Page, params.Limit))

	files := []models.ImportedFileSummary{}
	if err := r.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

// ListWithContentByClass returns every completed file of a class, newest first.
func (r *ImportedFileRepository) ListWithContentByClass(ctx context.Context, classID string) ([]models.ImportedFile, error) {
	var recs []importedFileRecord
	query := "SELECT " + importedFileColumns + `, COALESCE(content, '') AS content
		FROM imported_files
		WHERE class_id = ? AND status = ?
		ORDER BY upload_date DESC, id`
	if err := r.db.SelectContext(ctx, &recs, query, classID, models.ImportStatusCompleted); err != nil {
		return nil, err
	}

	files := make([]models.ImportedFile, 0, len(recs))
	for i := range recs {
		file, err := recs[i].decode()
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}
	return files, nil
}

// LatestByClass returns the most recently uploaded completed file.
func (r *ImportedFileRepository) LatestByClass(ctx context.Context, classID string) (*models.ImportedFile, error) {
	var rec importedFileRecord
	query := "SELECT " + importedFileColumns + `, COALESCE(content, '') AS content
		FROM imported_files
		WHERE class_id = ? AND status = ?
		ORDER BY upload_date DESC, id
		LIMIT 1`
	if err := r.db.GetContext(ctx, &rec, query, classID, models.ImportStatusCompleted); err != nil {
		return nil, notFound(err)
	}
	return rec.decode()
}

// ReplaceContent swaps the rows of a file in a single statement.
func (r *ImportedFileRepository) ReplaceContent(ctx context.Context, id string, rows []models.Row) error {
	content, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE imported_files SET content = ?, record_count = ? WHERE id = ?",
		string(content), len(rows), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *ImportedFileRepository) SetFileURL(ctx context.Context, id, url string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE imported_files SET file_url = ? WHERE id = ?", url, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *ImportedFileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM imported_files WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
