package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"edumanager/internal/models"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UploadRequest is one spreadsheet submitted for a class and period.
type UploadRequest struct {
	ClassID     string
	Period      string
	FileName    string
	ContentType string
	Data        []byte
}

// Download is a generated file ready to be sent to the client.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImportService runs uploads through decode, validation and persistence.
type ImportService struct {
	classes  ClassStore
	files    FileStore
	excel    *ExcelService
	archiver Archiver
	now      func() time.Time
	log      *logrus.Logger
}

// NewImportService wires the pipeline. archiver may be nil, in which case
// originals are not kept.
func NewImportService(classes ClassStore, files FileStore, excel *ExcelService, archiver Archiver) *ImportService {
	return &ImportService{
		classes:  classes,
		files:    files,
		excel:    excel,
		archiver: archiver,
		now:      time.Now,
		log:      utils.GetLogger(),
	}
}

// Upload validates a spreadsheet against the class schema and stores it.
// Nothing is stored unless every row passes.
func (s *ImportService) Upload(ctx context.Context, req UploadRequest) (*models.ImportedFile, error) {
	schema, rows, err := s.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := tabular.Validate(rows, schema); err != nil {
		s.log.WithFields(logrus.Fields{
			"class_id":  req.ClassID,
			"file_name": req.FileName,
			"rows":      len(rows),
		}).WithError(err).Info("Upload rejected by validation")
		return nil, err
	}

	file := &models.ImportedFile{
		ID:          uuid.New().String(),
		ClassID:     req.ClassID,
		FileName:    filepath.Base(req.FileName),
		Period:      req.Period,
		UploadDate:  s.now().UTC(),
		Status:      models.ImportStatusCompleted,
		RecordCount: len(rows),
		Content:     rows,
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, persistence("save imported file", err)
	}

	s.log.WithFields(logrus.Fields{
		"class_id": file.ClassID,
		"file_id":  file.ID,
		"period":   file.Period,
		"rows":     file.RecordCount,
	}).Info("File imported")

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, file, req.Data, req.ContentType); err != nil {
			s.log.WithField("file_id", file.ID).WithError(err).Warn("Failed to queue original for archival")
		}
	}

	return file, nil
}

// ErrorReport runs the same checks as Upload without storing anything and
// returns a workbook listing every problem. It returns nil when the file is
// valid.
func (s *ImportService) ErrorReport(ctx context.Context, req UploadRequest) (*Download, error) {
	schema, rows, err := s.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	issues := tabular.Inspect(rows, schema)
	if len(issues) == 0 {
		return nil, nil
	}

	data, err := s.excel.GenerateErrorReport(req.FileName, len(rows), issues)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(req.FileName), filepath.Ext(req.FileName))
	return &Download{
		FileName:    base + "_errors.xlsx",
		ContentType: tabular.MIMEXLSX,
		Data:        data,
	}, nil
}

func (s *ImportService) decode(ctx context.Context, req UploadRequest) ([]models.DataField, []models.Row, error) {
	if !tabular.IsAcceptedMIMEType(req.ContentType) {
		return nil, nil, ErrInvalidFileType
	}
	if !models.IsValidPeriod(req.Period) {
		return nil, nil, ErrInvalidPeriod
	}

	class, err := s.classes.GetClass(ctx, req.ClassID)
	if err != nil {
		return nil, nil, lookup("get class", err, ErrClassNotFound)
	}

	rr, _, err := tabular.Decode(req.Data)
	if err != nil {
		return nil, nil, err
	}
	rows, err := tabular.ReadAll(rr)
	if err != nil {
		return nil, nil, err
	}

	return tabular.EffectiveSchema(class.DataStructure), rows, nil
}

func (s *ImportService) List(ctx context.Context, classID string, params utils.PaginationParams) ([]models.ImportedFileSummary, utils.PaginationMeta, error) {
	if _, err := s.classes.GetClass(ctx, classID); err != nil {
		return nil, utils.PaginationMeta{}, lookup("get class", err, ErrClassNotFound)
	}

	files, total, err := s.files.ListByClass(ctx, classID, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, persistence("list imported files", err)
	}
	return files, utils.CalculatePagination(params.Page, params.Limit, total), nil
}

func (s *ImportService) Get(ctx context.Context, fileID string) (*models.ImportedFile, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, lookup("get imported file", err, ErrFileNotFound)
	}
	return file, nil
}

func (s *ImportService) Delete(ctx context.Context, fileID string) error {
	file, err := s.Get(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return lookup("delete imported file", err, ErrFileNotFound)
	}

	if s.archiver != nil && file.FileURL != "" {
		if err := s.archiver.Purge(ctx, file); err != nil {
			s.log.WithField("file_id", fileID).WithError(err).Warn("Failed to queue archived original for removal")
		}
	}

	s.log.WithFields(logrus.Fields{"class_id": file.ClassID, "file_id": fileID}).Info("Imported file deleted")
	return nil
}

// Export encodes the stored rows of a file.
func (s *ImportService) Export(ctx context.Context, fileID string, format tabular.Format) (*Download, error) {
	file, err := s.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	var schema []models.DataField
	class, err := s.classes.GetClass(ctx, file.ClassID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"class_id": file.ClassID,
			"file_id":  fileID,
		}).WithError(err).Warn("Class schema unavailable, exporting columns without schema order")
	} else {
		schema = class.DataStructure
	}

	var buf bytes.Buffer
	if err := tabular.Encode(&buf, format, tabular.Columns(file.Content, schema), file.Content); err != nil {
		return nil, err
	}

	return &Download{
		FileName:    tabular.ExportFileName(file.FileName, format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// ExportList returns the import history of a class as a workbook.
func (s *ImportService) ExportList(ctx context.Context, classID string) (*Download, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	params := utils.PaginationParams{Page: 1, Limit: 100, OrderBy: "upload_date", OrderDir: "desc"}
	var all []models.ImportedFileSummary
	for {
		page, total, err := s.files.ListByClass(ctx, classID, params)
		if err != nil {
			return nil, persistence("list imported files", err)
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			break
		}
		params.Page++
	}

	data, err := s.excel.ExportFileList(class.Name, all)
	if err != nil {
		return nil, err
	}
	return &Download{
		FileName:    classFileName(class.Name) + "_imports.xlsx",
		ContentType: tabular.MIMEXLSX,
		Data:        data,
	}, nil
}

// Template returns an empty workbook laid out for the class schema.
func (s *ImportService) Template(ctx context.Context, classID string) (*Download, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, lookup("get class", err, ErrClassNotFound)
	}

	data, err := s.excel.GenerateTemplate(tabular.EffectiveSchema(class.DataStructure))
	if err != nil {
		return nil, err
	}

	return &Download{
		FileName:    classFileName(class.Name) + "_template.xlsx",
		ContentType: tabular.MIMEXLSX,
		Data:        data,
	}, nil
}

func classFileName(name string) string {
	if base := strings.Join(strings.Fields(name), "_"); base != "" {
		return base
	}
	return "class"
}
