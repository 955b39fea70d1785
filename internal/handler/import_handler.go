package handler

import (
	"fmt"
	"io"

	"edumanager/internal/config"
	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	importService *service.ImportService
	cfg           *config.Config
}

func NewImportHandler(importService *service.ImportService, cfg *config.Config) *ImportHandler {
	return &ImportHandler{importService: importService, cfg: cfg}
}

// readUpload pulls the multipart file and the period out of the form.
func (h *ImportHandler) readUpload(c *fiber.Ctx) (service.UploadRequest, error) {
	req := service.UploadRequest{
		ClassID: c.Params("classId"),
		Period:  c.FormValue("period"),
	}

	file, err := c.FormFile("file")
	if err != nil {
		return req, utils.FieldErrors{"file": "file is a required field"}
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return req, utils.FieldErrors{"file": fmt.Sprintf("file must not exceed %d bytes", h.cfg.UploadMaxSize)}
	}

	f, err := file.Open()
	if err != nil {
		return req, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return req, fmt.Errorf("failed to read upload: %w", err)
	}

	req.FileName = file.Filename
	req.ContentType = file.Header.Get(fiber.HeaderContentType)
	req.Data = data
	return req, nil
}

func (h *ImportHandler) UploadFile(c *fiber.Ctx) error {
	req, err := h.readUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := h.importService.Upload(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.CreatedResponse(c, "File imported successfully", file.Summary())
}

// ErrorReport answers with a workbook of every problem in the submitted
// file, or a plain success when there is none.
func (h *ImportHandler) ErrorReport(c *fiber.Ctx) error {
	req, err := h.readUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.importService.ErrorReport(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	if report == nil {
		return utils.SuccessResponse(c, "No errors found", nil)
	}
	return sendDownload(c, report)
}

func (h *ImportHandler) GetFiles(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, "upload_date", "file_name", "period", "record_count")

	files, pagination, err := h.importService.List(c.UserContext(), c.Params("classId"), params)
	if err != nil {
		return respondError(c, err)
	}

	return utils.PaginatedResponseBuilder(c, "Files retrieved successfully", files, pagination)
}

func (h *ImportHandler) GetFile(c *fiber.Ctx) error {
	file, err := h.importService.Get(c.UserContext(), c.Params("fileId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "File retrieved successfully", file)
}

func (h *ImportHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.importService.Delete(c.UserContext(), c.Params("fileId")); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "File deleted successfully", nil)
}

func (h *ImportHandler) ExportFile(c *fiber.Ctx) error {
	format, ok := tabular.ParseFormat(c.Query("format", string(tabular.FormatXLSX)))
	if !ok {
		return respondError(c, utils.FieldErrors{"format": "format must be one of [csv xlsx]"})
	}

	download, err := h.importService.Export(c.UserContext(), c.Params("fileId"), format)
	if err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, download)
}

func (h *ImportHandler) ExportFileList(c *fiber.Ctx) error {
	download, err := h.importService.ExportList(c.UserContext(), c.Params("classId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, download)
}

func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	download, err := h.importService.Template(c.UserContext(), c.Params("classId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, download)
}

func (h *ImportHandler) GetPeriods(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, "Periods retrieved successfully", models.PeriodCatalog())
}
