package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"edumanager/internal/config"
	"edumanager/internal/models"
	"edumanager/internal/repository"
	"edumanager/internal/service"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "request fields", err: utils.FieldErrors{"name": "name is a required field"}, status: 400, message: "Invalid request"},
		{name: "decode", err: &tabular.DecodeError{Msg: "no usable header columns"}, status: 400, message: "The file could not be read"},
		{name: "file type", err: service.ErrInvalidFileType, status: 415, message: service.ErrInvalidFileType.Error()},
		{name: "period", err: service.ErrInvalidPeriod, status: 400, message: "Unknown period, see /periods"},
		{name: "validation", err: &tabular.ValidationError{Row: 3, Field: "Math", Reason: "Invalid grade"}, status: 422, message: "Row 3: Invalid grade"},
		{name: "read-only cell", err: tabular.ErrReadOnlyCell, status: 400, message: tabular.ErrReadOnlyCell.Error()},
		{name: "no results", err: service.ErrNoResults, status: 404, message: "No results have been published for this class yet"},
		{name: "not found", err: service.ErrClassNotFound, status: 404, message: "Class not found"},
		{name: "persistence", err: &service.PersistenceError{Op: "save", Err: fmt.Errorf("dial tcp: refused")}, status: 500, message: "Could not reach the data store, please retry"},
		{name: "unexpected", err: fmt.Errorf("boom"), status: 500, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			env := decodeEnvelope(t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
			assert.NotContains(t, env.Error, "refused")
		})
	}
}

func TestRespondError_ValidationDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, &tabular.ValidationError{Row: 2, Field: "Birth Date", Reason: "Invalid date", Value: "31/02/2024"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	env := decodeEnvelope(t, resp)
	var details tabular.ValidationError
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Equal(t, 2, details.Row)
	assert.Equal(t, "Birth Date", details.Field)
	assert.Equal(t, "31/02/2024", details.Value)
}

// stubClasses and stubFiles implement only what an upload touches.
type stubClasses struct {
	service.ClassStore
	class *models.Class
}

func (s *stubClasses) GetClass(_ context.Context, id string) (*models.Class, error) {
	if s.class == nil || s.class.ID != id {
		return nil, repository.ErrNotFound
	}
	cp := *s.class
	return &cp, nil
}

type stubFiles struct {
	service.FileStore
	created []*models.ImportedFile
}

func (s *stubFiles) Create(_ context.Context, file *models.ImportedFile) error {
	s.created = append(s.created, file)
	return nil
}

func newImportApp(files *stubFiles) *fiber.App {
	classes := &stubClasses{class: &models.Class{ID: "grade-5", CycleID: "primary", Name: "Grade 5"}}
	svc := service.NewImportService(classes, files, service.NewExcelService(), nil)
	h := NewImportHandler(svc, &config.Config{UploadMaxSize: 1 << 20})

	app := fiber.New()
	app.Post("/classes/:classId/files", h.UploadFile)
	app.Get("/periods", h.GetPeriods)
	return app
}

func multipartUpload(t *testing.T, url, period, fileName, contentType, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("period", period))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = io.WriteString(part, body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestImportHandler_UploadFile(t *testing.T) {
	tests := []struct {
		name        string
		classID     string
		period      string
		contentType string
		body        string
		status      int
		stored      int
	}{
		{name: "valid csv", classID: "grade-5", period: "Q1", contentType: "text/csv", body: "Student ID,First Name,Last Name\nS1,Ada,Lovelace\n", status: 201, stored: 1},
		{name: "pdf rejected", classID: "grade-5", period: "Q1", contentType: "application/pdf", body: "%PDF-1.4", status: 415},
		{name: "unknown period", classID: "grade-5", period: "W1", contentType: "text/csv", body: "Student ID\nS1\n", status: 400},
		{name: "missing columns", classID: "grade-5", period: "Q1", contentType: "text/csv", body: "Student ID\nS1\n", status: 422},
		{name: "unknown class", classID: "grade-9", period: "Q1", contentType: "text/csv", body: "Student ID\nS1\n", status: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &stubFiles{}
			app := newImportApp(files)

			req := multipartUpload(t, "/classes/"+tt.classID+"/files", tt.period, "grades.csv", tt.contentType, tt.body)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Len(t, files.created, tt.stored)
		})
	}
}

func TestImportHandler_UploadWithoutFile(t *testing.T) {
	app := newImportApp(&stubFiles{})

	req := httptest.NewRequest("POST", "/classes/grade-5/files", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Contains(t, string(env.Details), "file")
}

func TestImportHandler_GetPeriods(t *testing.T) {
	app := newImportApp(&stubFiles{})

	resp, err := app.Test(httptest.NewRequest("GET", "/periods", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var catalog []models.PeriodType
	require.NoError(t, json.Unmarshal(env.Data, &catalog))
	require.Len(t, catalog, 3)
	assert.Len(t, catalog[0].Periods, 12)
	assert.Equal(t, "Y1", catalog[2].Periods[0].ID)
}

func TestClassHandler_CreateCycleValidation(t *testing.T) {
	h := NewClassHandler(nil)
	app := fiber.New()
	app.Post("/cycles", h.CreateCycle)

	req := httptest.NewRequest("POST", "/cycles", bytes.NewBufferString(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Contains(t, details, "name")
}
