package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfBody = "%PDF-1.4\n%handler test\n"

func multipartFile(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (a *api) upload(t *testing.T, projectID uuid.UUID, field, filename string, content []byte) *http.Response {
	t.Helper()
	body, contentType := multipartFile(t, field, filename, content)
	req := newRequest(t, http.MethodPost, "/api/v1/projects/"+projectID.String()+"/files", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", testAPIKey)
	return a.serve(req).Result()
}

func TestFileHandler_UploadAndDownload(t *testing.T) {
	a := setupAPI(t)

	client := testutil.CreateTestClient(t, a.db, "Klant")
	location := testutil.CreateTestLocation(t, a.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, a.db, location.ID, "P")

	resp := a.upload(t, project.ID, "file", "plattegrond.pdf", []byte(pdfBody))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var file domain.FileDTO
	require.NoError(t, json.Unmarshal(body, &file))
	assert.Equal(t, "plattegrond.pdf", file.OriginalName)
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.Equal(t, "System", file.UploadedByName)
	assert.True(t, strings.HasPrefix(file.URL, "/uploads/projects/"+project.ID.String()+"/"))

	filePath := "/api/v1/projects/" + project.ID.String() + "/files/" + file.ID.String()

	rr := a.do(t, http.MethodGet, filePath, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=plattegrond.pdf`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, pdfBody, rr.Body.String())

	public := a.serve(newRequest(t, http.MethodGet, file.URL, nil))
	require.Equal(t, http.StatusOK, public.Code, "local storage is served under its public path")
	assert.Equal(t, pdfBody, public.Body.String())

	rr = a.do(t, http.MethodDelete, filePath, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = a.do(t, http.MethodGet, filePath, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFileHandler_UploadErrors(t *testing.T) {
	a := setupAPI(t)

	client := testutil.CreateTestClient(t, a.db, "Klant")
	location := testutil.CreateTestLocation(t, a.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, a.db, location.ID, "P")

	t.Run("too large", func(t *testing.T) {
		resp := a.upload(t, project.ID, "file", "groot.bin", bytes.Repeat([]byte("x"), testMaxUploadBytes+1))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("missing file field", func(t *testing.T) {
		resp := a.upload(t, project.ID, "attachment", "a.pdf", []byte(pdfBody))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown project", func(t *testing.T) {
		resp := a.upload(t, uuid.New(), "file", "a.pdf", []byte(pdfBody))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	var count int64
	require.NoError(t, a.db.Model(&domain.ProjectFile{}).Count(&count).Error)
	assert.Zero(t, count)
}
