package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploader = domain.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Beheerder"}

const pdfBody = "%PDF-1.4\n%test document\n"

func TestFileService_UploadDownloadDelete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, s.db, "Klant")
	location := testutil.CreateTestLocation(t, s.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, s.db, location.ID, "P")

	dto, err := s.file.Upload(ctx, project.ID, uploader, `C:\Users\jan\offerte.PDF`, int64(len(pdfBody)), strings.NewReader(pdfBody))
	require.NoError(t, err)
	assert.Equal(t, "offerte.PDF", dto.OriginalName)
	assert.Equal(t, "application/pdf", dto.MimeType)
	assert.Equal(t, int64(len(pdfBody)), dto.Size)
	assert.True(t, strings.HasSuffix(dto.Name, ".pdf"))
	assert.Equal(t, "/uploads/projects/"+project.ID.String()+"/"+dto.Name, dto.URL)
	assert.Equal(t, uploader.ID, dto.UploadedByID)
	assert.Equal(t, "Beheerder", dto.UploadedByName)

	key := "projects/" + project.ID.String() + "/" + dto.Name
	assert.True(t, s.blobExists(key))

	file, reader, err := s.file.Download(ctx, project.ID, dto.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(content))
	assert.Equal(t, "offerte.PDF", file.OriginalName)

	_, _, err = s.file.Download(ctx, uuid.New(), dto.ID)
	assert.ErrorIs(t, err, service.ErrFileNotFound, "files are scoped to their project")

	require.NoError(t, s.file.Delete(ctx, project.ID, dto.ID))
	assert.False(t, s.blobExists(key))
	assert.ErrorIs(t, s.file.Delete(ctx, project.ID, dto.ID), service.ErrFileNotFound)
}

func TestFileService_UploadDetectsTypeWithoutExtension(t *testing.T) {
	s := setupServices(t)

	client := testutil.CreateTestClient(t, s.db, "Klant")
	location := testutil.CreateTestLocation(t, s.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, s.db, location.ID, "P")

	dto, err := s.file.Upload(context.Background(), project.ID, uploader, "scan", -1, strings.NewReader(pdfBody))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", dto.MimeType)
	assert.True(t, strings.HasSuffix(dto.Name, ".pdf"))
}

func TestFileService_UploadRejects(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, s.db, "Klant")
	location := testutil.CreateTestLocation(t, s.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, s.db, location.ID, "P")

	big := bytes.Repeat([]byte("a"), testMaxUploadBytes+1)

	t.Run("declared size too large", func(t *testing.T) {
		_, err := s.file.Upload(ctx, project.ID, uploader, "big.txt", int64(len(big)), bytes.NewReader(big))
		assert.ErrorIs(t, err, service.ErrFileTooLarge)
	})

	t.Run("understated size", func(t *testing.T) {
		_, err := s.file.Upload(ctx, project.ID, uploader, "big.txt", 10, bytes.NewReader(big))
		assert.ErrorIs(t, err, service.ErrFileTooLarge)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := s.file.Upload(ctx, project.ID, uploader, "empty.txt", 0, strings.NewReader(""))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "file")
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.file.Upload(ctx, uuid.New(), uploader, "a.pdf", int64(len(pdfBody)), strings.NewReader(pdfBody))
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})

	var files int64
	require.NoError(t, s.db.Model(&domain.ProjectFile{}).Count(&files).Error)
	assert.Zero(t, files)
}
