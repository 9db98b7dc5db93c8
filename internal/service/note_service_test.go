package service_test

import (
	"context"
	"testing"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, s.db, "Klant")
	location := testutil.CreateTestLocation(t, s.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, s.db, location.ID, "P")
	other := testutil.CreateTestProject(t, s.db, location.ID, "Ander")

	note, err := s.note.Create(ctx, project.ID, uploader, &domain.NoteRequest{Content: "Sleutel bij de receptie"})
	require.NoError(t, err)
	assert.Equal(t, uploader.ID, note.AuthorID)
	assert.Equal(t, "Beheerder", note.AuthorName)

	_, err = s.note.Create(ctx, project.ID, uploader, &domain.NoteRequest{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "content")

	_, err = s.note.Create(ctx, project.ID, uploader, &domain.NoteRequest{Content: " \n\t "})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "content")

	trimmed, err := s.note.Create(ctx, project.ID, uploader, &domain.NoteRequest{Content: "  Code 1234\n"})
	require.NoError(t, err)
	assert.Equal(t, "Code 1234", trimmed.Content)

	assert.ErrorIs(t, s.note.Delete(ctx, other.ID, note.ID), service.ErrNoteNotFound)
	require.NoError(t, s.note.Delete(ctx, project.ID, note.ID))
}
