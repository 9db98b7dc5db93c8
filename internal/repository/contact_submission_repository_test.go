package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmissionRepository_ListNewFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactSubmissionRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		name   string
		status domain.ContactStatus
	}{
		{"oud nieuw", domain.ContactStatusNew},
		{"gelezen", domain.ContactStatusRead},
		{"recent nieuw", domain.ContactStatusNew},
		{"gearchiveerd", domain.ContactStatusArchived},
	}
	for i, s := range seed {
		submission := &domain.ContactSubmission{Name: s.name, Email: "a@example.com", Status: s.status}
		submission.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		submission.UpdatedAt = submission.CreatedAt
		require.NoError(t, db.Create(submission).Error)
	}

	submissions, total, err := repo.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	names := make([]string, 0, len(submissions))
	for _, s := range submissions {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"recent nieuw", "oud nieuw", "gearchiveerd", "gelezen"}, names)

	filtered, total, err := repo.List(ctx, 1, domain.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "gelezen", filtered[0].Name)

	counts, err := repo.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"all": 4, "new": 2, "read": 1, "replied": 0, "archived": 1}, counts)
}

func TestContactSubmissionRepository_MarkAsRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactSubmissionRepository(db)
	ctx := context.Background()

	submission := testutil.CreateTestSubmission(t, db, "Piet", domain.ContactStatusNew)
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	changed, err := repo.MarkAsRead(ctx, submission.ID, first)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkAsRead(ctx, submission.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed, "a read submission is not stamped again")

	loaded, err := repo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusRead, loaded.Status)
	require.NotNil(t, loaded.ReadAt)
	assert.True(t, first.Equal(*loaded.ReadAt))
}
