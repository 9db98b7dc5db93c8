package repository_test

import (
	"context"
	"testing"

	"github.com/straye-as/facility-api/internal/database"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityTypeRepository_ListActiveOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewActivityTypeRepository(db)
	ctx := context.Background()

	inactive := testutil.CreateTestActivityType(t, db, "Afgeschaft", 10)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, len(database.DefaultActivityTypes)+1)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, len(database.DefaultActivityTypes))
	for _, at := range active {
		assert.True(t, at.IsActive)
	}

	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name, "ordered by name")
	}
}

func TestActivityTypeRepository_CountTimeEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewActivityTypeRepository(db)

	client := testutil.CreateTestClient(t, db, "C")
	location := testutil.CreateTestLocation(t, db, client.ID, "L")
	project := testutil.CreateTestProject(t, db, location.ID, "P")
	activityType := testutil.CreateTestActivityType(t, db, "Schilder", 45)
	testutil.CreateTestTimeEntry(t, db, project.ID, activityType.ID, "3", "45")

	count, err := repo.CountTimeEntries(context.Background(), activityType.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
