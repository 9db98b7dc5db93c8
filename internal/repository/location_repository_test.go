package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createLocation(t *testing.T, db *gorm.DB, clientID uuid.UUID, name, address, city string) *domain.Location {
	t.Helper()
	location := &domain.Location{
		ClientID:     clientID,
		Name:         name,
		Address:      address,
		PostalCode:   "1000 AA",
		City:         city,
		BuildingType: domain.BuildingTypeOther,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func locationNames(locations []domain.Location) []string {
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}
	return names
}

func TestLocationRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLocationRepository(db)
	ctx := context.Background()

	acme := testutil.CreateTestClient(t, db, "ACME Holding")
	other := testutil.CreateTestClient(t, db, "Other")

	createLocation(t, db, acme.ID, "HQ", "Stationsplein 1", "Utrecht")
	createLocation(t, db, other.ID, "Magazijn", "Havenweg 12", "Rotterdam")
	createLocation(t, db, other.ID, "Winkel Centrum", "Lijnbaan 5", "Den Haag")

	tests := []struct {
		name     string
		search   string
		clientID *uuid.UUID
		want     []string
	}{
		{"no search", "", nil, []string{"HQ", "Magazijn", "Winkel Centrum"}},
		{"name", "centrum", nil, []string{"Winkel Centrum"}},
		{"address", "HAVENWEG", nil, []string{"Magazijn"}},
		{"city", "den haag", nil, []string{"Winkel Centrum"}},
		{"client name mixed case", "cMe", nil, []string{"HQ"}},
		{"client filter", "", &other.ID, []string{"Magazijn", "Winkel Centrum"}},
		{"search within client", "utrecht", &other.ID, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations, total, err := repo.List(ctx, 1, tt.search, tt.clientID)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.Equal(t, tt.want, locationNames(locations))
		})
	}

	t.Run("client is preloaded", func(t *testing.T) {
		locations, _, err := repo.List(ctx, 1, "HQ", nil)
		require.NoError(t, err)
		require.Len(t, locations, 1)
		require.NotNil(t, locations[0].Client)
		assert.Equal(t, "ACME Holding", locations[0].Client.Name)
	})
}

func TestLocationRepository_List_WildcardsMatchLiterally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLocationRepository(db)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, db, "Beheer")
	createLocation(t, db, client.ID, "blok a_b", "Kade 1", "Leiden")
	createLocation(t, db, client.ID, "blok axb", "Kade 2", "Leiden")
	createLocation(t, db, client.ID, "Hal 100%", "Kade 3", "Leiden")
	createLocation(t, db, client.ID, "Hal 1000", "Kade 4", "Leiden")
	createLocation(t, db, client.ID, `Kelder c\d`, "Kade 5", "Leiden")

	tests := []struct {
		search string
		want   []string
	}{
		{"a_b", []string{"blok a_b"}},
		{"100%", []string{"Hal 100%"}},
		{`c\d`, []string{`Kelder c\d`}},
		{"hal", []string{"Hal 100%", "Hal 1000"}},
	}

	for _, tt := range tests {
		locations, total, err := repo.List(ctx, 1, tt.search, nil)
		require.NoError(t, err, tt.search)
		assert.Equal(t, int64(len(tt.want)), total, tt.search)
		assert.Equal(t, tt.want, locationNames(locations), tt.search)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, repository.ClampPage(-5))
	assert.Equal(t, 1, repository.ClampPage(0))
	assert.Equal(t, 7, repository.ClampPage(7))
	assert.Equal(t, domain.MaxPage, repository.ClampPage(int(^uint(0)>>1)))
}
