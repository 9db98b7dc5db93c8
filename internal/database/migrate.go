package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

// DefaultActivityTypes are seeded on first migration
var DefaultActivityTypes = []struct {
	Name string
	Rate int64
}{
	{"Elektra", 55},
	{"Sanitair", 55},
	{"Schilderwerk", 50},
	{"Timmerwerkzaamheden", 55},
	{"Inspectie", 45},
	{"Transport", 40},
	{"Algemeen onderhoud", 50},
	{"Overig", 50},
}

// Migrate applies the gorm-side schema and seed steps. Production postgres
// databases are migrated with the goose SQL files in ./migrations instead;
// this path serves sqlite development databases and tests.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250101_create_facility_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&domain.Client{},
					&domain.Location{},
					&domain.Project{},
					&domain.ActivityType{},
					&domain.TimeEntry{},
					&domain.ProjectMaterial{},
					&domain.ProjectNote{},
					&domain.ProjectFile{},
					&domain.ContactSubmission{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&domain.ContactSubmission{},
					&domain.ProjectFile{},
					&domain.ProjectNote{},
					&domain.ProjectMaterial{},
					&domain.TimeEntry{},
					&domain.ActivityType{},
					&domain.Project{},
					&domain.Location{},
					&domain.Client{},
				)
			},
		},
		{
			ID: "20250101_seed_activity_types",
			Migrate: func(tx *gorm.DB) error {
				for _, seed := range DefaultActivityTypes {
					at := domain.ActivityType{
						Name:              seed.Name,
						DefaultHourlyRate: decimal.NewFromInt(seed.Rate),
						IsActive:          true,
					}
					if err := tx.Create(&at).Error; err != nil {
						return fmt.Errorf("failed to seed activity type %s: %w", seed.Name, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				names := make([]string, 0, len(DefaultActivityTypes))
				for _, seed := range DefaultActivityTypes {
					names = append(names, seed.Name)
				}
				return tx.Where("name IN ?", names).Delete(&domain.ActivityType{}).Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
