package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportService_ExportProjects(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, s.db, "Bakker")
	location := testutil.CreateTestLocation(t, s.db, client.ID, "Kantoor")
	project := testutil.CreateTestProject(t, s.db, location.ID, "Schilderwerk gevel")
	testutil.CreateTestProject(t, s.db, location.ID, "Ander project")
	activityType := testutil.CreateTestActivityType(t, s.db, "Schilder", 50)
	testutil.CreateTestTimeEntry(t, s.db, project.ID, activityType.ID, "2", "50")

	buf, err := s.report.ExportProjects(ctx, &domain.ProjectFilters{Search: "gevel"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Projecten"}, f.GetSheetList())

	rows, err := f.GetRows("Projecten")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one matching project")
	assert.Equal(t, "Project", rows[0][0])
	assert.Equal(t, "Schilderwerk gevel", rows[1][0])
	assert.Equal(t, "Bakker", rows[1][1])
	assert.Equal(t, "Kantoor", rows[1][2])
}

func TestReportService_ExportFilename(t *testing.T) {
	s := setupServices(t)
	now := time.Date(2025, 6, 30, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "projecten_20250630_140509.xlsx", s.report.ExportFilename(now))
}
