package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const projectSheet = "Projecten"

var projectExportHeaders = []string{
	"Project", "Klant", "Locatie", "Type", "Status",
	"Startdatum", "Einddatum", "Offerteprijs", "Arbeidskosten", "Materiaalkosten",
	"Werkelijke kosten", "Marge",
}

// ReportService builds spreadsheet exports
type ReportService struct {
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewReportService(projectRepo *repository.ProjectRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// ExportProjects writes every project matching filters, with its financials,
// to an xlsx workbook
func (s *ReportService) ExportProjects(ctx context.Context, filters *domain.ProjectFilters) (*bytes.Buffer, error) {
	projects, err := s.projectRepo.ListForExport(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(projectSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	for col, header := range projectExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(projectSheet, cell, header); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(projectExportHeaders), 1)
	if err := f.SetCellStyle(projectSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(projectSheet, "A", "C", 30)
	_ = f.SetColWidth(projectSheet, "D", "L", 16)

	for i := range projects {
		rowNum := i + 2
		row := projectExportRow(&projects[i])
		if err := f.SetSheetRow(projectSheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}
	if len(projects) > 0 {
		last := fmt.Sprintf("L%d", len(projects)+1)
		if err := f.SetCellStyle(projectSheet, "H2", last, moneyStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("projects exported", zap.Int("rows", len(projects)))
	return buf, nil
}

// ExportFilename returns the download name for a project export
func (s *ReportService) ExportFilename(now time.Time) string {
	return fmt.Sprintf("projecten_%s.xlsx", now.Format("20060102_150405"))
}

func projectExportRow(p *domain.Project) []interface{} {
	financials := domain.CalculateFinancials(p)

	var clientName, locationName string
	if p.Location != nil {
		locationName = p.Location.Name
		if p.Location.Client != nil {
			clientName = p.Location.Client.Name
		}
	}

	row := []interface{}{
		p.Title,
		clientName,
		locationName,
		string(p.Type),
		string(p.Status),
		optionalDate(p.StartDate),
		optionalDate(p.DueDate),
		nil,
		financials.LaborCost.InexactFloat64(),
		financials.MaterialCost.InexactFloat64(),
		financials.ActualCost.InexactFloat64(),
		nil,
	}
	if p.QuotedPrice.Valid {
		row[7] = p.QuotedPrice.Decimal.InexactFloat64()
	}
	if financials.ProfitMargin != nil {
		row[11] = financials.ProfitMargin.InexactFloat64()
	}
	return row
}

func optionalDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(domain.DateLayout)
}
