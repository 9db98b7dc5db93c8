package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// TimeEntryCost returns hours times hourly rate, rounded to cents
func TimeEntryCost(hours, hourlyRate decimal.Decimal) decimal.Decimal {
	return hours.Mul(hourlyRate).Round(moneyScale)
}

// MaterialCost returns quantity times unit cost, rounded to cents
func MaterialCost(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost).Round(moneyScale)
}

// LaborCost sums the cost of all time entries
func LaborCost(entries []TimeEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].TotalCost())
	}
	return total
}

// MaterialsCost sums the stored total cost of all materials
func MaterialsCost(materials []ProjectMaterial) decimal.Decimal {
	total := decimal.Zero
	for i := range materials {
		total = total.Add(materials[i].TotalCost)
	}
	return total
}

// ProjectFinancials holds the derived cost figures of a project.
// These are never persisted; they are computed from the loaded child rows.
type ProjectFinancials struct {
	LaborCost    decimal.Decimal  `json:"laborCost"`
	MaterialCost decimal.Decimal  `json:"materialCost"`
	ActualCost   decimal.Decimal  `json:"actualCost"`
	ProfitMargin *decimal.Decimal `json:"profitMargin"`
}

// CalculateFinancials computes labor, material and actual cost plus the margin
// against the quoted price. ProfitMargin is nil when the project has no quote.
func CalculateFinancials(project *Project) ProjectFinancials {
	labor := LaborCost(project.TimeEntries)
	materials := MaterialsCost(project.Materials)
	actual := labor.Add(materials)

	f := ProjectFinancials{
		LaborCost:    labor,
		MaterialCost: materials,
		ActualCost:   actual,
	}
	if project.QuotedPrice.Valid {
		margin := project.QuotedPrice.Decimal.Sub(actual)
		f.ProfitMargin = &margin
	}
	return f
}

// FullAddress formats address, postal code and city on one line
func (l *Location) FullAddress() string {
	return fmt.Sprintf("%s, %s %s", l.Address, l.PostalCode, l.City)
}
