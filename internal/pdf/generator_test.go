package pdf

import (
	"bytes"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
)

func TestGenerate(t *testing.T) {
	c := qt.New(t)

	report := model.ProjectReport{
		Project: model.Project{Name: "Riverside Café", Location: "Kampala"},
		LaborLines: []model.LaborCostLine{
			{Name: "Okello", Role: model.LaborerRoleMason, DailyRate: decimal.RequireFromString("100"), DaysWorked: 3, Cost: decimal.RequireFromString("300")},
		},
		ExpensesByCategory: []model.CategoryTotal{
			{Category: model.ExpenseCategoryMaterials, Total: decimal.RequireFromString("200")},
		},
		TotalLaborCost: decimal.RequireFromString("300"),
		TotalExpenses:  decimal.RequireFromString("200"),
		GrandTotal:     decimal.RequireFromString("500"),
		GeneratedAt:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	content, err := NewGenerator().Generate(report)
	c.Assert(err, qt.IsNil)
	c.Assert(bytes.HasPrefix(content, []byte("%PDF-")), qt.IsTrue)
	c.Assert(bytes.Contains(content, []byte("%%EOF")), qt.IsTrue)
}

func TestFormatting(t *testing.T) {
	c := qt.New(t)

	c.Assert(formatMoney(decimal.RequireFromString("1234.5")), qt.Equals, "1234.50")
	c.Assert(formatMoney(decimal.Zero), qt.Equals, "0.00")
	c.Assert(safeValue("  "), qt.Equals, "-")
	c.Assert(safeValue("Kampala"), qt.Equals, "Kampala")
	c.Assert(formatDate(time.Time{}), qt.Equals, "")
	c.Assert(formatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), qt.Equals, "2024-03-01")
}
