package excel

import (
	"bytes"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/sitetrack/internal/model"
)

func sampleReport() model.ProjectReport {
	return model.ProjectReport{
		Project: model.Project{
			Name:      "Riverside",
			Location:  "Kampala",
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		LaborLines: []model.LaborCostLine{
			{Name: "Okello", Role: model.LaborerRoleMason, DailyRate: decimal.RequireFromString("100"), DaysWorked: 3, Cost: decimal.RequireFromString("300")},
		},
		TotalLaborCost: decimal.RequireFromString("300"),
		TotalExpenses:  decimal.RequireFromString("400.25"),
		MaterialCost:   decimal.RequireFromString("200"),
		ExpensesByCategory: []model.CategoryTotal{
			{Category: model.ExpenseCategoryEquipment, Total: decimal.RequireFromString("200.25")},
			{Category: model.ExpenseCategoryMaterials, Total: decimal.RequireFromString("200")},
		},
		ProgressCount: 2,
		GrandTotal:    decimal.RequireFromString("700.25"),
		GeneratedAt:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	c := qt.New(t)

	content, err := NewGenerator().Generate(sampleReport())
	c.Assert(err, qt.IsNil)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	c.Assert(err, qt.IsNil)
	defer file.Close()

	c.Assert(file.GetSheetList(), qt.DeepEquals, []string{summarySheet, laborSheet, expenseSheet})

	for cell, want := range map[string]string{
		"B1":  "Riverside",
		"B3":  "2024-01-01",
		"B5":  "2",
		"B12": "2024-03-15 10:00:00",
	} {
		got, err := file.GetCellValue(summarySheet, cell)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, want, qt.Commentf("cell %s", cell))
	}

	raw, err := file.GetCellValue(summarySheet, "B10", excelize.Options{RawCellValue: true})
	c.Assert(err, qt.IsNil)
	c.Assert(raw, qt.Equals, "700.25")

	rows, err := file.GetRows(expenseSheet)
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 4)
	c.Assert(rows[1][0], qt.Equals, "Equipment")
	c.Assert(rows[3][0], qt.Equals, "Total")

	rows, err = file.GetRows(laborSheet)
	c.Assert(err, qt.IsNil)
	c.Assert(rows[1][:2], qt.DeepEquals, []string{"Okello", "Mason"})
}

func TestGenerateEmptyReport(t *testing.T) {
	c := qt.New(t)

	content, err := NewGenerator().Generate(model.ProjectReport{Project: model.Project{Name: "Empty"}})
	c.Assert(err, qt.IsNil)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	c.Assert(err, qt.IsNil)
	defer file.Close()

	got, err := file.GetCellValue(summarySheet, "B3")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "")
}
