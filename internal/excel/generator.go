package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/sitetrack/internal/model"
)

const (
	summarySheet  = "Summary"
	laborSheet    = "Labor"
	expenseSheet  = "Expenses"
	moneyFormatID = 4 // #,##0.00
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.ProjectReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{laborSheet, expenseSheet} {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := file.NewStyle(&excelize.Style{NumFmt: moneyFormatID})
	if err != nil {
		return nil, err
	}

	s := sheetWriter{file: file, header: headerStyle, money: moneyStyle}
	s.writeSummary(report)
	s.writeLabor(report)
	s.writeExpenses(report)
	if s.err != nil {
		return nil, s.err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first write error so the layout code stays flat.
type sheetWriter struct {
	file   *excelize.File
	header int
	money  int
	err    error
}

func (s *sheetWriter) set(sheet, cell string, value interface{}) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetCellValue(sheet, cell, value)
}

func (s *sheetWriter) setMoney(sheet, cell string, value decimal.Decimal) {
	s.set(sheet, cell, value.InexactFloat64())
	if s.err == nil {
		s.err = s.file.SetCellStyle(sheet, cell, cell, s.money)
	}
}

func (s *sheetWriter) headerRow(sheet string, row int, headers ...string) {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			s.err = err
			return
		}
		s.set(sheet, cell, header)
	}
	if s.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	s.err = s.file.SetCellStyle(sheet, fmt.Sprintf("A%d", row), last, s.header)
}

func (s *sheetWriter) writeSummary(report model.ProjectReport) {
	p := report.Project
	s.set(summarySheet, "A1", "Project")
	s.set(summarySheet, "B1", p.Name)
	s.set(summarySheet, "A2", "Location")
	s.set(summarySheet, "B2", p.Location)
	s.set(summarySheet, "A3", "Start date")
	s.set(summarySheet, "B3", formatDate(p.StartDate))
	s.set(summarySheet, "A4", "End date")
	s.set(summarySheet, "B4", formatDate(p.EndDate))
	s.set(summarySheet, "A5", "Progress entries")
	s.set(summarySheet, "B5", report.ProgressCount)

	s.set(summarySheet, "A7", "Labor cost")
	s.setMoney(summarySheet, "B7", report.TotalLaborCost)
	s.set(summarySheet, "A8", "Total expenses")
	s.setMoney(summarySheet, "B8", report.TotalExpenses)
	s.set(summarySheet, "A9", "Material cost")
	s.setMoney(summarySheet, "B9", report.MaterialCost)
	s.set(summarySheet, "A10", "Grand total")
	s.setMoney(summarySheet, "B10", report.GrandTotal)

	s.set(summarySheet, "A12", "Generated at")
	s.set(summarySheet, "B12", formatDateTime(report.GeneratedAt))

	if s.err == nil {
		s.err = s.file.SetColWidth(summarySheet, "A", "A", 22)
	}
	if s.err == nil {
		s.err = s.file.SetColWidth(summarySheet, "B", "B", 40)
	}
}

func (s *sheetWriter) writeLabor(report model.ProjectReport) {
	s.headerRow(laborSheet, 1, "Laborer", "Role", "Daily rate", "Days", "Cost")
	for i, line := range report.LaborLines {
		row := i + 2
		s.set(laborSheet, fmt.Sprintf("A%d", row), line.Name)
		s.set(laborSheet, fmt.Sprintf("B%d", row), line.Role.Label())
		s.setMoney(laborSheet, fmt.Sprintf("C%d", row), line.DailyRate)
		s.set(laborSheet, fmt.Sprintf("D%d", row), line.DaysWorked)
		s.setMoney(laborSheet, fmt.Sprintf("E%d", row), line.Cost)
	}
	totalRow := len(report.LaborLines) + 2
	s.set(laborSheet, fmt.Sprintf("A%d", totalRow), "Total")
	s.setMoney(laborSheet, fmt.Sprintf("E%d", totalRow), report.TotalLaborCost)

	if s.err == nil {
		s.err = s.file.SetColWidth(laborSheet, "A", "B", 28)
	}
	if s.err == nil {
		s.err = s.file.SetColWidth(laborSheet, "C", "E", 14)
	}
}

func (s *sheetWriter) writeExpenses(report model.ProjectReport) {
	s.headerRow(expenseSheet, 1, "Category", "Total")
	for i, total := range report.ExpensesByCategory {
		row := i + 2
		s.set(expenseSheet, fmt.Sprintf("A%d", row), total.Category.Label())
		s.setMoney(expenseSheet, fmt.Sprintf("B%d", row), total.Total)
	}
	totalRow := len(report.ExpensesByCategory) + 2
	s.set(expenseSheet, fmt.Sprintf("A%d", totalRow), "Total")
	s.setMoney(expenseSheet, fmt.Sprintf("B%d", totalRow), report.TotalExpenses)

	if s.err == nil {
		s.err = s.file.SetColWidth(expenseSheet, "A", "A", 24)
	}
	if s.err == nil {
		s.err = s.file.SetColWidth(expenseSheet, "B", "B", 14)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
