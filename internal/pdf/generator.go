package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
)

// Generator renders project reports with a core font, so only Latin-1 text
// survives; other characters are replaced by the translator.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(report model.ProjectReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Project report", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	p := report.Project
	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr("Project report: "+p.Name), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s, %s to %s", safeValue(p.Location), formatDate(p.StartDate), formatDate(p.EndDate))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated "+report.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.section(pdf, "Summary")
	summary := [][2]string{
		{"Labor cost", formatMoney(report.TotalLaborCost)},
		{"Total expenses", formatMoney(report.TotalExpenses)},
		{"Material cost", formatMoney(report.MaterialCost)},
		{"Progress entries", fmt.Sprintf("%d", report.ProgressCount)},
		{"Grand total", formatMoney(report.GrandTotal)},
	}
	for _, row := range summary {
		g.drawTableRow(pdf, tr, []string{row[0], row[1]}, []float64{90, 50}, false)
	}
	pdf.Ln(4)

	g.section(pdf, "Labor")
	laborWidths := []float64{60, 40, 30, 20, 30}
	g.drawTableRow(pdf, tr, []string{"Laborer", "Role", "Daily rate", "Days", "Cost"}, laborWidths, true)
	for _, line := range report.LaborLines {
		g.drawTableRow(pdf, tr, []string{
			line.Name,
			line.Role.Label(),
			formatMoney(line.DailyRate),
			fmt.Sprintf("%d", line.DaysWorked),
			formatMoney(line.Cost),
		}, laborWidths, false)
	}
	if len(report.LaborLines) == 0 {
		pdf.CellFormat(0, 7, "No laborers assigned.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	g.section(pdf, "Expenses by category")
	expenseWidths := []float64{90, 50}
	g.drawTableRow(pdf, tr, []string{"Category", "Total"}, expenseWidths, true)
	for _, total := range report.ExpensesByCategory {
		g.drawTableRow(pdf, tr, []string{total.Category.Label(), formatMoney(total.Total)}, expenseWidths, false)
	}
	if len(report.ExpensesByCategory) == 0 {
		pdf.CellFormat(0, 7, "No expenses recorded.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *Generator) drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if !header && (i >= 2 || i == len(cols)-1) {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatMoney(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
