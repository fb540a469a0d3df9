package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

const dashboardRecentLimit = 5

type ExcelGenerator interface {
	Generate(report model.ProjectReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.ProjectReport) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ReportService struct {
	reports    *repository.ReportRepository
	projects   *repository.ProjectRepository
	progress   *repository.ProgressRepository
	expenses   *repository.ExpenseRepository
	attendance *repository.AttendanceRepository
	excel      ExcelGenerator
	pdf        PDFGenerator
	calendar   Calendar
}

type ReportDeps struct {
	Reports    *repository.ReportRepository
	Projects   *repository.ProjectRepository
	Progress   *repository.ProgressRepository
	Expenses   *repository.ExpenseRepository
	Attendance *repository.AttendanceRepository
	Excel      ExcelGenerator
	PDF        PDFGenerator
	Calendar   Calendar
}

func NewReportService(deps ReportDeps) *ReportService {
	return &ReportService{
		reports:    deps.Reports,
		projects:   deps.Projects,
		progress:   deps.Progress,
		expenses:   deps.Expenses,
		attendance: deps.Attendance,
		excel:      deps.Excel,
		pdf:        deps.PDF,
		calendar:   deps.Calendar,
	}
}

func (s *ReportService) project(ctx context.Context, principal model.Principal, projectID uuid.UUID) (*model.Project, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	project, err := s.projects.GetForOwner(ctx, projectID, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// TotalLaborCost sums daily_rate × attendance days over the laborers
// currently assigned to the project.
func (s *ReportService) TotalLaborCost(ctx context.Context, principal model.Principal, projectID uuid.UUID) (decimal.Decimal, error) {
	project, err := s.project(ctx, principal, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	lines, err := s.laborLines(ctx, project.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumLaborLines(lines), nil
}

func (s *ReportService) TotalExpenses(ctx context.Context, principal model.Principal, projectID uuid.UUID) (decimal.Decimal, error) {
	project, err := s.project(ctx, principal, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	amounts, err := s.reports.ListExpenseAmounts(ctx, project.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumExpenses(amounts), nil
}

func (s *ReportService) ExpensesByCategory(ctx context.Context, principal model.Principal, projectID uuid.UUID) ([]model.CategoryTotal, error) {
	project, err := s.project(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}
	amounts, err := s.reports.ListExpenseAmounts(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return groupByCategory(amounts), nil
}

func (s *ReportService) ProjectReport(ctx context.Context, principal model.Principal, projectID uuid.UUID) (*model.ProjectReport, error) {
	project, err := s.project(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	lines, err := s.laborLines(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	amounts, err := s.reports.ListExpenseAmounts(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	progressCount, err := s.reports.CountProgress(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	byCategory := groupByCategory(amounts)
	material := decimal.Zero
	for _, total := range byCategory {
		if total.Category == model.ExpenseCategoryMaterials {
			material = total.Total
		}
	}

	labor := sumLaborLines(lines)
	expenses := sumExpenses(amounts)
	return &model.ProjectReport{
		Project:            *project,
		LaborLines:         lines,
		TotalLaborCost:     labor,
		TotalExpenses:      expenses,
		MaterialCost:       material,
		ExpensesByCategory: byCategory,
		ProgressCount:      progressCount,
		GrandTotal:         labor.Add(expenses),
		GeneratedAt:        s.calendar.Now().UTC(),
	}, nil
}

func (s *ReportService) Export(ctx context.Context, principal model.Principal, projectID uuid.UUID, format model.ReportFormat) (*ExportResult, error) {
	var (
		generate    func(model.ProjectReport) ([]byte, error)
		contentType string
	)
	switch format {
	case model.ReportFormatXLSX:
		if s.excel == nil {
			return nil, fmt.Errorf("excel generator is not configured")
		}
		generate = s.excel.Generate
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case model.ReportFormatPDF:
		if s.pdf == nil {
			return nil, fmt.Errorf("pdf generator is not configured")
		}
		generate = s.pdf.Generate
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("%w: unknown report format %q", ErrInvalidInput, format)
	}

	report, err := s.ProjectReport(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}
	content, err := generate(*report)
	if err != nil {
		return nil, fmt.Errorf("generate %s report: %w", format, err)
	}
	return &ExportResult{
		FileName:    reportFileName(report.Project, report.GeneratedAt.Format("20060102"), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *ReportService) Dashboard(ctx context.Context, principal model.Principal) (*model.Dashboard, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	userID := principal.UserID
	today := s.calendar.Today()
	present := model.AttendanceStatusPresent

	var (
		dash model.Dashboard
		err  error
	)
	if dash.TotalProjects, err = s.reports.CountProjectsForOwner(ctx, userID); err != nil {
		return nil, err
	}
	if dash.ActiveProjects, err = s.reports.CountActiveProjectsForOwner(ctx, userID, today); err != nil {
		return nil, err
	}
	if dash.TotalLaborers, err = s.reports.CountLaborersForOwner(ctx, userID); err != nil {
		return nil, err
	}
	if dash.AttendanceToday, err = s.attendance.CountForOwner(ctx, userID, repository.AttendanceFilter{Date: &today}); err != nil {
		return nil, err
	}
	if dash.PresentToday, err = s.attendance.CountForOwner(ctx, userID, repository.AttendanceFilter{Date: &today, Status: &present}); err != nil {
		return nil, err
	}

	recent := repository.Page{Limit: dashboardRecentLimit}
	if dash.RecentProjects, _, err = s.projects.ListForOwner(ctx, userID, recent); err != nil {
		return nil, err
	}
	if dash.RecentProgress, _, err = s.progress.ListForOwner(ctx, userID, repository.ProgressFilter{}, recent); err != nil {
		return nil, err
	}
	if dash.RecentExpenses, _, err = s.expenses.ListForOwner(ctx, userID, repository.ExpenseFilter{}, recent); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (s *ReportService) laborLines(ctx context.Context, projectID uuid.UUID) ([]model.LaborCostLine, error) {
	laborers, err := s.reports.ListProjectLaborers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	days, err := s.reports.LaborDaysByLaborer(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return laborCost(laborers, days), nil
}

// laborCost builds one line per laborer. Laborers without attendance get a
// zero line.
func laborCost(laborers []model.Laborer, days []repository.LaborDays) []model.LaborCostLine {
	counts := make(map[uuid.UUID]int64, len(days))
	for _, d := range days {
		counts[d.LaborerID] += d.Days
	}
	lines := make([]model.LaborCostLine, 0, len(laborers))
	for _, l := range laborers {
		n := counts[l.ID]
		lines = append(lines, model.LaborCostLine{
			LaborerID:  l.ID,
			Name:       l.Name,
			Role:       l.Role,
			DailyRate:  l.DailyRate,
			DaysWorked: n,
			Cost:       l.DailyRate.Mul(decimal.NewFromInt(n)),
		})
	}
	return lines
}

func sumLaborLines(lines []model.LaborCostLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Cost)
	}
	return total
}

func sumExpenses(amounts []repository.ExpenseAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Amount)
	}
	return total
}

// groupByCategory orders by total descending, then by category name.
func groupByCategory(amounts []repository.ExpenseAmount) []model.CategoryTotal {
	totals := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, a := range amounts {
		totals[a.Category] = totals[a.Category].Add(a.Amount)
	}
	result := make([]model.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, model.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Total.Cmp(result[j].Total); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

func reportFileName(project model.Project, stamp string, format model.ReportFormat) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(project.Name))
	if name == "" {
		name = project.ID.String()
	}
	return fmt.Sprintf("project_report_%s_%s.%s", name, stamp, format)
}
