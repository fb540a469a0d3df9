package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// CategoryTotal is the summed amount of one expense category.
type CategoryTotal struct {
	Category ExpenseCategory `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// LaborCostLine is one laborer's contribution to a project's labor cost.
type LaborCostLine struct {
	LaborerID  uuid.UUID       `json:"laborer_id"`
	Name       string          `json:"name"`
	Role       LaborerRole     `json:"role"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	DaysWorked int64           `json:"days_worked"`
	Cost       decimal.Decimal `json:"cost"`
}

type ProjectReport struct {
	Project            Project         `json:"project"`
	LaborLines         []LaborCostLine `json:"labor_lines"`
	TotalLaborCost     decimal.Decimal `json:"total_labor_cost"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	MaterialCost       decimal.Decimal `json:"material_cost"`
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
	ProgressCount      int64           `json:"progress_count"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type Dashboard struct {
	TotalProjects   int64           `json:"total_projects"`
	ActiveProjects  int64           `json:"active_projects"`
	TotalLaborers   int64           `json:"total_laborers"`
	PresentToday    int64           `json:"present_today"`
	AttendanceToday int64           `json:"attendance_today"`
	RecentProjects  []Project       `json:"recent_projects"`
	RecentProgress  []DailyProgress `json:"recent_progress"`
	RecentExpenses  []Expense       `json:"recent_expenses"`
}
