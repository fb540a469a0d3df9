package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

// LaborDays is the number of attendance rows a laborer has on a project.
type LaborDays struct {
	LaborerID uuid.UUID
	Days      int64
}

// ExpenseAmount is the minimal projection used for expense aggregation.
// Sums are computed in Go so decimal precision does not depend on the driver.
type ExpenseAmount struct {
	Category model.ExpenseCategory
	Amount   decimal.Decimal
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListProjectLaborers(ctx context.Context, projectID uuid.UUID) ([]model.Laborer, error) {
	var laborers []model.Laborer
	err := r.db.WithContext(ctx).
		Where("assigned_project_id = ?", projectID).
		Order("name ASC").
		Find(&laborers).Error
	if err != nil {
		return nil, err
	}
	return laborers, nil
}

// LaborDaysByLaborer counts attendance rows on the project for each laborer
// currently assigned to it. Status is not filtered: absent rows count too.
func (r *ReportRepository) LaborDaysByLaborer(ctx context.Context, projectID uuid.UUID) ([]LaborDays, error) {
	var rows []LaborDays
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.laborer_id AS laborer_id,
			COUNT(*) AS days
		FROM attendance a
		JOIN laborers l ON l.id = a.laborer_id
		WHERE l.assigned_project_id = ?
			AND a.project_id = ?
		GROUP BY a.laborer_id
	`, projectID, projectID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) ListExpenseAmounts(ctx context.Context, projectID uuid.UUID) ([]ExpenseAmount, error) {
	var rows []ExpenseAmount
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, amount").
		Where("project_id = ?", projectID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CountProgress(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.DailyProgress{}).
		Where("project_id = ?", projectID).
		Count(&total).Error
	return total, err
}

func (r *ReportRepository) CountLaborersForOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := ownedBy(r.db.WithContext(ctx).Model(&model.Laborer{}), "laborers", "assigned_project_id", userID).
		Count(&total).Error
	return total, err
}

func (r *ReportRepository) CountProjectsForOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

func (r *ReportRepository) CountActiveProjectsForOwner(ctx context.Context, userID uuid.UUID, day time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("user_id = ? AND end_date >= ?", userID, model.DateOf(day)).
		Count(&total).Error
	return total, err
}
