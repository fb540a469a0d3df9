package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

type ExpenseFilter struct {
	ProjectID *uuid.UUID
	Category  *model.ExpenseCategory
}

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) scoped(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) *gorm.DB {
	q := ownedBy(r.db.WithContext(ctx).Model(&model.Expense{}), "expenses", "project_id", userID)
	if filter.ProjectID != nil {
		q = q.Where("expenses.project_id = ?", *filter.ProjectID)
	}
	if filter.Category != nil {
		q = q.Where("expenses.category = ?", string(*filter.Category))
	}
	return q
}

func (r *ExpenseRepository) GetForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.scoped(ctx, userID, ExpenseFilter{}).
		Select("expenses.*").
		Where("expenses.id = ?", id).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) ListForOwner(ctx context.Context, userID uuid.UUID, filter ExpenseFilter, page Page) ([]model.Expense, int64, error) {
	var total int64
	if err := r.scoped(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []model.Expense
	q := r.scoped(ctx, userID, filter).
		Select("expenses.*").
		Order("expenses.date DESC").
		Order("expenses.created_at DESC")
	if err := page.apply(q).Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).
		Model(expense).
		Select("project_id", "date", "category", "amount", "notes", "updated_at").
		Updates(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
