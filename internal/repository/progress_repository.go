package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

type ProgressFilter struct {
	ProjectID *uuid.UUID
}

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, entry *model.DailyProgress) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ProgressRepository) scoped(ctx context.Context, userID uuid.UUID, filter ProgressFilter) *gorm.DB {
	q := ownedBy(r.db.WithContext(ctx).Model(&model.DailyProgress{}), "daily_progress", "project_id", userID)
	if filter.ProjectID != nil {
		q = q.Where("daily_progress.project_id = ?", *filter.ProjectID)
	}
	return q
}

func (r *ProgressRepository) GetForOwner(ctx context.Context, id, userID uuid.UUID) (*model.DailyProgress, error) {
	var entry model.DailyProgress
	err := r.scoped(ctx, userID, ProgressFilter{}).
		Select("daily_progress.*").
		Where("daily_progress.id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ProgressRepository) ListForOwner(ctx context.Context, userID uuid.UUID, filter ProgressFilter, page Page) ([]model.DailyProgress, int64, error) {
	var total int64
	if err := r.scoped(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.DailyProgress
	q := r.scoped(ctx, userID, filter).
		Select("daily_progress.*").
		Order("daily_progress.date DESC").
		Order("daily_progress.created_at DESC")
	if err := page.apply(q).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *ProgressRepository) Update(ctx context.Context, entry *model.DailyProgress) error {
	return r.db.WithContext(ctx).
		Model(entry).
		Select("project_id", "date", "summary", "photo_ref", "updated_at").
		Updates(entry).Error
}

func (r *ProgressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DailyProgress{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
