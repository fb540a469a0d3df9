package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

type LaborerFilter struct {
	ProjectID *uuid.UUID
}

type LaborerRepository struct {
	db *gorm.DB
}

func NewLaborerRepository(db *gorm.DB) *LaborerRepository {
	return &LaborerRepository{db: db}
}

func (r *LaborerRepository) Create(ctx context.Context, laborer *model.Laborer) error {
	return r.db.WithContext(ctx).Create(laborer).Error
}

func (r *LaborerRepository) owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return ownedBy(r.db.WithContext(ctx).Model(&model.Laborer{}), "laborers", "assigned_project_id", userID)
}

func (r *LaborerRepository) GetForOwner(ctx context.Context, id, userID uuid.UUID) (*model.Laborer, error) {
	var laborer model.Laborer
	err := r.owned(ctx, userID).
		Select("laborers.*").
		Where("laborers.id = ?", id).
		First(&laborer).Error
	if err != nil {
		return nil, err
	}
	return &laborer, nil
}

func (r *LaborerRepository) ListForOwner(ctx context.Context, userID uuid.UUID, filter LaborerFilter, page Page) ([]model.Laborer, int64, error) {
	scoped := func() *gorm.DB {
		q := r.owned(ctx, userID)
		if filter.ProjectID != nil {
			q = q.Where("laborers.assigned_project_id = ?", *filter.ProjectID)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var laborers []model.Laborer
	q := scoped().Select("laborers.*").Order("laborers.name ASC")
	if err := page.apply(q).Find(&laborers).Error; err != nil {
		return nil, 0, err
	}
	return laborers, total, nil
}

// ListAll returns every laborer regardless of owner. Only the daily
// attendance reset uses it.
func (r *LaborerRepository) ListAll(ctx context.Context) ([]model.Laborer, error) {
	var laborers []model.Laborer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&laborers).Error; err != nil {
		return nil, err
	}
	return laborers, nil
}

func (r *LaborerRepository) Update(ctx context.Context, laborer *model.Laborer) error {
	return r.db.WithContext(ctx).
		Model(laborer).
		Select("name", "role", "daily_rate", "assigned_project_id", "updated_at").
		Updates(laborer).Error
}

func (r *LaborerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("laborer_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Laborer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
