package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, userID uuid.UUID, entity string, entityID uuid.UUID, action, details string) error {
	entry := model.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *AuditRepository) ListForUser(ctx context.Context, userID uuid.UUID, page Page) ([]model.AuditLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AuditLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if err := page.apply(q).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
