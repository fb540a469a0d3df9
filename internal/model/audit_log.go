package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Entity   string    `gorm:"size:50;not null" json:"entity"` // "project", "laborer", "expense", ...
	EntityID uuid.UUID `gorm:"type:uuid;not null" json:"entity_id"`
	Action   string    `gorm:"size:50;not null" json:"action"` // "create", "update", "delete", "check_in"
	Details  string    `gorm:"type:text" json:"details"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
