package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	PhotoRef  *string   `gorm:"size:500" json:"photo_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project *Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (DailyProgress) TableName() string {
	return "daily_progress"
}

func (p *DailyProgress) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
