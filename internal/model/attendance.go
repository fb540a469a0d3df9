package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusAbsent
}

// Attendance is one laborer's status for one calendar day on one project.
// (laborer_id, project_id, date) is unique.
type Attendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	LaborerID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_laborer_project_date,priority:1" json:"laborer_id"`
	ProjectID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_laborer_project_date,priority:2;index" json:"project_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_laborer_project_date,priority:3" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null;default:absent" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Laborer *Laborer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Project *Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ResetOutcome is the per-laborer result of a daily attendance reset.
type ResetOutcome struct {
	LaborerID   uuid.UUID `json:"laborer_id"`
	LaborerName string    `json:"laborer_name"`
	ProjectID   uuid.UUID `json:"project_id"`
	Created     bool      `json:"created"`
}

type ResetResult struct {
	Date     time.Time      `json:"date"`
	Outcomes []ResetOutcome `json:"outcomes"`
}

func (r ResetResult) CreatedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Created {
			n++
		}
	}
	return n
}
