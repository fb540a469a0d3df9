package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LaborerRole string

const (
	LaborerRoleForeman     LaborerRole = "foreman"
	LaborerRoleElectrician LaborerRole = "electrician"
	LaborerRolePlumber     LaborerRole = "plumber"
	LaborerRoleCarpenter   LaborerRole = "carpenter"
	LaborerRoleMason       LaborerRole = "mason"
	LaborerRolePainter     LaborerRole = "painter"
	LaborerRoleGeneral     LaborerRole = "general"
	LaborerRoleOperator    LaborerRole = "operator"
)

var laborerRoleLabels = map[LaborerRole]string{
	LaborerRoleForeman:     "Foreman",
	LaborerRoleElectrician: "Electrician",
	LaborerRolePlumber:     "Plumber",
	LaborerRoleCarpenter:   "Carpenter",
	LaborerRoleMason:       "Mason",
	LaborerRolePainter:     "Painter",
	LaborerRoleGeneral:     "General Labor",
	LaborerRoleOperator:    "Equipment Operator",
}

func (r LaborerRole) Valid() bool {
	_, ok := laborerRoleLabels[r]
	return ok
}

func (r LaborerRole) Label() string {
	if label, ok := laborerRoleLabels[r]; ok {
		return label
	}
	return string(r)
}

type Laborer struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"size:100;not null" json:"name"`
	Role              LaborerRole     `gorm:"type:varchar(50);not null" json:"role"`
	DailyRate         decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_laborers_daily_rate,daily_rate >= 0" json:"daily_rate"`
	AssignedProjectID uuid.UUID       `gorm:"type:uuid;not null;index" json:"assigned_project_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	AssignedProject *Project `gorm:"foreignKey:AssignedProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (l *Laborer) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LaborerDetail is a laborer with its cost on the current assignment.
type LaborerDetail struct {
	Laborer
	DaysWorked int64           `json:"days_worked"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}
