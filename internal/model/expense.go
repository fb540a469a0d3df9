package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseCategoryMaterials      ExpenseCategory = "materials"
	ExpenseCategoryEquipment      ExpenseCategory = "equipment"
	ExpenseCategoryPermits        ExpenseCategory = "permits"
	ExpenseCategoryUtilities      ExpenseCategory = "utilities"
	ExpenseCategoryTransportation ExpenseCategory = "transportation"
	ExpenseCategorySupplies       ExpenseCategory = "supplies"
	ExpenseCategoryOther          ExpenseCategory = "other"
)

var expenseCategoryLabels = map[ExpenseCategory]string{
	ExpenseCategoryMaterials:      "Materials",
	ExpenseCategoryEquipment:      "Equipment",
	ExpenseCategoryPermits:        "Permits",
	ExpenseCategoryUtilities:      "Utilities",
	ExpenseCategoryTransportation: "Transportation",
	ExpenseCategorySupplies:       "Supplies",
	ExpenseCategoryOther:          "Other",
}

func (c ExpenseCategory) Valid() bool {
	_, ok := expenseCategoryLabels[c]
	return ok
}

func (c ExpenseCategory) Label() string {
	if label, ok := expenseCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	Category  ExpenseCategory `gorm:"type:varchar(50);not null" json:"category"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_expenses_amount,amount >= 0" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Project *Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
