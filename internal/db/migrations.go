package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
)

// Order matters: parents before children so foreign keys resolve.
var migrationModels = []interface{}{
	&model.User{},
	&model.Project{},
	&model.Laborer{},
	&model.Attendance{},
	&model.DailyProgress{},
	&model.Expense{},
	&model.AuditLog{},
}

// Statements here must run on both postgres and sqlite.
var migrationStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_laborer_project_date ON attendance (laborer_id, project_id, date);`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_project_category ON expenses (project_id, category);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user_start ON projects (user_id, start_date);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs (entity, entity_id);`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(migrationModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
