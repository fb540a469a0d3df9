// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/go-extras/go-kit/must"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/db"
	"github.com/nurpe/sitetrack/internal/model"
)

// NewDB opens a private, migrated in-memory SQLite database with foreign
// keys enforced. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			Driver:       config.DriverSQLite,
			DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
			MaxOpenConns: 1,
		},
	}
	database, err := db.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	sqlDB := must.Must(database.DB())
	t.Cleanup(func() { _ = sqlDB.Close() })
	return database
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Money(value string) decimal.Decimal {
	return must.Must(decimal.NewFromString(value))
}

func Principal(user model.User) model.Principal {
	return model.Principal{UserID: user.ID, Email: user.Email}
}

func CreateUser(t testing.TB, database *gorm.DB, email string) model.User {
	t.Helper()
	user := model.User{Email: email, Name: email, PasswordHash: "x"}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func CreateProject(t testing.TB, database *gorm.DB, owner model.User, name string) model.Project {
	t.Helper()
	project := model.Project{
		UserID:    owner.ID,
		Name:      name,
		Location:  "Site " + name,
		StartDate: Date(2024, 1, 1),
		EndDate:   Date(2030, 12, 31),
	}
	if err := database.Create(&project).Error; err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func CreateLaborer(t testing.TB, database *gorm.DB, project model.Project, name, rate string) model.Laborer {
	t.Helper()
	laborer := model.Laborer{
		Name:              name,
		Role:              model.LaborerRoleGeneral,
		DailyRate:         Money(rate),
		AssignedProjectID: project.ID,
	}
	if err := database.Create(&laborer).Error; err != nil {
		t.Fatalf("create laborer %s: %v", name, err)
	}
	return laborer
}

func CreateAttendance(t testing.TB, database *gorm.DB, laborer model.Laborer, projectID uuid.UUID, day time.Time, status model.AttendanceStatus) model.Attendance {
	t.Helper()
	record := model.Attendance{LaborerID: laborer.ID, ProjectID: projectID, Date: day, Status: status}
	if err := database.Create(&record).Error; err != nil {
		t.Fatalf("create attendance: %v", err)
	}
	return record
}

func CreateExpense(t testing.TB, database *gorm.DB, project model.Project, category model.ExpenseCategory, amount string) model.Expense {
	t.Helper()
	expense := model.Expense{
		ProjectID: project.ID,
		Date:      Date(2024, 3, 1),
		Category:  category,
		Amount:    Money(amount),
	}
	if err := database.Create(&expense).Error; err != nil {
		t.Fatalf("create expense: %v", err)
	}
	return expense
}
