package service

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/testutil"
)

var fixtureNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	calendar   Calendar
	projects   *ProjectService
	laborers   *LaborerService
	attendance *AttendanceService
	progress   *ProgressService
	expenses   *ExpenseService
	reports    *ReportService
	audit      *AuditService

	alice model.Principal
	bob   model.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database := testutil.NewDB(t)
	calendar := Calendar{Now: func() time.Time { return fixtureNow }, Location: time.UTC}
	paginator := Paginator{DefaultPageSize: 10, MaxPageSize: 100}

	projects := repository.NewProjectRepository(database)
	laborers := repository.NewLaborerRepository(database)
	attendance := repository.NewAttendanceRepository(database)
	progress := repository.NewProgressRepository(database)
	expenses := repository.NewExpenseRepository(database)
	auditLogs := repository.NewAuditRepository(database)
	audit := NewAuditTrail(auditLogs, zerolog.Nop())

	return &fixture{
		db:         database,
		calendar:   calendar,
		projects:   NewProjectService(projects, paginator, audit),
		laborers:   NewLaborerService(laborers, projects, attendance, paginator, audit),
		attendance: NewAttendanceService(attendance, laborers, calendar, paginator, audit, zerolog.Nop()),
		progress:   NewProgressService(progress, projects, paginator, audit),
		expenses:   NewExpenseService(expenses, projects, paginator, audit),
		audit:      NewAuditService(auditLogs, paginator),
		reports: NewReportService(ReportDeps{
			Reports:    repository.NewReportRepository(database),
			Projects:   projects,
			Progress:   progress,
			Expenses:   expenses,
			Attendance: attendance,
			Excel:      stubGenerator("xlsx"),
			PDF:        stubGenerator("pdf"),
			Calendar:   calendar,
		}),
		alice: testutil.Principal(testutil.CreateUser(t, database, "alice@example.com")),
		bob:   testutil.Principal(testutil.CreateUser(t, database, "bob@example.com")),
	}
}

type stubGenerator string

func (g stubGenerator) Generate(report model.ProjectReport) ([]byte, error) {
	return []byte(string(g) + ":" + report.Project.Name), nil
}

func (f *fixture) project(c *qt.C, owner model.Principal, name string) *model.Project {
	c.Helper()
	project, err := f.projects.Create(context.Background(), owner, ProjectInput{
		Name:      name,
		Location:  "Main street",
		StartDate: testutil.Date(2024, 1, 1),
		EndDate:   testutil.Date(2024, 12, 31),
	})
	c.Assert(err, qt.IsNil)
	return project
}

func (f *fixture) laborer(c *qt.C, owner model.Principal, projectID uuid.UUID, name, rate string) *model.Laborer {
	c.Helper()
	laborer, err := f.laborers.Create(context.Background(), owner, LaborerInput{
		Name:      name,
		Role:      model.LaborerRoleMason,
		DailyRate: testutil.Money(rate),
		ProjectID: projectID,
	})
	c.Assert(err, qt.IsNil)
	return laborer
}

func (f *fixture) count(c *qt.C, value interface{}) int64 {
	c.Helper()
	var n int64
	c.Assert(f.db.Model(value).Count(&n).Error, qt.IsNil)
	return n
}

func assertMoney(c *qt.C, got decimal.Decimal, want string) {
	c.Helper()
	c.Assert(got.Equal(testutil.Money(want)), qt.IsTrue, qt.Commentf("got %s, want %s", got, want))
}
