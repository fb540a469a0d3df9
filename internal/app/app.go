// Package app wires repositories, services and HTTP handlers together.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/auth"
	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/excel"
	httphandler "github.com/nurpe/sitetrack/internal/http"
	"github.com/nurpe/sitetrack/internal/http/middleware"
	"github.com/nurpe/sitetrack/internal/pdf"
	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/service"
)

type App struct {
	Config   *config.Config
	Calendar service.Calendar
	Services httphandler.Services
	log      zerolog.Logger
}

func New(cfg *config.Config, database *gorm.DB, log zerolog.Logger) *App {
	users := repository.NewUserRepository(database)
	projects := repository.NewProjectRepository(database)
	laborers := repository.NewLaborerRepository(database)
	attendance := repository.NewAttendanceRepository(database)
	progress := repository.NewProgressRepository(database)
	expenses := repository.NewExpenseRepository(database)
	reports := repository.NewReportRepository(database)
	auditLogs := repository.NewAuditRepository(database)
	audit := service.NewAuditTrail(auditLogs, log)

	calendar := service.NewCalendar(cfg.Location)
	paginator := service.Paginator{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	return &App{
		Config:   cfg,
		Calendar: calendar,
		log:      log,
		Services: httphandler.Services{
			Auth:       service.NewAuthService(users, auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)),
			Projects:   service.NewProjectService(projects, paginator, audit),
			Laborers:   service.NewLaborerService(laborers, projects, attendance, paginator, audit),
			Attendance: service.NewAttendanceService(attendance, laborers, calendar, paginator, audit, log),
			Progress:   service.NewProgressService(progress, projects, paginator, audit),
			Expenses:   service.NewExpenseService(expenses, projects, paginator, audit),
			Audit:      service.NewAuditService(auditLogs, paginator),
			Reports: service.NewReportService(service.ReportDeps{
				Reports:    reports,
				Projects:   projects,
				Progress:   progress,
				Expenses:   expenses,
				Attendance: attendance,
				Excel:      excel.NewGenerator(),
				PDF:        pdf.NewGenerator(),
				Calendar:   calendar,
			}),
		},
	}
}

func (a *App) Router() *gin.Engine {
	handler := httphandler.NewHandler(a.Services, a.log)
	authMiddleware := middleware.Auth(auth.NewParser(a.Config.Auth.AccessSecret))
	return httphandler.NewRouter(handler, authMiddleware, a.Config.Environment, a.Config.HTTP.AllowedOrigins)
}
