package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/sitetrack/internal/http/middleware"
	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/service"
)

type Services struct {
	Auth       *service.AuthService
	Projects   *service.ProjectService
	Laborers   *service.LaborerService
	Attendance *service.AttendanceService
	Progress   *service.ProgressService
	Expenses   *service.ExpenseService
	Reports    *service.ReportService
	Audit      *service.AuditService
}

type Handler struct {
	auth       *service.AuthService
	projects   *service.ProjectService
	laborers   *service.LaborerService
	attendance *service.AttendanceService
	progress   *service.ProgressService
	expenses   *service.ExpenseService
	reports    *service.ReportService
	audit      *service.AuditService
	log        zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		auth:       services.Auth,
		projects:   services.Projects,
		laborers:   services.Laborers,
		attendance: services.Attendance,
		progress:   services.Progress,
		expenses:   services.Expenses,
		reports:    services.Reports,
		audit:      services.Audit,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	public := router.Group("/auth")
	public.POST("/register", h.register)
	public.POST("/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/auth/me", h.me)
	protected.GET("/dashboard", h.dashboard)
	protected.GET("/audit-log", h.listAuditLog)

	protected.GET("/projects", h.listProjects)
	protected.POST("/projects", h.createProject)
	protected.GET("/projects/:id", h.getProject)
	protected.PUT("/projects/:id", h.updateProject)
	protected.DELETE("/projects/:id", h.deleteProject)
	protected.GET("/projects/:id/report", h.projectReport)
	protected.GET("/projects/:id/report/xlsx", h.exportReport(model.ReportFormatXLSX))
	protected.GET("/projects/:id/report/pdf", h.exportReport(model.ReportFormatPDF))

	protected.GET("/laborers", h.listLaborers)
	protected.POST("/laborers", h.createLaborer)
	protected.GET("/laborers/:id", h.getLaborer)
	protected.PUT("/laborers/:id", h.updateLaborer)
	protected.DELETE("/laborers/:id", h.deleteLaborer)
	protected.GET("/laborers/:id/attendance", h.laborerAttendance)
	protected.POST("/laborers/:id/checkin", h.checkIn)

	protected.GET("/attendance", h.listAttendance)

	protected.GET("/progress", h.listProgress)
	protected.POST("/progress", h.createProgress)
	protected.GET("/progress/:id", h.getProgress)
	protected.PUT("/progress/:id", h.updateProgress)
	protected.DELETE("/progress/:id", h.deleteProgress)

	protected.GET("/expenses", h.listExpenses)
	protected.POST("/expenses", h.createExpense)
	protected.GET("/expenses/:id", h.getExpense)
	protected.PUT("/expenses/:id", h.updateExpense)
	protected.DELETE("/expenses/:id", h.deleteExpense)
}

// principal writes a 401 and reports false when the request carries none.
func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return p, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func listParams(c *gin.Context) (service.ListParams, bool) {
	var params service.ListParams
	for key, dst := range map[string]*int{"page": &params.Page, "page_size": &params.PageSize} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "invalid "+key)
			return params, false
		}
		*dst = n
	}
	return params, true
}

// queryUUID returns nil when the parameter is absent.
func queryUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, "invalid "+key)
		return nil, false
	}
	return &id, true
}

func queryDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	day, err := parseDate(raw)
	if err != nil {
		badRequest(c, "invalid "+key)
		return nil, false
	}
	return &day, true
}

// parseProjectID maps an empty body field to uuid.Nil so the service can
// report the missing project.
func parseProjectID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
