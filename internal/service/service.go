package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

// Clock returns the current instant. Tests replace it to pin "today".
type Clock func() time.Time

// Calendar resolves "today" in the site's time zone.
type Calendar struct {
	Now      Clock
	Location *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Now: time.Now, Location: loc}
}

func (c Calendar) Today() time.Time {
	return model.DateOf(c.Now().In(c.Location))
}

type ListParams struct {
	Page     int
	PageSize int
}

type ListResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Paginator turns user supplied page/page_size into repository bounds.
type Paginator struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Resolve rejects pages whose offset would not fit a 32-bit integer.
func (p Paginator) Resolve(params ListParams) (repository.Page, ListParams, error) {
	size := params.PageSize
	if size <= 0 {
		size = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	if size > 0 && page-1 > math.MaxInt32/size {
		return repository.Page{}, ListParams{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidInput, page)
	}
	return repository.Page{Limit: size, Offset: (page - 1) * size}, ListParams{Page: page, PageSize: size}, nil
}

func newListResult[T any](items []T, total int64, params ListParams) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: total, Page: params.Page, PageSize: params.PageSize}
}

func requirePrincipal(principal model.Principal) error {
	if !principal.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// ownedProject resolves a project referenced by a mutation. Missing and
// foreign projects are indistinguishable to the caller.
func ownedProject(ctx context.Context, projects *repository.ProjectRepository, principal model.Principal, id uuid.UUID) (*model.Project, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	project, err := projects.GetForOwner(ctx, id, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	return project, nil
}

// AuditTrail records mutations. A failed audit write is logged and never
// fails the mutation itself.
type AuditTrail struct {
	repo *repository.AuditRepository
	log  zerolog.Logger
}

func NewAuditTrail(repo *repository.AuditRepository, log zerolog.Logger) AuditTrail {
	return AuditTrail{repo: repo, log: log}
}

func (a AuditTrail) record(ctx context.Context, principal model.Principal, entity string, entityID uuid.UUID, action, details string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Record(ctx, principal.UserID, entity, entityID, action, details); err != nil {
		a.log.Warn().Err(err).
			Str("entity", entity).
			Str("entity_id", entityID.String()).
			Str("action", action).
			Msg("audit log write failed")
	}
}
