package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

type ProgressInput struct {
	ProjectID uuid.UUID
	Date      time.Time
	Summary   string
	PhotoRef  *string
}

func (in ProgressInput) normalize() (ProgressInput, error) {
	if in.Date.IsZero() {
		return in, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	in.Date = model.DateOf(in.Date)
	var err error
	if in.Summary, err = requireText("summary", in.Summary, 0); err != nil {
		return in, err
	}
	if in.PhotoRef != nil {
		ref := strings.TrimSpace(*in.PhotoRef)
		switch {
		case ref == "":
			in.PhotoRef = nil
		case len(ref) > 500:
			return in, fmt.Errorf("%w: photo_ref must be at most 500 characters", ErrInvalidInput)
		default:
			in.PhotoRef = &ref
		}
	}
	return in, nil
}

type ProgressService struct {
	progress  *repository.ProgressRepository
	projects  *repository.ProjectRepository
	paginator Paginator
	audit     AuditTrail
}

func NewProgressService(progress *repository.ProgressRepository, projects *repository.ProjectRepository, paginator Paginator, audit AuditTrail) *ProgressService {
	return &ProgressService{progress: progress, projects: projects, paginator: paginator, audit: audit}
}

func (s *ProgressService) List(ctx context.Context, principal model.Principal, filter repository.ProgressFilter, params ListParams) (*ListResult[model.DailyProgress], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	entries, total, err := s.progress.ListForOwner(ctx, principal.UserID, filter, page)
	if err != nil {
		return nil, err
	}
	return newListResult(entries, total, resolved), nil
}

func (s *ProgressService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.DailyProgress, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	entry, err := s.progress.GetForOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return entry, nil
}

func (s *ProgressService) Create(ctx context.Context, principal model.Principal, in ProgressInput) (*model.DailyProgress, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, s.projects, principal, in.ProjectID); err != nil {
		return nil, err
	}
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	entry := &model.DailyProgress{
		ProjectID: in.ProjectID,
		Date:      in.Date,
		Summary:   in.Summary,
		PhotoRef:  in.PhotoRef,
	}
	if err := s.progress.Create(ctx, entry); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "daily_progress", entry.ID, "create", "progress for "+entry.Date.Format("2006-01-02"))
	return entry, nil
}

func (s *ProgressService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, in ProgressInput) (*model.DailyProgress, error) {
	entry, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if in.ProjectID != entry.ProjectID {
		if _, err := ownedProject(ctx, s.projects, principal, in.ProjectID); err != nil {
			return nil, err
		}
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	entry.ProjectID = in.ProjectID
	entry.Date = in.Date
	entry.Summary = in.Summary
	entry.PhotoRef = in.PhotoRef
	if err := s.progress.Update(ctx, entry); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "daily_progress", entry.ID, "update", "progress for "+entry.Date.Format("2006-01-02"))
	return entry, nil
}

func (s *ProgressService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	entry, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.progress.Delete(ctx, entry.ID); err != nil {
		return translate(err)
	}
	s.audit.record(ctx, principal, "daily_progress", entry.ID, "delete", "progress for "+entry.Date.Format("2006-01-02"))
	return nil
}
