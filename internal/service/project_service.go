package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

type ProjectInput struct {
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

func (in ProjectInput) normalize() (ProjectInput, error) {
	var err error
	if in.Name, err = requireText("name", in.Name, 200); err != nil {
		return in, err
	}
	if in.Location, err = requireText("location", in.Location, 200); err != nil {
		return in, err
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return in, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}
	in.StartDate = model.DateOf(in.StartDate)
	in.EndDate = model.DateOf(in.EndDate)
	if in.EndDate.Before(in.StartDate) {
		return in, fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}
	return in, nil
}

type ProjectService struct {
	projects  *repository.ProjectRepository
	paginator Paginator
	audit     AuditTrail
}

func NewProjectService(projects *repository.ProjectRepository, paginator Paginator, audit AuditTrail) *ProjectService {
	return &ProjectService{projects: projects, paginator: paginator, audit: audit}
}

func (s *ProjectService) List(ctx context.Context, principal model.Principal, params ListParams) (*ListResult[model.Project], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	projects, total, err := s.projects.ListForOwner(ctx, principal.UserID, page)
	if err != nil {
		return nil, err
	}
	return newListResult(projects, total, resolved), nil
}

func (s *ProjectService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Project, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	project, err := s.projects.GetForOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, principal model.Principal, in ProjectInput) (*model.Project, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		UserID:    principal.UserID,
		Name:      in.Name,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "project", project.ID, "create", "created project "+project.Name)
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, in ProjectInput) (*model.Project, error) {
	project, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	project.Name = in.Name
	project.Location = in.Location
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "project", project.ID, "update", "updated project "+project.Name)
	return project, nil
}

// Delete removes the project together with its laborers, attendance,
// progress entries and expenses.
func (s *ProjectService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	project, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return translate(err)
	}
	s.audit.record(ctx, principal, "project", project.ID, "delete", "deleted project "+project.Name)
	return nil
}
