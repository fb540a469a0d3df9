package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

type LaborerInput struct {
	Name      string
	Role      model.LaborerRole
	DailyRate decimal.Decimal
	ProjectID uuid.UUID
}

func (in LaborerInput) normalize() (LaborerInput, error) {
	var err error
	if in.Name, err = requireText("name", in.Name, 100); err != nil {
		return in, err
	}
	if !in.Role.Valid() {
		return in, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if err := requireMoney("daily_rate", in.DailyRate); err != nil {
		return in, err
	}
	return in, nil
}

type LaborerService struct {
	laborers   *repository.LaborerRepository
	projects   *repository.ProjectRepository
	attendance *repository.AttendanceRepository
	paginator  Paginator
	audit      AuditTrail
}

func NewLaborerService(
	laborers *repository.LaborerRepository,
	projects *repository.ProjectRepository,
	attendance *repository.AttendanceRepository,
	paginator Paginator,
	audit AuditTrail,
) *LaborerService {
	return &LaborerService{
		laborers:   laborers,
		projects:   projects,
		attendance: attendance,
		paginator:  paginator,
		audit:      audit,
	}
}

func (s *LaborerService) List(ctx context.Context, principal model.Principal, filter repository.LaborerFilter, params ListParams) (*ListResult[model.Laborer], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	laborers, total, err := s.laborers.ListForOwner(ctx, principal.UserID, filter, page)
	if err != nil {
		return nil, err
	}
	return newListResult(laborers, total, resolved), nil
}

func (s *LaborerService) get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Laborer, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	laborer, err := s.laborers.GetForOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return laborer, nil
}

// Get returns the laborer with its cost on the current assignment.
func (s *LaborerService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.LaborerDetail, error) {
	laborer, err := s.get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *laborer)
}

// TotalCost is daily_rate times the laborer's attendance rows on the
// currently assigned project. Rows left on a previous project are not
// counted.
func (s *LaborerService) TotalCost(ctx context.Context, principal model.Principal, id uuid.UUID) (decimal.Decimal, error) {
	detail, err := s.Get(ctx, principal, id)
	if err != nil {
		return decimal.Zero, err
	}
	return detail.TotalCost, nil
}

func (s *LaborerService) detail(ctx context.Context, laborer model.Laborer) (*model.LaborerDetail, error) {
	days, err := s.attendance.CountForLaborerOnProject(ctx, laborer.ID, laborer.AssignedProjectID)
	if err != nil {
		return nil, err
	}
	return &model.LaborerDetail{
		Laborer:    laborer,
		DaysWorked: days,
		TotalCost:  laborer.DailyRate.Mul(decimal.NewFromInt(days)),
	}, nil
}

func (s *LaborerService) Create(ctx context.Context, principal model.Principal, in LaborerInput) (*model.Laborer, error) {
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

	laborer := &model.Laborer{
		Name:              in.Name,
		Role:              in.Role,
		DailyRate:         in.DailyRate,
		AssignedProjectID: in.ProjectID,
	}
	if err := s.laborers.Create(ctx, laborer); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "laborer", laborer.ID, "create", "created laborer "+laborer.Name)
	return laborer, nil
}

// Update may reassign the laborer to another project owned by the caller.
// Attendance on the previous project stays where it is.
func (s *LaborerService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, in LaborerInput) (*model.Laborer, error) {
	laborer, err := s.get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if in.ProjectID != laborer.AssignedProjectID {
		if _, err := ownedProject(ctx, s.projects, principal, in.ProjectID); err != nil {
			return nil, err
		}
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	laborer.Name = in.Name
	laborer.Role = in.Role
	laborer.DailyRate = in.DailyRate
	laborer.AssignedProjectID = in.ProjectID
	if err := s.laborers.Update(ctx, laborer); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "laborer", laborer.ID, "update", "updated laborer "+laborer.Name)
	return laborer, nil
}

func (s *LaborerService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	laborer, err := s.get(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.laborers.Delete(ctx, laborer.ID); err != nil {
		return translate(err)
	}
	s.audit.record(ctx, principal, "laborer", laborer.ID, "delete", "deleted laborer "+laborer.Name)
	return nil
}

// Attendance lists the laborer's attendance history, newest first, across
// every project the caller owns.
func (s *LaborerService) Attendance(ctx context.Context, principal model.Principal, id uuid.UUID, params ListParams) (*ListResult[model.Attendance], error) {
	laborer, err := s.get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	records, total, err := s.attendance.ListForOwner(ctx, principal.UserID, repository.AttendanceFilter{LaborerID: &laborer.ID}, page)
	if err != nil {
		return nil, err
	}
	return newListResult(records, total, resolved), nil
}
