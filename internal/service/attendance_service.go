package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

type AttendanceService struct {
	attendance *repository.AttendanceRepository
	laborers   *repository.LaborerRepository
	calendar   Calendar
	paginator  Paginator
	audit      AuditTrail
	log        zerolog.Logger
}

func NewAttendanceService(
	attendance *repository.AttendanceRepository,
	laborers *repository.LaborerRepository,
	calendar Calendar,
	paginator Paginator,
	audit AuditTrail,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		laborers:   laborers,
		calendar:   calendar,
		paginator:  paginator,
		audit:      audit,
		log:        log,
	}
}

// ResetForToday makes sure every laborer has an attendance row for today on
// their assigned project, defaulting to absent. Existing rows are left
// untouched, so running it again the same day changes nothing.
func (s *AttendanceService) ResetForToday(ctx context.Context) (model.ResetResult, error) {
	return s.ResetForDate(ctx, s.calendar.Today())
}

// ResetForDate is ResetForToday for an arbitrary day. A failure for one
// laborer does not stop the others; all failures are returned joined.
func (s *AttendanceService) ResetForDate(ctx context.Context, day time.Time) (model.ResetResult, error) {
	result := model.ResetResult{Date: model.DateOf(day)}

	laborers, err := s.laborers.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list laborers: %w", err)
	}

	var errs []error
	for _, laborer := range laborers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		created, err := s.attendance.InsertIfMissing(ctx, laborer.ID, laborer.AssignedProjectID, result.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("laborer %s: %w", laborer.ID, err))
			s.log.Error().Err(err).Str("laborer_id", laborer.ID.String()).Msg("attendance reset failed")
			continue
		}

		result.Outcomes = append(result.Outcomes, model.ResetOutcome{
			LaborerID:   laborer.ID,
			LaborerName: laborer.Name,
			ProjectID:   laborer.AssignedProjectID,
			Created:     created,
		})
		event := s.log.Info().Str("laborer", laborer.Name).Str("laborer_id", laborer.ID.String())
		if created {
			event.Msg("attendance created")
		} else {
			event.Msg("attendance already exists")
		}
	}

	s.log.Info().
		Time("date", result.Date).
		Int("laborers", len(laborers)).
		Int("created", result.CreatedCount()).
		Msg("attendance reset finished")
	return result, errors.Join(errs...)
}

// CheckIn marks the laborer present for today on their assigned project.
// Repeated calls leave a single present row.
func (s *AttendanceService) CheckIn(ctx context.Context, principal model.Principal, laborerID uuid.UUID) (*model.Attendance, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	laborer, err := s.laborers.GetForOwner(ctx, laborerID, principal.UserID)
	if err != nil {
		if err = translate(err); errors.Is(err, ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}

	record, err := s.attendance.UpsertPresent(ctx, laborer.ID, laborer.AssignedProjectID, s.calendar.Today())
	if err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "attendance", record.ID, "check_in", "checked in "+laborer.Name)
	return record, nil
}

func (s *AttendanceService) List(ctx context.Context, principal model.Principal, filter repository.AttendanceFilter, params ListParams) (*ListResult[model.Attendance], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	records, total, err := s.attendance.ListForOwner(ctx, principal.UserID, filter, page)
	if err != nil {
		return nil, err
	}
	return newListResult(records, total, resolved), nil
}
