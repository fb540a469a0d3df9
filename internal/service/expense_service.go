package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

type ExpenseInput struct {
	ProjectID uuid.UUID
	Date      time.Time
	Category  model.ExpenseCategory
	Amount    decimal.Decimal
	Notes     string
}

func (in ExpenseInput) normalize() (ExpenseInput, error) {
	if in.Date.IsZero() {
		return in, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	in.Date = model.DateOf(in.Date)
	if !in.Category.Valid() {
		return in, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if err := requireMoney("amount", in.Amount); err != nil {
		return in, err
	}
	in.Notes = strings.TrimSpace(in.Notes)
	return in, nil
}

type ExpenseService struct {
	expenses  *repository.ExpenseRepository
	projects  *repository.ProjectRepository
	paginator Paginator
	audit     AuditTrail
}

func NewExpenseService(expenses *repository.ExpenseRepository, projects *repository.ProjectRepository, paginator Paginator, audit AuditTrail) *ExpenseService {
	return &ExpenseService{expenses: expenses, projects: projects, paginator: paginator, audit: audit}
}

func (s *ExpenseService) List(ctx context.Context, principal model.Principal, filter repository.ExpenseFilter, params ListParams) (*ListResult[model.Expense], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *filter.Category)
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	expenses, total, err := s.expenses.ListForOwner(ctx, principal.UserID, filter, page)
	if err != nil {
		return nil, err
	}
	return newListResult(expenses, total, resolved), nil
}

func (s *ExpenseService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Expense, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	expense, err := s.expenses.GetForOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return expense, nil
}

func (s *ExpenseService) Create(ctx context.Context, principal model.Principal, in ExpenseInput) (*model.Expense, error) {
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

	expense := &model.Expense{
		ProjectID: in.ProjectID,
		Date:      in.Date,
		Category:  in.Category,
		Amount:    in.Amount,
		Notes:     in.Notes,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "expense", expense.ID, "create", fmt.Sprintf("%s %s", expense.Category, expense.Amount.StringFixed(2)))
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	expense, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if in.ProjectID != expense.ProjectID {
		if _, err := ownedProject(ctx, s.projects, principal, in.ProjectID); err != nil {
			return nil, err
		}
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	expense.ProjectID = in.ProjectID
	expense.Date = in.Date
	expense.Category = in.Category
	expense.Amount = in.Amount
	expense.Notes = in.Notes
	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, translate(err)
	}
	s.audit.record(ctx, principal, "expense", expense.ID, "update", fmt.Sprintf("%s %s", expense.Category, expense.Amount.StringFixed(2)))
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	expense, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, expense.ID); err != nil {
		return translate(err)
	}
	s.audit.record(ctx, principal, "expense", expense.ID, "delete", fmt.Sprintf("%s %s", expense.Category, expense.Amount.StringFixed(2)))
	return nil
}
