package service

import (
	"context"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

// AuditService exposes the caller's own mutation history.
type AuditService struct {
	repo      *repository.AuditRepository
	paginator Paginator
}

func NewAuditService(repo *repository.AuditRepository, paginator Paginator) *AuditService {
	return &AuditService{repo: repo, paginator: paginator}
}

func (s *AuditService) List(ctx context.Context, principal model.Principal, params ListParams) (*ListResult[model.AuditLog], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	page, resolved, err := s.paginator.Resolve(params)
	if err != nil {
		return nil, err
	}
	logs, total, err := s.repo.ListForUser(ctx, principal.UserID, page)
	if err != nil {
		return nil, err
	}
	return newListResult(logs, total, resolved), nil
}
