package service

import (
	"context"
	"fmt"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

// AuditService stores and pages status-check events.
type AuditService struct {
	repo outbound.AuditRepository
}

func NewAuditService(repo outbound.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Ingest(ctx context.Context, check domain.StatusCheck) error {
	if err := check.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if err := s.repo.Insert(ctx, check); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}

// Record lets the service stand in as the StatusRecorder when no broker sits
// between the HTTP path and the store.
func (s *AuditService) Record(ctx context.Context, check domain.StatusCheck) error {
	return s.Ingest(ctx, check)
}

func (s *AuditService) ListPage(ctx context.Context, page, pageSize int) ([]domain.StatusCheck, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("audit count: %w", err)
	}
	if total == 0 {
		return []domain.StatusCheck{}, 0, nil
	}

	checks, err := s.repo.ListLatest(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("audit list: %w", err)
	}
	return checks, total, nil
}

func (s *AuditService) Summary(ctx context.Context) (domain.AuditSummary, error) {
	counts, err := s.repo.CountByOutcome(ctx)
	if err != nil {
		return domain.AuditSummary{}, fmt.Errorf("audit summary: %w", err)
	}
	sum := domain.AuditSummary{
		Found:    counts[domain.OutcomeFound],
		NotFound: counts[domain.OutcomeNotFound],
	}
	sum.Total = sum.Found + sum.NotFound
	return sum, nil
}

var (
	_ inbound.AuditUseCase    = (*AuditService)(nil)
	_ outbound.StatusRecorder = (*AuditService)(nil)
)
