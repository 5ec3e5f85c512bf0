package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/metrics"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

type StatusService struct {
	lookup   outbound.OrderLookup
	recorder outbound.StatusRecorder
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*StatusService)

// WithClock overrides the wall clock used to age orders.
func WithClock(now func() time.Time) Option {
	return func(s *StatusService) { s.now = now }
}

// WithRecorder sets where audit events go. Without one nothing is recorded.
func WithRecorder(r outbound.StatusRecorder) Option {
	return func(s *StatusService) { s.recorder = r }
}

func NewStatusService(lookup outbound.OrderLookup, log *zap.Logger, opts ...Option) *StatusService {
	s := &StatusService{
		lookup: lookup,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Check looks the order up exactly once and places it on the timeline.
func (s *StatusService) Check(ctx context.Context, q domain.StatusQuery) (domain.StatusReport, error) {
	order := domain.NormalizeOrderInput(q.Order)
	if order == "" {
		return domain.StatusReport{}, domain.ErrMissingOrder
	}
	if !domain.ValidOrderInput(order) {
		return domain.StatusReport{}, domain.ErrInvalidOrder
	}
	email := domain.NormalizeEmail(q.Email)
	if !domain.ValidEmail(email) {
		return domain.StatusReport{}, domain.ErrInvalidEmail
	}

	rec, found, err := s.lookup.FindOrder(ctx, domain.BuildSearchQuery(order, email))
	if err != nil {
		return domain.StatusReport{}, fmt.Errorf("order lookup: %w", err)
	}

	now := s.now()
	check := domain.StatusCheck{
		ID:            uuid.NewString(),
		OrderInput:    order,
		EmailProvided: email != "",
		CheckedAt:     now.UTC(),
	}

	if !found {
		check.Outcome = domain.OutcomeNotFound
		s.record(ctx, check)
		return domain.StatusReport{}, domain.ErrOrderNotFound
	}

	res := domain.ResolveStage(rec, now)

	check.Outcome = domain.OutcomeFound
	check.OrderName = rec.Name
	check.Stage = res.Stage
	check.DaysSince = res.DaysSince
	s.record(ctx, check)

	return domain.StatusReport{
		OrderName: rec.Name,
		CreatedAt: rec.CreatedAt,
		DaysSince: res.DaysSince,
		Stage:     res.Stage,
		Message:   res.Message,
	}, nil
}

func (s *StatusService) record(ctx context.Context, check domain.StatusCheck) {
	metrics.StatusChecksTotal.WithLabelValues(string(check.Outcome), string(check.Stage)).Inc()
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, check); err != nil {
		metrics.AuditRecordFailuresTotal.Inc()
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.Warn("status check not recorded",
			zap.String("check_id", check.ID),
			zap.Error(err),
		)
	}
}

var _ inbound.StatusUseCase = (*StatusService)(nil)
