package inbound

import (
	"context"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

type StatusUseCase interface {
	Check(ctx context.Context, q domain.StatusQuery) (domain.StatusReport, error)
}

type AuditUseCase interface {
	Ingest(ctx context.Context, check domain.StatusCheck) error
	ListPage(ctx context.Context, page, pageSize int) (checks []domain.StatusCheck, total int, err error)
	Summary(ctx context.Context) (domain.AuditSummary, error)
}
