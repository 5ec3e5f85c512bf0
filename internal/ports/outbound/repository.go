package outbound

import (
	"context"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

type AuditRepository interface {
	Insert(ctx context.Context, check domain.StatusCheck) error
	ListLatest(ctx context.Context, limit, offset int) ([]domain.StatusCheck, error)
	Count(ctx context.Context) (int, error)
	CountByOutcome(ctx context.Context) (map[domain.CheckOutcome]int, error)
}
