package outbound

import (
	"context"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

// OrderLookup finds the newest order matching an upstream search expression.
// found is false when nothing matched; err is reserved for transport and
// protocol failures.
type OrderLookup interface {
	FindOrder(ctx context.Context, search string) (order domain.OrderRecord, found bool, err error)
}

// StatusRecorder receives an audit event for every completed lookup.
type StatusRecorder interface {
	Record(ctx context.Context, check domain.StatusCheck) error
}
