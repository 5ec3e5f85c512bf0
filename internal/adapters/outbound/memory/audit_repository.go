package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

const DefaultLimit = 500

// AuditRepository keeps the most recent status checks in process memory. Once
// the limit is reached the oldest check is evicted.
type AuditRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.StatusCheck
	order []string // insertion order, oldest first
	limit int
	stats *Stats
}

func NewAuditRepository(limit int) *AuditRepository {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &AuditRepository{
		byID:  make(map[string]domain.StatusCheck, limit),
		order: make([]string, 0, limit),
		limit: limit,
		stats: NewStats(),
	}
}

func (r *AuditRepository) Insert(_ context.Context, c domain.StatusCheck) error {
	if c.ID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; ok {
		r.stats.IncDuplicate()
		return nil
	}

	if len(r.order) >= r.limit {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.byID, oldest)
		r.stats.IncEviction()
	}

	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	r.stats.IncInsert()
	return nil
}

func (r *AuditRepository) ListLatest(_ context.Context, limit, offset int) ([]domain.StatusCheck, error) {
	r.mu.RLock()
	all := make([]domain.StatusCheck, 0, len(r.byID))
	for _, c := range r.byID {
		all = append(all, c)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CheckedAt.Equal(all[j].CheckedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CheckedAt.After(all[j].CheckedAt)
	})

	if limit <= 0 || offset >= len(all) {
		return []domain.StatusCheck{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *AuditRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	n := len(r.byID)
	r.mu.RUnlock()
	return n, nil
}

func (r *AuditRepository) CountByOutcome(_ context.Context) (map[domain.CheckOutcome]int, error) {
	out := make(map[domain.CheckOutcome]int, 2)
	r.mu.RLock()
	for _, c := range r.byID {
		out[c.Outcome]++
	}
	r.mu.RUnlock()
	return out, nil
}

// Stats exposes insert/eviction counters for logs.
func (r *AuditRepository) Stats() (inserts, evictions, duplicates uint64) {
	return r.stats.Snapshot()
}

var _ outbound.AuditRepository = (*AuditRepository)(nil)
