package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

type sliceRepo struct {
	checks   []domain.StatusCheck
	countErr error
}

func (r *sliceRepo) Insert(_ context.Context, c domain.StatusCheck) error {
	r.checks = append([]domain.StatusCheck{c}, r.checks...)
	return nil
}

func (r *sliceRepo) ListLatest(_ context.Context, limit, offset int) ([]domain.StatusCheck, error) {
	if offset >= len(r.checks) {
		return []domain.StatusCheck{}, nil
	}
	end := offset + limit
	if end > len(r.checks) {
		end = len(r.checks)
	}
	return r.checks[offset:end], nil
}

func (r *sliceRepo) Count(_ context.Context) (int, error) {
	return len(r.checks), r.countErr
}

func (r *sliceRepo) CountByOutcome(_ context.Context) (map[domain.CheckOutcome]int, error) {
	out := map[domain.CheckOutcome]int{}
	for _, c := range r.checks {
		out[c.Outcome]++
	}
	return out, nil
}

// check builds a valid event; id is a single hex digit that becomes the
// last character of a UUID.
func check(id string, outcome domain.CheckOutcome) domain.StatusCheck {
	c := domain.StatusCheck{ID: "00000000-0000-4000-8000-00000000000" + id, OrderInput: "1043", Outcome: outcome, CheckedAt: time.Now()}
	if outcome == domain.OutcomeFound {
		c.Stage = domain.StageShipped
	}
	return c
}

func TestAuditIngest_RejectsInvalid(t *testing.T) {
	repo := &sliceRepo{}
	svc := NewAuditService(repo)

	err := svc.Ingest(context.Background(), domain.StatusCheck{ID: "x"})
	assert.Error(t, err)

	bad := check("a", domain.OutcomeFound)
	bad.ID = "not-a-uuid"
	assert.ErrorContains(t, svc.Ingest(context.Background(), bad), "id must be a uuid")

	assert.Empty(t, repo.checks)
}

func TestAuditListPage(t *testing.T) {
	repo := &sliceRepo{}
	svc := NewAuditService(repo)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, svc.Record(context.Background(), check(id, domain.OutcomeFound)))
	}

	page, total, err := svc.ListPage(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, check("c", domain.OutcomeFound).ID, page[0].ID)
	assert.Equal(t, check("b", domain.OutcomeFound).ID, page[1].ID)

	page, _, err = svc.ListPage(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestAuditListPage_Empty(t *testing.T) {
	page, total, err := NewAuditService(&sliceRepo{}).ListPage(context.Background(), 1, 20)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestAuditListPage_CountError(t *testing.T) {
	_, _, err := NewAuditService(&sliceRepo{countErr: errors.New("db gone")}).ListPage(context.Background(), 1, 20)

	assert.ErrorContains(t, err, "db gone")
}

func TestAuditSummary(t *testing.T) {
	svc := NewAuditService(&sliceRepo{})
	require.NoError(t, svc.Ingest(context.Background(), check("a", domain.OutcomeFound)))
	require.NoError(t, svc.Ingest(context.Background(), check("b", domain.OutcomeFound)))
	require.NoError(t, svc.Ingest(context.Background(), check("c", domain.OutcomeNotFound)))

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AuditSummary{Total: 3, Found: 2, NotFound: 1}, sum)
}
