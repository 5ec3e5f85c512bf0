package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Insert is idempotent on id so a redelivered Kafka message is harmless.
func (r *AuditRepository) Insert(ctx context.Context, c domain.StatusCheck) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO status_checks (
			id, order_input, order_name, email_provided, outcome, stage, days_since, checked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, c.ID, c.OrderInput, nullIfEmpty(c.OrderName), c.EmailProvided, string(c.Outcome),
		nullIfEmpty(string(c.Stage)), c.DaysSince, c.CheckedAt)
	if err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListLatest(ctx context.Context, limit, offset int) ([]domain.StatusCheck, error) {
	if limit <= 0 {
		return []domain.StatusCheck{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, order_input, COALESCE(order_name, ''), email_provided, outcome,
		       COALESCE(stage, ''), days_since, checked_at
		FROM status_checks
		ORDER BY checked_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StatusCheck, 0, limit)
	for rows.Next() {
		var (
			c       domain.StatusCheck
			outcome string
			stage   string
		)
		if err := rows.Scan(&c.ID, &c.OrderInput, &c.OrderName, &c.EmailProvided, &outcome,
			&stage, &c.DaysSince, &c.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan status check: %w", err)
		}
		c.Outcome = domain.CheckOutcome(outcome)
		c.Stage = domain.Stage(stage)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *AuditRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM status_checks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count status checks: %w", err)
	}
	return n, nil
}

func (r *AuditRepository) CountByOutcome(ctx context.Context) (map[domain.CheckOutcome]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT outcome, COUNT(*) FROM status_checks GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("count by outcome: %w", err)
	}

	type outcomeCount struct {
		Outcome string
		N       int
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[outcomeCount])
	if err != nil {
		return nil, fmt.Errorf("scan outcome counts: %w", err)
	}

	out := make(map[domain.CheckOutcome]int, len(counts))
	for _, oc := range counts {
		out[domain.CheckOutcome(oc.Outcome)] = oc.N
	}
	return out, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ outbound.AuditRepository = (*AuditRepository)(nil)
