package kafkain

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/inbound"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer moves published status checks into the audit store.
type Consumer struct {
	reader messageReader
	audit  inbound.AuditUseCase
	log    *zap.Logger

	fetchBackoff  time.Duration
	ingestBackoff time.Duration
}

type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

func NewConsumer(cfg ConsumerConfig, audit inbound.AuditUseCase, log *zap.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	return newConsumer(r, audit, log)
}

func newConsumer(r messageReader, audit inbound.AuditUseCase, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{
		reader:        r,
		audit:         audit,
		log:           log.Named("kafka"),
		fetchBackoff:  500 * time.Millisecond,
		ingestBackoff: time.Second,
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			c.log.Warn("fetch error", zap.Error(err))
			sleep(ctx, c.fetchBackoff)
			continue
		}

		check, derr := DecodeMessage(msg)
		if derr != nil {
			c.log.Warn("bad message (skip+commit)", zap.ByteString("key", msg.Key), zap.Error(derr))
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.audit.Ingest(ctx, check); err != nil {
			// Left uncommitted so the group redelivers it.
			c.log.Error("ingest failed (no commit)", zap.String("check_id", check.ID), zap.Error(err))
			sleep(ctx, c.ingestBackoff)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Warn("commit error", zap.Error(err))
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
