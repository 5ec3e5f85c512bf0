package kafkaout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/metrics"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

// DefaultRecordTimeout bounds how long a status request may wait on the
// broker before the audit event is given up.
const DefaultRecordTimeout = 250 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits one message per status check. Messages are keyed by the
// normalised order input so checks for the same order share a partition.
type Publisher struct {
	writer  messageWriter
	timeout time.Duration
	log     *zap.Logger
}

// RecordTimeout caps the time Record spends on the request path.
type PublisherConfig struct {
	Brokers       []string
	Topic         string
	WriteTimeout  time.Duration
	RecordTimeout time.Duration
}

// NewPublisher uses an async writer: Record only enqueues, delivery errors
// surface in the completion callback.
func NewPublisher(cfg PublisherConfig, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logUndelivered(log),
	}
	return newPublisher(w, cfg.RecordTimeout, log)
}

func logUndelivered(log *zap.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		metrics.AuditRecordFailuresTotal.Add(float64(len(msgs)))
		log.Warn("status checks not delivered", zap.Int("messages", len(msgs)), zap.Error(err))
	}
}

func newPublisher(w messageWriter, timeout time.Duration, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultRecordTimeout
	}
	return &Publisher{writer: w, timeout: timeout, log: log}
}

// Record is detached from the caller's cancellation, so a finished request
// still gets its event out, and bounded by the record timeout.
func (p *Publisher) Record(ctx context.Context, check domain.StatusCheck) error {
	b, err := EncodeStatusCheck(check)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:     []byte(check.OrderInput),
		Value:   b,
		Time:    check.CheckedAt,
		Headers: []kafka.Header{{Key: "schema", Value: []byte(domain.StatusCheckSchema)}},
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}

	p.log.Debug("status check published", zap.String("check_id", check.ID))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func EncodeStatusCheck(check domain.StatusCheck) ([]byte, error) {
	if err := check.Validate(); err != nil {
		return nil, fmt.Errorf("domain validate: %w", err)
	}
	b, err := json.Marshal(check)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return b, nil
}

var _ outbound.StatusRecorder = (*Publisher)(nil)
