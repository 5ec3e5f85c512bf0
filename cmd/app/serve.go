package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpin "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/http"
	kafkain "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/kafka"
	kafkaout "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/kafka"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/memory"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/postgres"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/app/runtime"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/service"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, stop := runtime.NotifyContext(parent)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	client, err := newShopifyClient(cfg, log)
	if err != nil {
		return err
	}

	// audit store
	var repo outbound.AuditRepository
	if cfg.PostgresEnabled() {
		db, err := postgres.New(ctx, cfg.DatabaseURL, postgres.PoolConfig{})
		if err != nil {
			log.Error("db init", zap.Error(err))
			return err
		}
		defer db.Close()

		migFS, err := postgres.MigrationsFS(cfg.MigrationsDir)
		if err != nil {
			return err
		}
		migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := postgres.RunMigrations(migCtx, db.Pool, migFS); err != nil {
			log.Error("migrations", zap.Error(err))
			return err
		}
		repo = postgres.NewAuditRepository(db.Pool)
		log.Info("audit store: postgres")
	} else {
		mem := memory.NewAuditRepository(cfg.AuditMemoryLimit)
		defer func() {
			inserts, evictions, dups := mem.Stats()
			log.Info("audit memory store",
				zap.Uint64("inserts", inserts),
				zap.Uint64("evictions", evictions),
				zap.Uint64("duplicates", dups),
			)
		}()
		repo = mem
		log.Info("audit store: memory", zap.Int("limit", cfg.AuditMemoryLimit))
	}
	audit := service.NewAuditService(repo)

	// Checks go through Kafka when it is configured, straight into the store otherwise.
	var recorder outbound.StatusRecorder = audit
	if cfg.KafkaEnabled() {
		pub := kafkaout.NewPublisher(kafkaout.PublisherConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		}, log.Named("kafka"))
		defer func() { _ = pub.Close() }()
		recorder = pub

		consumer := kafkain.NewConsumer(kafkain.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  cfg.KafkaConsumerGroup,
			MinBytes: cfg.KafkaMinBytes,
			MaxBytes: cfg.KafkaMaxBytes,
		}, audit, log)
		defer func() { _ = consumer.Close() }()

		go consumer.Run(ctx)
	}

	svc := service.NewStatusService(client, log.Named("status"), service.WithRecorder(recorder))

	authn := auth.NewAuthenticator(cfg.SigningSecret)
	if !authn.Enabled() {
		log.Warn("no signing secret configured; status requests are not authenticated")
	}

	router := httpin.NewRouter(httpin.RouterConfig{
		Status:     svc,
		Audit:      audit,
		Auth:       authn,
		AdminToken: cfg.AdminToken,
		UIEnabled:  cfg.UIEnabled,
		Log:        log,
	})
	httpSrv := runtime.NewHTTPServer(cfg.HTTPAddr, router, log.Named("http"))
	httpSrv.Start()

	<-ctx.Done()
	log.Info("shutdown: signal received")

	if err := httpSrv.Shutdown(context.Background(), cfg.ShutdownTimeout); err != nil {
		log.Error("shutdown: http", zap.Error(err))
	}
	log.Info("shutdown: bye")
	return nil
}
