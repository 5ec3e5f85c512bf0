package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	httpin "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/http"
	lambdain "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/lambda"
	kafkaout "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/kafka"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/shopify"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/app/config"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/app/logging"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	lambda.Start(lambdain.New(newHandler(cfg, log)).Handle)
}

// newHandler never fails: with missing settings every invocation answers
// with the configuration error instead of the function crashing on cold start.
func newHandler(cfg config.Config, log *zap.Logger) http.Handler {
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return httpin.ConfigErrorHandler(err)
	}

	client, err := shopify.New(shopify.Config{
		ShopDomain:  cfg.ShopDomain,
		AccessToken: cfg.AccessToken,
		APIVersion:  cfg.APIVersion,
		Timeout:     cfg.UpstreamTimeout,
	}, log.Named("shopify"))
	if err != nil {
		return httpin.ConfigErrorHandler(err)
	}

	var opts []service.Option
	if cfg.KafkaEnabled() {
		pub := kafkaout.NewPublisher(kafkaout.PublisherConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		}, log.Named("kafka"))
		opts = append(opts, service.WithRecorder(pub))
	}

	return httpin.NewRouter(httpin.RouterConfig{
		Status: service.NewStatusService(client, log.Named("status"), opts...),
		Auth:   auth.NewAuthenticator(cfg.SigningSecret),
		Log:    log,
	})
}

