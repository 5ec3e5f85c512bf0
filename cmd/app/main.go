package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/outbound/shopify"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/app/config"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/app/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "order-progress",
		Short:         "Order status lookups for the storefront proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newCheckCmd(), newSignCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

func newShopifyClient(cfg config.Config, log *zap.Logger) (*shopify.Client, error) {
	return shopify.New(shopify.Config{
		ShopDomain:  cfg.ShopDomain,
		AccessToken: cfg.AccessToken,
		APIVersion:  cfg.APIVersion,
		Timeout:     cfg.UpstreamTimeout,
	}, log.Named("shopify"))
}
