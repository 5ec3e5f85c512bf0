package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	httpin "github.com/DeuccesApparel/deucces-order-progress-backend/internal/adapters/inbound/http"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/service"
)

func newCheckCmd() *cobra.Command {
	var order, email, format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Look up one order and print the status payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := cfg.Validate(); err != nil {
				return err
			}
			client, err := newShopifyClient(cfg, log)
			if err != nil {
				return err
			}

			authn := auth.NewAuthenticator(cfg.SigningSecret)
			router := httpin.NewRouter(httpin.RouterConfig{
				Status: service.NewStatusService(client, log.Named("status")),
				Auth:   authn,
				Log:    log,
			})

			// Same path the storefront proxy takes, signed if a secret is set.
			params := url.Values{"order": {order}, "format": {format}}
			if email != "" {
				params.Set("email", email)
			}
			if authn.Enabled() {
				params.Set(auth.ParamSignature, auth.Sign(params, cfg.SigningSecret))
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, "/status?"+params.Encode(), nil)
			if err != nil {
				return err
			}
			buf := httpin.NewResponseBuffer()
			router.ServeHTTP(buf, req)

			fmt.Fprint(cmd.OutOrStdout(), string(buf.Body()))
			if buf.Status() >= http.StatusBadRequest {
				return fmt.Errorf("status %d", buf.Status())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "", "order number, with or without #")
	cmd.Flags().StringVar(&email, "email", "", "customer email (optional)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or html")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}
