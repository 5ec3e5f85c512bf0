package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/auth"
)

func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign key=value...",
		Short: "Print a signed query string for the given parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.SigningSecret == "" {
				return errors.New("ORDER_STATUS_SIGNING_SECRET is not set")
			}

			params, err := parseParams(args)
			if err != nil {
				return err
			}
			sig := auth.Sign(params, cfg.SigningSecret)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "message:   %s\n", auth.CanonicalMessage(params))
			fmt.Fprintf(out, "signature: %s\n", sig)
			params.Set(auth.ParamSignature, sig)
			fmt.Fprintf(out, "query:     %s\n", params.Encode())
			return nil
		},
	}
}

func parseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		params.Add(k, v)
	}
	return params, nil
}
