package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/metrics"
	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/ports/outbound"
)

const DefaultAPIVersion = "2024-10"

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 20

type Config struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

// Client queries the Admin GraphQL API for orders.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	log         *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ShopDomain) == "" {
		return nil, &domain.ConfigError{Key: "SHOPIFY_STORE_DOMAIN"}
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, &domain.ConfigError{Key: "SHOPIFY_ADMIN_ACCESS_TOKEN"}
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		endpoint:    Endpoint(cfg.ShopDomain, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		log:         log,
	}, nil
}

// Endpoint builds the GraphQL URL for a shop. The domain may carry a scheme,
// which is kept (plain http is only useful against local fakes).
func Endpoint(shopDomain, apiVersion string) string {
	base := strings.TrimRight(strings.TrimSpace(shopDomain), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, apiVersion)
}

func (c *Client) FindOrder(ctx context.Context, search string) (domain.OrderRecord, bool, error) {
	start := time.Now()
	rec, found, err := c.findOrder(ctx, search)

	result := "found"
	switch {
	case err != nil:
		result = "error"
	case !found:
		result = "not_found"
	}
	metrics.UpstreamRequestDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		c.log.Error("order lookup failed",
			zap.String("search", search),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}
	return rec, found, err
}

func (c *Client) findOrder(ctx context.Context, search string) (domain.OrderRecord, bool, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     orderStatusQuery,
		Variables: map[string]any{"q": search},
	})
	if err != nil {
		return domain.OrderRecord{}, false, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.OrderRecord{}, false, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.OrderRecord{}, false, fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.OrderRecord{}, false, fmt.Errorf("read graphql response: %w", err)
	}

	var out orderStatusResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.OrderRecord{}, false, upstreamError(resp.StatusCode, out.Errors, decodeErr == nil)
	}
	if decodeErr != nil {
		return domain.OrderRecord{}, false, fmt.Errorf("decode graphql response: %w", decodeErr)
	}
	if len(out.Errors) > 0 {
		return domain.OrderRecord{}, false, upstreamError(resp.StatusCode, out.Errors, true)
	}

	edges := out.Data.Orders.Edges
	if len(edges) == 0 {
		return domain.OrderRecord{}, false, nil
	}

	rec, err := toOrderRecord(edges[0].Node)
	if err != nil {
		return domain.OrderRecord{}, false, err
	}
	return rec, true, nil
}

func upstreamError(status int, errs []graphQLError, decoded bool) error {
	e := &domain.UpstreamError{StatusCode: status}
	if decoded && len(errs) > 0 {
		e.Message = errs[0].Message
	}
	return e
}

func toOrderRecord(n orderNode) (domain.OrderRecord, error) {
	created, err := time.Parse(time.RFC3339, n.CreatedAt)
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("parse createdAt %q: %w", n.CreatedAt, err)
	}

	rec := domain.OrderRecord{
		Name:              n.Name,
		CreatedAt:         created,
		FulfillmentStatus: n.DisplayFulfillmentStatus,
		Fulfillments:      make([]domain.Fulfillment, 0, len(n.Fulfillments)),
	}
	for _, f := range n.Fulfillments {
		ff := domain.Fulfillment{Tracking: make([]domain.TrackingInfo, 0, len(f.TrackingInfo))}
		for _, t := range f.TrackingInfo {
			ff.Tracking = append(ff.Tracking, domain.TrackingInfo{
				Number: deref(t.Number),
				URL:    deref(t.URL),
			})
		}
		rec.Fulfillments = append(rec.Fulfillments, ff)
	}
	return rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ outbound.OrderLookup = (*Client)(nil)
