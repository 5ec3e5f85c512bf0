package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{
		"SHOPIFY_STORE_DOMAIN", "SHOPIFY_ADMIN_ACCESS_TOKEN", "SHOPIFY_API_VERSION",
		"ORDER_STATUS_SIGNING_SECRET", "SHOPIFY_API_SECRET", "APP_HTTP_ADDR",
		"KAFKA_BROKERS", "DATABASE_URL", "UI_ENABLED", "UPSTREAM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, DefaultAPIVersion, c.APIVersion)
	assert.Equal(t, 10*time.Second, c.UpstreamTimeout)
	assert.Empty(t, c.SigningSecret)
	assert.False(t, c.KafkaEnabled())
	assert.False(t, c.PostgresEnabled())
	assert.True(t, c.UIEnabled)
	assert.Equal(t, "order-status-checks", c.KafkaTopic)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHOPIFY_STORE_DOMAIN", "https://deucces.myshopify.com/")
	t.Setenv("SHOPIFY_ADMIN_ACCESS_TOKEN", " shpat_x ")
	t.Setenv("ORDER_STATUS_SIGNING_SECRET", "")
	t.Setenv("SHOPIFY_API_SECRET", "fallback")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("UI_ENABLED", "false")
	t.Setenv("AUDIT_MEMORY_LIMIT", "oops")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "deucces.myshopify.com", c.ShopDomain)
	assert.Equal(t, "shpat_x", c.AccessToken)
	assert.Equal(t, "fallback", c.SigningSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
	assert.Equal(t, 3*time.Second, c.UpstreamTimeout)
	assert.False(t, c.UIEnabled)
	assert.Equal(t, 500, c.AuditMemoryLimit)
	assert.NoError(t, c.Validate())
}

func TestLoad_SigningSecretPreferred(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDER_STATUS_SIGNING_SECRET", "primary")
	t.Setenv("SHOPIFY_API_SECRET", "fallback")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", c.SigningSecret)
}

func TestValidate(t *testing.T) {
	var cfgErr *domain.ConfigError

	err := Config{AccessToken: "x"}.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SHOPIFY_STORE_DOMAIN", cfgErr.Key)

	err = Config{ShopDomain: "s.myshopify.com"}.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SHOPIFY_ADMIN_ACCESS_TOKEN", cfgErr.Key)
}

func TestNormalizeShopDomain(t *testing.T) {
	assert.Equal(t, "s.myshopify.com", NormalizeShopDomain(" http://s.myshopify.com// "))
	assert.Equal(t, "s.myshopify.com", NormalizeShopDomain("s.myshopify.com"))
}
