package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

const DefaultAPIVersion = "2024-10"

type Config struct {
	HTTPAddr string

	ShopDomain    string
	AccessToken   string
	APIVersion    string
	SigningSecret string

	UpstreamTimeout time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	DatabaseURL   string
	MigrationsDir string

	KafkaBrokers       []string
	KafkaTopic         string
	KafkaConsumerGroup string
	KafkaMinBytes      int
	KafkaMaxBytes      int

	AuditMemoryLimit int
	AdminToken       string
	UIEnabled        bool
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. It does not validate; callers
// decide whether missing upstream settings are fatal.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var c Config

	c.HTTPAddr = getenv("APP_HTTP_ADDR", ":8080")

	c.ShopDomain = NormalizeShopDomain(os.Getenv("SHOPIFY_STORE_DOMAIN"))
	c.AccessToken = strings.TrimSpace(os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"))
	c.APIVersion = getenv("SHOPIFY_API_VERSION", DefaultAPIVersion)
	c.SigningSecret = getenv("ORDER_STATUS_SIGNING_SECRET", getenv("SHOPIFY_API_SECRET", ""))

	c.UpstreamTimeout = getenvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	c.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "json")

	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	c.MigrationsDir = getenv("MIGRATIONS_DIR", "")

	c.KafkaBrokers = splitCSV(os.Getenv("KAFKA_BROKERS"))
	c.KafkaTopic = getenv("KAFKA_TOPIC", "order-status-checks")
	c.KafkaConsumerGroup = getenv("KAFKA_CONSUMER_GROUP", "order-progress-audit")
	c.KafkaMinBytes = getenvInt("KAFKA_MIN_BYTES", 1e3)
	c.KafkaMaxBytes = getenvInt("KAFKA_MAX_BYTES", 10e6)

	c.AuditMemoryLimit = getenvInt("AUDIT_MEMORY_LIMIT", 500)
	c.AdminToken = strings.TrimSpace(os.Getenv("ADMIN_TOKEN"))
	c.UIEnabled = getenvBool("UI_ENABLED", true)

	return c, nil
}

// Validate reports the first missing setting needed to reach the order API.
func (c Config) Validate() error {
	if c.ShopDomain == "" {
		return &domain.ConfigError{Key: "SHOPIFY_STORE_DOMAIN"}
	}
	if c.AccessToken == "" {
		return &domain.ConfigError{Key: "SHOPIFY_ADMIN_ACCESS_TOKEN"}
	}
	return nil
}

func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c Config) PostgresEnabled() bool { return c.DatabaseURL != "" }

// NormalizeShopDomain strips any scheme and trailing slashes.
func NormalizeShopDomain(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimRight(s, "/")
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
