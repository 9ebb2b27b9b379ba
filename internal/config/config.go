package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultSessionSecret = "change-me-in-production"

type Config struct {
	// Chain
	NodeRPCURL        string
	ContractAddress   string
	ContractABIPath   string // пусто: встроенный ABI
	PriceUnitDecimals int    // масштаб цены объявления в wei
	RPCTimeout        time.Duration

	// Storage (опционально)
	PostgresDSN        string
	PostgresMaxConns   int
	RedisURL           string
	MigrationsDir      string // пусто: встроенные миграции
	RateLimitPerMinute int

	// Session
	SessionSecret  string
	SessionTTL     time.Duration
	RequireSession bool

	// Receipt watcher
	ReceiptPollInterval time.Duration
	ReceiptBatchSize    int

	// Server
	HTTPPort string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		NodeRPCURL:        getEnv("NODE_RPC_URL", "http://127.0.0.1:8545"),
		ContractAddress:   getEnv("CONTRACT_ADDRESS", ""),
		ContractABIPath:   getEnv("CONTRACT_ABI_PATH", ""),
		PriceUnitDecimals: getEnvInt("PRICE_UNIT_DECIMALS", 18),
		RPCTimeout:        time.Duration(getEnvInt("RPC_TIMEOUT_SECONDS", 30)) * time.Second,

		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		PostgresMaxConns:   getEnvInt("POSTGRES_MAX_CONNS", 10),
		RedisURL:           getEnv("REDIS_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),

		SessionSecret:  getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		RequireSession: getEnvBool("REQUIRE_SESSION", false),

		ReceiptPollInterval: time.Duration(getEnvInt("RECEIPT_POLL_SECONDS", 5)) * time.Second,
		ReceiptBatchSize:    getEnvInt("RECEIPT_BATCH_SIZE", 100),

		HTTPPort: getEnv("HTTP_PORT", "5000"),
	}
}

func (c *Config) JournalEnabled() bool {
	return c.PostgresDSN != ""
}

func (c *Config) EventsEnabled() bool {
	return c.RedisURL != ""
}

func (c *Config) Validate(log *zap.Logger) {
	if c.ContractAddress == "" {
		log.Warn("CONTRACT_ADDRESS is not set, contract calls will fail")
	}
	if c.SessionSecret == defaultSessionSecret {
		log.Warn("SESSION_SECRET is default, change in production")
	}
	if !c.JournalEnabled() {
		log.Warn("POSTGRES_DSN is not set, transaction journal disabled")
	}
	if !c.EventsEnabled() {
		log.Warn("REDIS_URL is not set, rate limiting and live events disabled")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
