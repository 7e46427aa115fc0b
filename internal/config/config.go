package config

import (
	"flag"
	"fmt"
	"time"

	pkgRetry "github.com/allwaveav/boq-backend/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration. DATABASE_URL is optional: when unset, the
	// context-cache record lives in process memory only.
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Gemini configuration
	GeminiCfg GeminiConfig `envPrefix:"GEMINI_"`

	// Context cache configuration
	CacheCfg ContextCacheConfig `envPrefix:"CACHE_"`

	// Retry policy applied at the API layer to transport-class failures
	RetryCfg pkgRetry.RetryConfig `envPrefix:"RETRY_"`

	// Reference product catalog (JSON file)
	CatalogPath string `env:"CATALOG_PATH" envDefault:"internal/config/product_catalog.json"`

	// Product detail memoization window
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"15m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConfig holds generative model settings
type GeminiConfig struct {
	APIKey string `env:"API_KEY,notEmpty"`

	// BoqModel serves generation, refinement and validation; it must support
	// context caching.
	BoqModel string `env:"BOQ_MODEL" envDefault:"gemini-1.5-pro-002"`

	// DetailsModel serves web-grounded product detail lookups.
	DetailsModel string `env:"DETAILS_MODEL" envDefault:"gemini-2.5-flash"`

	// Temperature for BOQ generation. Low by default: BOQs want determinism.
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.1"`
}

// ContextCacheConfig holds context cache lifetimes. LocalWindow must be
// strictly smaller than ServerTTL so a handle is never handed to a call that
// could outlive the server-side cache.
type ContextCacheConfig struct {
	ServerTTL   time.Duration `env:"SERVER_TTL" envDefault:"1h"`
	LocalWindow time.Duration `env:"LOCAL_WINDOW" envDefault:"50m"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.CacheCfg.LocalWindow >= cfg.CacheCfg.ServerTTL {
		return fmt.Errorf("CACHE_LOCAL_WINDOW (%s) must be smaller than CACHE_SERVER_TTL (%s)",
			cfg.CacheCfg.LocalWindow, cfg.CacheCfg.ServerTTL)
	}

	if cfg.GeminiCfg.Temperature < 0 || cfg.GeminiCfg.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be between 0 and 2, got %g", cfg.GeminiCfg.Temperature)
	}

	if cfg.DatabaseURL != "" {
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
		}
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
