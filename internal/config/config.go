package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}
	Upstream struct {
		BaseURL        string
		Timeout        time.Duration
		CatalogTimeout time.Duration
		MaxRetries     int
		RetryBackoff   time.Duration
	}
	Astro struct {
		AppID   string
		Secret  string
		BaseURL string
		Timeout time.Duration
	}
	JWST struct {
		Host    string
		APIKey  string
		Email   string
		Timeout time.Duration
	}
	Export struct {
		OutputDir string
	}
	Workers struct {
		RefreshEnabled  bool
		RefreshInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Redis (необязателен: без него используется in-memory кэш)
	cfg.Redis.Host = getEnv("REDIS_HOST", "")
	cfg.Redis.Enabled = cfg.Redis.Host != ""
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// Upstream (rust_iss-совместимый сервис)
	cfg.Upstream.BaseURL = getEnv("UPSTREAM_BASE", "http://rust_iss:3000")
	cfg.Upstream.Timeout = getEnvAsDuration("UPSTREAM_TIMEOUT", 5*time.Second)
	cfg.Upstream.CatalogTimeout = getEnvAsDuration("UPSTREAM_CATALOG_TIMEOUT", 10*time.Second)
	cfg.Upstream.MaxRetries = getEnvAsInt("UPSTREAM_MAX_RETRIES", 2)
	cfg.Upstream.RetryBackoff = getEnvAsDuration("UPSTREAM_RETRY_BACKOFF", 100*time.Millisecond)

	// AstronomyAPI. Пустые ключи — рабочее состояние (mock-данные)
	cfg.Astro.AppID = getEnv("ASTRO_APP_ID", "")
	cfg.Astro.Secret = getEnv("ASTRO_APP_SECRET", "")
	cfg.Astro.BaseURL = getEnv("ASTRO_BASE_URL", "https://api.astronomyapi.com/api/v2")
	cfg.Astro.Timeout = getEnvAsDuration("ASTRO_TIMEOUT", 25*time.Second)

	// JWST
	cfg.JWST.Host = getEnv("JWST_HOST", "https://api.jwstapi.com")
	cfg.JWST.APIKey = getEnv("JWST_API_KEY", "")
	cfg.JWST.Email = getEnv("JWST_EMAIL", "")
	cfg.JWST.Timeout = getEnvAsDuration("JWST_TIMEOUT", 20*time.Second)

	// Export
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/export")

	// Workers
	cfg.Workers.RefreshEnabled = getEnvAsBool("WORKER_REFRESH_ENABLED", false)
	cfg.Workers.RefreshInterval = getEnvAsDuration("WORKER_REFRESH_INTERVAL", 120*time.Second)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	return cfg
}

// HasAstroCredentials — настроены ли ключи AstronomyAPI.
func (c *Config) HasAstroCredentials() bool {
	return c.Astro.AppID != "" && c.Astro.Secret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
