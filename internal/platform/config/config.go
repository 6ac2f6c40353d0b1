package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"

	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOTLP   = "otlp"
)

type Config struct {
	Addr                 string        `mapstructure:"APP_ADDR" validate:"required"`
	Environment          string        `mapstructure:"APP_ENV" validate:"required"`
	APIBaseURL           string        `mapstructure:"EMS_API_URL" validate:"required,url"`
	APITimeout           time.Duration `mapstructure:"EMS_API_TIMEOUT" validate:"gt=0"`
	SessionSecret        string        `mapstructure:"SESSION_SECRET"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	SessionStore         string        `mapstructure:"SESSION_STORE" validate:"oneof=memory postgres"`
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	CookieSecure         bool          `mapstructure:"COOKIE_SECURE"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	DataEncryptionKey    string        `mapstructure:"DATA_ENCRYPTION_KEY"`
	FrontendDir          string        `mapstructure:"FRONTEND_DIR"`
	MaxBodyBytes         int64         `mapstructure:"MAX_BODY_BYTES" validate:"gte=1024"`
	RateLimitPerMinute   int           `mapstructure:"RATE_LIMIT_PER_MINUTE" validate:"gt=0"`
	MetricsEnabled       bool          `mapstructure:"METRICS_ENABLED"`
	TracingExporter      string        `mapstructure:"TRACING_EXPORTER" validate:"oneof=none stdout otlp"`
	OTLPEndpoint         string        `mapstructure:"OTLP_ENDPOINT"`
	BreakerMaxFailures   uint32        `mapstructure:"BREAKER_MAX_FAILURES" validate:"gt=0"`
	BreakerOpenTimeout   time.Duration `mapstructure:"BREAKER_OPEN_TIMEOUT" validate:"gt=0"`
}

var defaults = map[string]any{
	"APP_ADDR":               ":8080",
	"APP_ENV":                "development",
	"EMS_API_URL":            "http://localhost:5000/api",
	"EMS_API_TIMEOUT":        "15s",
	"SESSION_SECRET":         "",
	"SESSION_TTL":            "12h",
	"SESSION_STORE":          SessionStoreMemory,
	"SESSION_SWEEP_INTERVAL": "10m",
	"COOKIE_SECURE":          false,
	"DATABASE_URL":           "",
	"DATA_ENCRYPTION_KEY":    "",
	"FRONTEND_DIR":           "frontend/dist",
	"MAX_BODY_BYTES":         1048576,
	"RATE_LIMIT_PER_MINUTE":  60,
	"METRICS_ENABLED":        true,
	"TRACING_EXPORTER":       TracingNone,
	"OTLP_ENDPOINT":          "localhost:4317",
	"BREAKER_MAX_FAILURES":   5,
	"BREAKER_OPEN_TIMEOUT":   "30s",
}

var validate = validator.New()

// Load reads defaults, an optional config file named by CONSOLE_CONFIG and
// the process environment, in increasing order of precedence.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("CONSOLE_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) IsLocalDev() bool {
	return c.Environment == "development" || c.Environment == "local"
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.SessionStore == SessionStorePostgres && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required when SESSION_STORE is postgres")
	}
	if c.IsProduction() {
		if len(strings.TrimSpace(c.SessionSecret)) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production")
		}
		if c.SessionStore == SessionStorePostgres && strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production to seal stored tokens")
		}
		if !c.CookieSecure {
			return fmt.Errorf("COOKIE_SECURE must be enabled in production")
		}
	}
	if c.TracingExporter == TracingOTLP && strings.TrimSpace(c.OTLPEndpoint) == "" {
		return fmt.Errorf("OTLP_ENDPOINT must be set when TRACING_EXPORTER is otlp")
	}
	return nil
}
