package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string   `env:"PORT" env-default:"4242"`
	StoreDriver string   `env:"STORE_DRIVER" env-default:"file"`
	UsersFile   string   `env:"USERS_FILE" env-default:"users.json"`
	DatabaseURL string   `env:"DATABASE_URL"`
	JWTSecret   string   `env:"JWT_SECRET"`
	JWTIssuer   string   `env:"JWT_ISSUER" env-default:"bookshop-backend"`
	JWTTTLMins  int      `env:"JWT_TTL_MINUTES" env-default:"60"`
	BcryptCost  int      `env:"BCRYPT_COST" env-default:"10"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
	LogLevel    string   `env:"LOG_LEVEL" env-default:"info"`

	StripeSecretKey    string `env:"STRIPE_SECRET_KEY"`
	CheckoutCurrency   string `env:"CHECKOUT_CURRENCY" env-default:"usd"`
	CheckoutSuccessURL string `env:"CHECKOUT_SUCCESS_URL" env-default:"http://localhost:3000/success"`
	CheckoutCancelURL  string `env:"CHECKOUT_CANCEL_URL" env-default:"http://localhost:3000/cancel"`

	JWTTTL time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
// There is no fallback signing secret: a missing JWT_SECRET refuses to start.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.StripeSecretKey = strings.TrimSpace(cfg.StripeSecretKey)
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	if cfg.JWTTTLMins > 0 {
		cfg.JWTTTL = time.Duration(cfg.JWTTTLMins) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, errors.New("STRIPE_SECRET_KEY is required")
	}
	switch cfg.StoreDriver {
	case StoreDriverFile:
		if strings.TrimSpace(cfg.UsersFile) == "" {
			return Config{}, errors.New("USERS_FILE must not be empty")
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func normalizeOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
