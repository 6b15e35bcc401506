package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every tunable of the mobile core, loaded from environment
// variables with sensible defaults for the production backend.
type Config struct {
	// BaseURL is the fixed backend origin all requests are joined onto.
	BaseURL string `env:"BACKEND_BASE_URL, default=https://localkonnectbackend.onrender.com"`
	// RequestTimeout bounds each backend call end to end.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=20s"`
	// OTPTTL is the validity window of a one-time code, matching the
	// backend's three-minute expiry.
	OTPTTL time.Duration `env:"OTP_TTL, default=180s"`

	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StorePath locates the file-backed credential store.
	StorePath string `env:"CREDENTIAL_STORE_PATH, default=.localkonnect/credentials.json"`

	Redis RedisConfig
}

// RedisConfig selects the Redis-backed credential store when Addr is set;
// otherwise the file store is used.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
