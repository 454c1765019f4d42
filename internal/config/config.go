package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the workshop API service.
type Config struct {
	Addr         string `env:"ADDR,default=:8080"`
	DBDSN        string `env:"DB_DSN,required"`
	NATSURL      string `env:"NATS_URL"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`

	TokenTTL      time.Duration `env:"TOKEN_TTL,default=24h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL,default=5m"`

	// RequirePasswordConfirmation gates registration on a matching
	// confirmation field. The legacy deployment shipped with this off.
	RequirePasswordConfirmation bool `env:"REQUIRE_PASSWORD_CONFIRMATION,default=false"`

	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE,default=false"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
