package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/jbassil/agence/internal/pb"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port       string           `envconfig:"PORT" default:"8080"`
	PocketBase PocketBaseConfig `ignored:"true"`
	Logs       LogConfig        `ignored:"true"`
}

type PocketBaseConfig struct {
	URL   string `envconfig:"POCKETBASE_URL"`
	Token string `envconfig:"POCKETBASE_TOKEN"`
	// Requests per second towards the backend, 0 disables the limiter
	RateLimit float64 `envconfig:"POCKETBASE_RATE_LIMIT" default:"0"`
	RateBurst int     `envconfig:"POCKETBASE_RATE_BURST" default:"8"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not process environment")
	}
	if err := envconfig.Process("", &cfg.PocketBase); err != nil {
		return nil, errors.Wrap(err, "could not process pocketbase environment")
	}
	if err := envconfig.Process("", &cfg.Logs); err != nil {
		return nil, errors.Wrap(err, "could not process log environment")
	}

	// An empty POCKETBASE_URL in .env should not blank out the backend
	if cfg.PocketBase.URL == "" {
		cfg.PocketBase.URL = pb.DefaultURL
	}

	if cfg.PocketBase.RateLimit < 0 {
		return nil, errors.Errorf("POCKETBASE_RATE_LIMIT must not be negative, got %v", cfg.PocketBase.RateLimit)
	}

	return cfg, nil
}
