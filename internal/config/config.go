package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Token         string        `env:"DISCORD_TOKEN"`
	GuildID       string        `env:"DISCORD_GUILD_ID"`
	ExtensionsDir string        `env:"EXTENSIONS_DIR" envDefault:"extensions"`
	DataDir       string        `env:"DATA_DIR" envDefault:"data"`
	WatchInterval time.Duration `env:"WATCH_INTERVAL" envDefault:"1s"`
	MetricsAddr   string        `env:"METRICS_ADDR" envDefault:":2112"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	PublishRate   float64       `env:"PUBLISH_RATE" envDefault:"1"`
	PagerTTL      time.Duration `env:"PAGER_TTL" envDefault:"10m"`
	CommandPrefix string        `env:"COMMAND_PREFIX" envDefault:"!"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Docker secrets take precedence over plain env vars.
	if token := readSecret("discord_token"); token != "" {
		cfg.Token = token
	}
	if dbURL := readSecret("database_url"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
