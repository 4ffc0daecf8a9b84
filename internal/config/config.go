package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, parsed from environment
// variables. A .env file in the working directory is loaded first when
// present.
type Config struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"formchat.db"`

	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-secret-change-in-production-32bytes"`

	// AdminUsername/AdminPassword are compared literally at admin login.
	// The historical defaults are admin/admin; deployments are expected
	// to override them.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
	Env      string `env:"ENV" envDefault:"development"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
