// Package config reads the server settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreSupabase = "supabase"
)

// Config is the server configuration. Every field comes from the
// environment variable in its env tag.
type Config struct {
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Store       string `env:"STORE" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"stories.db"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
}

// Load reads dotenv files (".env" when none are given) into the process
// environment and parses Config from it. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the selected store has what it needs.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase store")
		}
	default:
		return fmt.Errorf("unknown STORE %q. it should be memory|sqlite|supabase", c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}
