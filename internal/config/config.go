package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"WealthWise"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Storage struct {
		// Backend is one of sqlite, file, postgres or memory.
		Backend string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
		DataDir string `envconfig:"DATA_DIR"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"wealthwise"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Advisor struct {
		Provider string        `envconfig:"ADVISOR_PROVIDER" default:"gemini"`
		APIKey   string        `envconfig:"ADVISOR_API_KEY"`
		Model    string        `envconfig:"ADVISOR_MODEL"`
		BaseURL  string        `envconfig:"ADVISOR_BASE_URL"`
		Timeout  time.Duration `envconfig:"ADVISOR_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SQLitePath is the database file inside the data directory.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Storage.DataDir, "wealthwise.db")
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Advisor.APIKey == "" {
		cfg.Advisor.APIKey = os.Getenv("API_KEY")
	}

	if cfg.Storage.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		cfg.Storage.DataDir = filepath.Join(home, ".wealthwise")
	}

	return &cfg, nil
}
