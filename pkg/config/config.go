package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const appDir = "docflow"

type Config struct {
	API     API
	Polling Polling
	Session Session
	Logger  Logger
	Kafka   Kafka
}

type API struct {
	BaseURL  string        `env:"API_BASE_URL" envDefault:"https://kmrl-doc-system-backend.onrender.com/api"`
	Timeout  time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	RetryMax int           `env:"API_RETRY_MAX" envDefault:"0"`
}

type Polling struct {
	DashboardInterval time.Duration `env:"POLL_DASHBOARD_INTERVAL" envDefault:"2s"`
	ApprovalsInterval time.Duration `env:"POLL_APPROVALS_INTERVAL" envDefault:"3s"`
	// SuppressionTTL bounds how long an acted-upon approval stays hidden
	// from poll responses that still contain it.
	SuppressionTTL time.Duration `env:"POLL_SUPPRESSION_TTL" envDefault:"9s"`
}

type Session struct {
	File string `env:"SESSION_FILE"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

type Kafka struct {
	Brokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	AlertsTopic   string   `env:"KAFKA_ALERTS_TOPIC" envDefault:"alerts"`
	PresenceTopic string   `env:"KAFKA_PRESENCE_TOPIC" envDefault:"presence"`
	GroupPrefix   string   `env:"KAFKA_GROUP_PREFIX" envDefault:"docflow"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	err = c.fillPaths()
	if err != nil {
		return Config{}, err
	}

	err = c.validate()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c *Config) fillPaths() error {
	if c.Session.File != "" && c.Logger.File != "" {
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	if c.Session.File == "" {
		c.Session.File = filepath.Join(dir, appDir, "session.json")
	}

	if c.Logger.File == "" {
		c.Logger.File = filepath.Join(dir, appDir, "docflow.log")
	}

	return nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is empty")
	}

	if c.Polling.DashboardInterval <= 0 || c.Polling.ApprovalsInterval <= 0 {
		return errors.New("poll intervals must be positive")
	}

	if c.API.RetryMax < 0 {
		return fmt.Errorf("API_RETRY_MAX must not be negative: %d", c.API.RetryMax)
	}

	return nil
}
