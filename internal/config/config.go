package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Addr          string `env:"APP_ADDR" envDefault:":8080"`
	AppBaseURL    string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string `env:"SESSION_SECRET"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`

	// AccountAPIProvider selects the account API implementation: "http" or "mock".
	AccountAPIProvider string        `env:"ACCOUNT_API_PROVIDER" envDefault:"http"`
	AccountAPIBaseURL  string        `env:"ACCOUNT_API_BASE_URL" envDefault:"http://localhost:9090/api"`
	AccountAPITimeout  time.Duration `env:"ACCOUNT_API_TIMEOUT" envDefault:"30s"`
	ClientToken        string        `env:"ACCOUNT_API_CLIENT_TOKEN" envDefault:"MBR"`
	MockSharing        bool          `env:"ACCOUNT_API_MOCK_SHARING" envDefault:"false"`

	WizardTTL           time.Duration `env:"WIZARD_TTL" envDefault:"30m"`
	WizardSweepInterval time.Duration `env:"WIZARD_SWEEP_INTERVAL" envDefault:"1m"`
	RateLimitPerMin     float64       `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	SecureCookies       bool          `env:"SECURE_COOKIES" envDefault:"false"`
}

// New loads configuration from the environment, reading a .env file first if one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the current environment without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch c.AccountAPIProvider {
	case "http":
		if c.AccountAPIBaseURL == "" {
			return fmt.Errorf("ACCOUNT_API_BASE_URL is required when ACCOUNT_API_PROVIDER is 'http'")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown account API provider: %s", c.AccountAPIProvider)
	}
	if c.WizardTTL <= 0 {
		return fmt.Errorf("WIZARD_TTL must be positive")
	}
	return nil
}
