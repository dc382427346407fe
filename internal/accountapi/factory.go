package accountapi

import (
	"fmt"
	"net/http"

	"github.com/nfrund/enroll/internal/config"
	"github.com/nfrund/enroll/internal/domain"
)

// New creates and returns an account API client based on the configuration.
func New(cfg *config.Config) (domain.AccountAPI, error) {
	switch cfg.AccountAPIProvider {
	case "mock":
		return &MockClient{ShowAccountSharing: cfg.MockSharing}, nil
	case "http":
		if cfg.AccountAPIBaseURL == "" {
			return nil, fmt.Errorf("account API provider is 'http' but ACCOUNT_API_BASE_URL is not set")
		}
		httpClient := &http.Client{Timeout: cfg.AccountAPITimeout}
		return NewClient(cfg.AccountAPIBaseURL, cfg.ClientToken, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown account API provider: %s", cfg.AccountAPIProvider)
	}
}
