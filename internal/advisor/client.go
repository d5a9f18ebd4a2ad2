// Package advisor produces advisory prose about the user's finances through a
// third-party text generation API.
package advisor

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	ErrNoAPIKey      = errors.New("advisor API key is required")
	ErrEmptyResponse = errors.New("advisor returned no text")
)

//go:generate mockgen -source=client.go -destination=client_mock.go -package=advisor

// Client sends a prompt to a text generation API and returns the reply.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint.
	BaseURL string
	Timeout time.Duration
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
