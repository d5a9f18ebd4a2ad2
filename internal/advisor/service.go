package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/metrics"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
)

// FallbackMessage replaces the advice whenever the provider cannot be reached.
const FallbackMessage = "Unable to connect to the advisor. Please check your internet connection."

var errNoClient = errors.New("advisor is not configured")

// Advice is the outcome of one advisory request.
type Advice struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type Service struct {
	client   Client
	provider string
}

// NewService wraps client. A nil client always yields the fallback advice.
func NewService(client Client, provider string) *Service {
	return &Service{client: client, provider: provider}
}

// Advise makes one request. Any failure is logged and turned into the fallback advice.
func (s *Service) Advise(ctx context.Context, summary stats.Summary, goals []goal.Goal) Advice {
	start := time.Now()

	text, err := s.generate(ctx, BuildPrompt(summary, goals))

	metrics.AdvisorLatency.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Warn("Advisor request failed", "provider", s.provider, "error", err)
		metrics.AdvisorRequests.WithLabelValues(s.provider, "fallback").Inc()

		return Advice{Text: FallbackMessage, Fallback: true}
	}

	metrics.AdvisorRequests.WithLabelValues(s.provider, "ok").Inc()

	return Advice{Text: text}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", errNoClient
	}

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
