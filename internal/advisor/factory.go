package advisor

import (
	"fmt"
	"strings"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewClient creates a client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "":
		return newGeminiClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported advisor provider: %s", cfg.Provider)
	}
}
