package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks talentmatch/internal/llm Provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnconfigured is returned by a disabled provider. Callers detect it
// with errors.Is and degrade gracefully instead of failing requests.
var ErrUnconfigured = errors.New("llm provider not configured")

// Provider defines the interface for single-shot chat completions.
type Provider interface {
	// Chat sends a system prompt and a user prompt and returns the
	// assistant's text reply.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration shared by all chat providers.
type Config struct {
	Provider    string // openai, anthropic, gemini or none
	BaseURL     string // optional custom endpoint (openai only)
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// NewProvider creates a chat provider based on the configuration.
// Provider "none" or a missing API key yields a disabled provider whose
// Chat always returns ErrUnconfigured, so the service starts and serves
// degraded replies rather than crashing.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", "none":
		return &disabledProvider{reason: "disabled by configuration"}, nil
	case "openai", "anthropic", "gemini":
		if cfg.APIKey == "" {
			return &disabledProvider{reason: "missing API key"}, nil
		}
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg), nil
	case "anthropic":
		return newAnthropicProvider(cfg), nil
	default:
		return newGeminiProvider(ctx, cfg)
	}
}

// disabledProvider stands in when no real provider is configured.
type disabledProvider struct {
	reason string
}

func (p *disabledProvider) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", fmt.Errorf("%w (%s)", ErrUnconfigured, p.reason)
}
