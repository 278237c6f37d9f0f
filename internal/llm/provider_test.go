package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNewProvider_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty provider", Config{}},
		{"provider none", Config{Provider: "none"}},
		{"openai without key", Config{Provider: "openai"}},
		{"anthropic without key", Config{Provider: "anthropic"}},
		{"gemini without key", Config{Provider: "gemini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			_, err = provider.Chat(context.Background(), "system", "user")
			if !errors.Is(err, ErrUnconfigured) {
				t.Errorf("Chat() error = %v, want ErrUnconfigured", err)
			}
		})
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "petals", APIKey: "key"})
	if err == nil {
		t.Fatal("NewProvider() error = nil, want unknown provider error")
	}
}

func TestNewProvider_SelectsImplementation(t *testing.T) {
	base := Config{APIKey: "test-key", Model: "test-model", MaxTokens: 100}

	cfg := base
	cfg.Provider = "openai"
	p, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider(openai) error = %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("NewProvider(openai) = %T, want *OpenAIProvider", p)
	}

	cfg = base
	cfg.Provider = "anthropic"
	p, err = NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider(anthropic) error = %v", err)
	}
	if _, ok := p.(*AnthropicProvider); !ok {
		t.Errorf("NewProvider(anthropic) = %T, want *AnthropicProvider", p)
	}

	cfg = base
	cfg.Provider = "gemini"
	p, err = NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider(gemini) error = %v", err)
	}
	if _, ok := p.(*GeminiProvider); !ok {
		t.Errorf("NewProvider(gemini) = %T, want *GeminiProvider", p)
	}
}
