package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks talentmatch/internal/llm Embedder

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedder defines the interface for turning text into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingsConfig holds configuration for the embeddings client.
type EmbeddingsConfig struct {
	BaseURL      string // OpenAI-compatible endpoint, e.g. a local llama.cpp server
	APIKey       string
	Model        string
	ExpectedSize int // expected vector size (from QDRANT_VECTOR_SIZE config)
	Timeout      time.Duration
	MaxRetries   int
}

// EmbeddingsClient generates embeddings through an OpenAI-compatible
// embeddings API.
type EmbeddingsClient struct {
	client       openai.Client
	model        string
	expectedSize int
	timeout      time.Duration
	retry        retryPolicy
}

// NewEmbeddingsClient creates a new embeddings client. All embeddings
// returned by EmbedTexts are validated against cfg.ExpectedSize.
func NewEmbeddingsClient(cfg EmbeddingsConfig) *EmbeddingsClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries are handled by retryPolicy, not the SDK.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &EmbeddingsClient{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		expectedSize: cfg.ExpectedSize,
		timeout:      cfg.Timeout,
		retry:        newRetryPolicy(cfg.MaxRetries),
	}
}

// EmbedTexts generates embeddings for the given texts.
// Returns a slice of float32 vectors, one per input text, in input order.
// Validates that all returned vectors match the expected size.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var resp *openai.CreateEmbeddingResponse
	err := c.retry.run(ctx, func() error {
		var err error
		resp, err = c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Model: openai.EmbeddingModel(c.model),
			Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// Convert []float64 to []float32 and validate size
	result := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		if len(data.Embedding) != c.expectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.expectedSize)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}
