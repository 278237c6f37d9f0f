package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingsServer returns a test server that replies with one vector per
// input, built by vecFor, and counts requests.
func embeddingsServer(t *testing.T, vecFor func(i int) []float64, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}

		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": vecFor(i),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func newTestEmbeddingsClient(baseURL string, expectedSize int) *EmbeddingsClient {
	c := NewEmbeddingsClient(EmbeddingsConfig{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		Model:        "test-embed",
		ExpectedSize: expectedSize,
	})
	c.retry = fastPolicy(2)
	return c
}

func TestEmbedTexts(t *testing.T) {
	calls := 0
	srv := embeddingsServer(t, func(i int) []float64 {
		return []float64{float64(i), 0.5, -0.25, 1}
	}, &calls)
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	got, err := client.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(embeddings) = %d, want 2", len(got))
	}
	if got[1][0] != 1 || got[0][2] != -0.25 {
		t.Errorf("unexpected vector values: %v", got)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}
}

func TestEmbedTexts_EmptyInput(t *testing.T) {
	calls := 0
	srv := embeddingsServer(t, func(int) []float64 { return nil }, &calls)
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts(nil) error = nil, want error")
	}
	if _, err := client.EmbedTexts(context.Background(), []string{}); err == nil {
		t.Error("EmbedTexts(empty) error = nil, want error")
	}
	if calls != 0 {
		t.Errorf("server calls = %d, want 0", calls)
	}
}

func TestEmbedTexts_SizeMismatch(t *testing.T) {
	calls := 0
	srv := embeddingsServer(t, func(int) []float64 {
		return []float64{0.1, 0.2, 0.3}
	}, &calls)
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	_, err := client.EmbedTexts(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("EmbedTexts() error = nil, want size mismatch")
	}
	if !strings.Contains(err.Error(), "size 3, expected 4") {
		t.Errorf("error = %v, want size mismatch message", err)
	}
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3,0.4]}],"model":"test-embed","usage":{"prompt_tokens":1,"total_tokens":1}}`)
	}))
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	_, err := client.EmbedTexts(context.Background(), []string{"one", "two"})
	if err == nil {
		t.Fatal("EmbedTexts() error = nil, want count mismatch")
	}
	if !strings.Contains(err.Error(), "expected 2 embeddings, got 1") {
		t.Errorf("error = %v, want count mismatch message", err)
	}
}

func TestEmbedTexts_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad input","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	if _, err := client.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Fatal("EmbedTexts() error = nil, want request error")
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (no retries on 400)", calls)
	}
}

func TestEmbedTexts_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3,0.4]}],"model":"test-embed","usage":{"prompt_tokens":1,"total_tokens":1}}`)
	}))
	defer srv.Close()

	client := newTestEmbeddingsClient(srv.URL, 4)

	got, err := client.EmbedTexts(context.Background(), []string{"text"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(got) != 1 || len(got[0]) != 4 {
		t.Errorf("unexpected result %v", got)
	}
	if calls != 3 {
		t.Errorf("server calls = %d, want 3", calls)
	}
}
