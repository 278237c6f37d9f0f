package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"talentmatch/internal/ingest"
	"talentmatch/internal/objstore"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

// textExtractor is an extractor double that treats the upload bytes as
// already-extracted text.
type textExtractor struct{}

func (textExtractor) Extract(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}

// mapEmbedder embeds only texts it was primed with, so an unexpected
// embedding request fails the test loudly.
type mapEmbedder struct {
	vectors map[string][]float32
}

func (m *mapEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, ok := m.vectors[text]
		if !ok {
			return nil, fmt.Errorf("unexpected text %q", text)
		}
		out = append(out, vec)
	}
	return out, nil
}

// memVector is an in-memory vector index scoring by dot product.
type memVector struct {
	points map[string]vectorstore.Point
}

func newMemVector() *memVector {
	return &memVector{points: make(map[string]vectorstore.Point)}
}

func (m *memVector) Upsert(_ context.Context, _ string, points []vectorstore.Point) error {
	for _, p := range points {
		m.points[p.ID] = p
	}
	return nil
}

func (m *memVector) Search(_ context.Context, _ string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error) {
	results := make([]vectorstore.SearchResult, 0, len(m.points))
	for _, p := range m.points {
		if !matchesFilters(p.Meta, filters) {
			continue
		}
		var score float32
		for i := range query {
			score += query[i] * p.Vec[i]
		}
		results = append(results, vectorstore.SearchResult{PointID: p.ID, Score: score, Meta: p.Meta})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (m *memVector) Delete(_ context.Context, _ string, ids []string) error {
	for _, id := range ids {
		delete(m.points, id)
	}
	return nil
}

func matchesFilters(meta map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		if meta[key] != want {
			return false
		}
	}
	return true
}

// TestSearchFindsIngestedResumes runs the real ingestion pipeline against
// a real sqlite database and local file store, then searches what it
// indexed. Only the embedding model and the vector index are doubles.
func TestSearchFindsIngestedResumes(t *testing.T) {
	ctx := context.Background()

	db, err := storage.New(filepath.Join(t.TempDir(), "talent.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	profiles := storage.NewProfileRepo(db)

	objects, err := objstore.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	backendResume := "Ada Lovelace. Senior backend engineer with eight years of Go, gRPC services and Postgres. Led the search infrastructure team at a hiring marketplace."
	frontendResume := "Grace Hopper. Frontend engineer with six years of React, TypeScript and design systems. Built accessible component libraries and dashboards."
	query := "go backend services"

	embedder := &mapEmbedder{vectors: map[string][]float32{
		backendResume:  {1, 0, 0},
		frontendResume: {0, 1, 0},
		query:          {0.95, 0.05, 0},
	}}
	vectors := newMemVector()
	pipeline := ingest.NewPipeline(profiles, textExtractor{}, embedder, vectors, objects, testCollection, 50)

	candidates := []struct {
		id, name, email, resume string
	}{
		{"cand-ada", "Ada Lovelace", "ada@example.com", backendResume},
		{"cand-grace", "Grace Hopper", "grace@example.com", frontendResume},
	}
	for _, c := range candidates {
		profile := &storage.ProfileRecord{ID: c.id, FullName: c.name, Email: c.email, Role: storage.RoleCandidate}
		if err := profiles.Insert(ctx, profile); err != nil {
			t.Fatalf("Insert(%s) error = %v", c.id, err)
		}
		if err := pipeline.IngestResume(ctx, c.id, []byte(c.resume)); err != nil {
			t.Fatalf("IngestResume(%s) error = %v", c.id, err)
		}
	}

	// Ingestion committed: resume fields set and the file on disk.
	ada, err := profiles.GetByID(ctx, "cand-ada")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if ada.ResumePath == "" || ada.ResumeText != backendResume || ada.PointID != "cand-ada" {
		t.Errorf("ingested profile = %+v, want resume path, text and point ID set", ada)
	}
	if _, err := os.Stat(filepath.Join(objects.Root(), filepath.FromSlash(ada.ResumePath))); err != nil {
		t.Errorf("stored resume file missing: %v", err)
	}

	engine := NewEngine(embedder, vectors, profiles, testCollection, 10)
	got := engine.Search(ctx, query, 5)

	if got.Matches != 2 {
		t.Errorf("Matches = %d, want 2", got.Matches)
	}
	if len(got.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(got.Results))
	}
	if got.Results[0].Profile.FullName != "Ada Lovelace" {
		t.Errorf("Results[0] = %q, want the backend candidate first", got.Results[0].Profile.FullName)
	}
	if got.Results[1].Profile.FullName != "Grace Hopper" {
		t.Errorf("Results[1] = %q, want %q", got.Results[1].Profile.FullName, "Grace Hopper")
	}
}
