package search

import (
	"context"
	"sort"
	"strings"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/llm"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

// Engine finds candidates matching a free-text query.
//
// Search never returns an error: a failing embedding service, vector
// store or database degrades to an empty outcome so callers can always
// render something. Failures are logged, not surfaced.
type Engine interface {
	Search(ctx context.Context, query string, limit int) Outcome
}

type searchEngine struct {
	embedder     llm.Embedder
	vectorStore  vectorstore.VectorStore
	profiles     storage.ProfileStore
	collection   string
	defaultLimit int
}

// NewEngine creates a new candidate search engine. defaultLimit is used
// when a caller passes a non-positive limit.
func NewEngine(
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	profiles storage.ProfileStore,
	collection string,
	defaultLimit int,
) Engine {
	return &searchEngine{
		embedder:     embedder,
		vectorStore:  vectorStore,
		profiles:     profiles,
		collection:   collection,
		defaultLimit: defaultLimit,
	}
}

func (e *searchEngine) Search(ctx context.Context, query string, limit int) Outcome {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return Outcome{}
	}
	if limit <= 0 {
		limit = e.defaultLimit
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed search query", "error", err)
		return Outcome{}
	}
	if len(embeddings) == 0 {
		logger.ErrorContext(ctx, "no embedding returned for search query")
		return Outcome{}
	}

	// Only candidate vectors are eligible, whatever else the collection
	// may hold.
	filters := map[string]any{"role": string(storage.RoleCandidate)}
	hits, err := e.vectorStore.Search(ctx, e.collection, embeddings[0], limit, filters)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		return Outcome{}
	}
	if len(hits) == 0 {
		logger.InfoContext(ctx, "search found no matches", "query_length", len(query))
		return Outcome{}
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.PointID != "" {
			ids = append(ids, hit.PointID)
		}
	}

	matched, err := e.profiles.ListCandidatesByIDs(ctx, ids)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load matched profiles", "error", err)
		return Outcome{Matches: len(hits)}
	}

	byID := make(map[string]*storage.ProfileRecord, len(matched))
	for i := range matched {
		byID[matched[i].ID] = &matched[i]
	}

	// Join hits to profiles, dropping hits whose profile is gone or no
	// longer a candidate.
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		profile, ok := byID[hit.PointID]
		if !ok {
			logger.WarnContext(ctx, "vector hit without matching profile", "point_id", hit.PointID)
			continue
		}
		results = append(results, Result{Profile: profile, Score: hit.Score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logger.InfoContext(ctx, "search completed", "matches", len(hits), "results", len(results))
	return Outcome{Results: results, Matches: len(hits)}
}
