package handlers

import (
	"encoding/json"
	"net/http"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/objstore"
	"talentmatch/internal/search"
	"talentmatch/internal/storage"
)

// maxSearchLimit caps the per-request result width.
const maxSearchLimit = 50

// SearchHandler handles direct candidate search requests.
type SearchHandler struct {
	engine  search.Engine
	objects objstore.ObjectStore
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine search.Engine, objects objstore.ObjectStore) *SearchHandler {
	return &SearchHandler{
		engine:  engine,
		objects: objects,
	}
}

// SearchRequest represents the payload for a candidate search.
//
// swagger:model SearchRequest
type SearchRequest struct {
	// Free-text description of the candidate being looked for
	Query string `json:"query"`

	// Maximum number of results. Zero means the server default.
	Limit int `json:"limit,omitempty"`
}

// SearchResponse represents the candidate search results.
//
// swagger:model SearchResponse
type SearchResponse struct {
	// Ranked matches, best first
	Results []SearchResultResponse `json:"results"`

	// Raw number of index matches before profile resolution
	Matches int `json:"matches"`
}

// SearchResultResponse pairs a candidate profile with its similarity
// score.
//
// swagger:model SearchResultResponse
type SearchResultResponse struct {
	Profile ProfileResponse `json:"profile"`
	Score   float32         `json:"score"`
}

// Search handles HTTP requests for direct candidate search.
//
// A blank query and any backend failure both come back as an empty
// result list with a 200, never as an error.
//
// swagger:route POST /api/search searchCandidates
//
// # Search candidates by resume content
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Ranked candidate matches (possibly empty)
//	  schema:
//	    "$ref": "#/definitions/SearchResponse"
//	'403':
//	  description: Caller is not a confirmed recruiter
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	if _, ok := requireConfirmedRole(w, r, storage.RoleRecruiter); !ok {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Limit < 0 {
		req.Limit = 0
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}

	outcome := h.engine.Search(ctx, req.Query, req.Limit)

	results := make([]SearchResultResponse, 0, len(outcome.Results))
	for _, res := range outcome.Results {
		results = append(results, SearchResultResponse{
			Profile: makeProfileResponse(res.Profile, h.objects),
			Score:   res.Score,
		})
	}

	writeJSON(ctx, w, http.StatusOK, SearchResponse{
		Results: results,
		Matches: outcome.Matches,
	})
}
