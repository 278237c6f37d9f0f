package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/objstore"
	"talentmatch/internal/storage"
)

// ProfileHandler handles signup and profile management requests.
type ProfileHandler struct {
	profiles storage.ProfileStore
	objects  objstore.ObjectStore
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles storage.ProfileStore, objects objstore.ObjectStore) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		objects:  objects,
	}
}

// SignupRequest represents the payload for creating a new profile.
//
// swagger:model SignupRequest
type SignupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`

	// Optional initial role ("candidate" or "recruiter"). The role only
	// becomes authoritative once confirmed via PUT /api/profile/role.
	Role string `json:"role,omitempty"`
}

// UpdateProfileRequest represents the payload for editing profile fields.
//
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	GitHubURL   string `json:"github_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// ConfirmRoleRequest represents an explicit role choice.
//
// swagger:model ConfirmRoleRequest
type ConfirmRoleRequest struct {
	Role string `json:"role"`
}

// ProfileResponse represents a profile in HTTP responses.
//
// swagger:model ProfileResponse
type ProfileResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	RoleConfirmed bool   `json:"role_confirmed"`
	LinkedInURL   string `json:"linkedin_url,omitempty"`
	GitHubURL     string `json:"github_url,omitempty"`
	WebsiteURL    string `json:"website_url,omitempty"`

	// ResumeURL points at the stored resume file, present once a resume
	// has been uploaded and indexed.
	ResumeURL string `json:"resume_url,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// makeProfileResponse converts a profile record for the wire, deriving
// the resume URL from the stored path when one exists.
func makeProfileResponse(p *storage.ProfileRecord, objects objstore.ObjectStore) ProfileResponse {
	resp := ProfileResponse{
		ID:            p.ID,
		FullName:      p.FullName,
		Email:         p.Email,
		Role:          string(p.Role),
		RoleConfirmed: p.RoleConfirmed,
		LinkedInURL:   p.LinkedInURL,
		GitHubURL:     p.GitHubURL,
		WebsiteURL:    p.WebsiteURL,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.ResumePath != "" {
		resp.ResumeURL = objects.URL(p.ResumePath)
	}
	return resp
}

func (h *ProfileHandler) profileResponse(p *storage.ProfileRecord) ProfileResponse {
	return makeProfileResponse(p, h.objects)
}

// Signup handles HTTP requests for creating a profile.
//
// swagger:route POST /api/signup createProfile
//
// # Create a profile
//
// Registers a new account with a name and email address. The account starts
// as an unconfirmed candidate unless a role is supplied; either way the role
// must be confirmed explicitly before role-gated features unlock.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'201':
//	  description: Profile created
//	  schema:
//	    "$ref": "#/definitions/ProfileResponse"
//	'400':
//	  description: Invalid name, email, or role
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: Email already registered
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProfileHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Full name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		logger.WarnContext(ctx, "invalid email on signup", "error", err)
		writeError(w, http.StatusBadRequest, "A valid email address is required")
		return
	}

	role := storage.RoleCandidate
	if req.Role != "" {
		parsed, err := storage.ParseRole(req.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Role must be \"candidate\" or \"recruiter\"")
			return
		}
		role = parsed
	}

	// Pre-check for a friendlier conflict response. The unique index on
	// email still backs this up against races.
	if _, err := h.profiles.GetByEmail(ctx, req.Email); err == nil {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		handleStoreError(w, ctx, err, "Failed to create profile")
		return
	}

	profile := &storage.ProfileRecord{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     role,
	}
	if err := h.profiles.Insert(ctx, profile); err != nil {
		handleStoreError(w, ctx, err, "Failed to create profile")
		return
	}

	created, err := h.profiles.GetByID(ctx, profile.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load created profile")
		return
	}

	logger.InfoContext(ctx, "profile created", "profile_id", created.ID, "role", created.Role)
	writeJSON(ctx, w, http.StatusCreated, h.profileResponse(created))
}

// Get handles HTTP requests for reading the caller's own profile.
//
// swagger:route GET /api/profile getProfile
//
// # Get own profile
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The caller's profile
//	  schema:
//	    "$ref": "#/definitions/ProfileResponse"
//	'401':
//	  description: Missing or unknown caller identity
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load profile")
		return
	}
	writeJSON(ctx, w, http.StatusOK, h.profileResponse(profile))
}

// Update handles HTTP requests for editing the caller's own profile.
//
// swagger:route PUT /api/profile updateProfile
//
// # Update own profile
//
// Updates the display name and social links. Links must be well-formed
// http(s) URLs when present.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The updated profile
//	  schema:
//	    "$ref": "#/definitions/ProfileResponse"
//	'400':
//	  description: Invalid name or link
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Full name is required")
		return
	}
	links := []struct{ field, value string }{
		{"linkedin_url", req.LinkedInURL},
		{"github_url", req.GitHubURL},
		{"website_url", req.WebsiteURL},
	}
	for _, link := range links {
		if err := validateLink(link.field, link.value); err != nil {
			handleStoreError(w, ctx, err, "Invalid link")
			return
		}
	}

	profile, err := h.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load profile")
		return
	}
	profile.FullName = req.FullName
	profile.LinkedInURL = strings.TrimSpace(req.LinkedInURL)
	profile.GitHubURL = strings.TrimSpace(req.GitHubURL)
	profile.WebsiteURL = strings.TrimSpace(req.WebsiteURL)

	if err := h.profiles.Update(ctx, profile); err != nil {
		handleStoreError(w, ctx, err, "Failed to update profile")
		return
	}

	updated, err := h.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load profile")
		return
	}
	writeJSON(ctx, w, http.StatusOK, h.profileResponse(updated))
}

// ConfirmRole handles HTTP requests for explicitly choosing a role.
//
// swagger:route PUT /api/profile/role confirmRole
//
// # Confirm account role
//
// Records an explicit candidate/recruiter choice. Role-gated features stay
// locked until this has been called once.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The updated profile
//	  schema:
//	    "$ref": "#/definitions/ProfileResponse"
//	'400':
//	  description: Unknown role value
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProfileHandler) ConfirmRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	var req ConfirmRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := storage.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Role must be \"candidate\" or \"recruiter\"")
		return
	}

	if err := h.profiles.ConfirmRole(ctx, caller.ID, role); err != nil {
		handleStoreError(w, ctx, err, "Failed to confirm role")
		return
	}

	profile, err := h.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load profile")
		return
	}

	logger.InfoContext(ctx, "role confirmed", "profile_id", caller.ID, "role", role)
	writeJSON(ctx, w, http.StatusOK, h.profileResponse(profile))
}

// validateLink checks that an optional social link is a well-formed
// http(s) URL. Empty values pass.
func validateLink(field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &storage.ValidationError{Field: field, Message: "Links must be absolute http(s) URLs"}
	}
	return nil
}
