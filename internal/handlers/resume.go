package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/extract"
	"talentmatch/internal/ingest"
	"talentmatch/internal/objstore"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

// resumeIngester is the slice of the ingestion pipeline the resume
// endpoints call.
type resumeIngester interface {
	IngestResume(ctx context.Context, profileID string, pdf []byte) error
	RemoveResume(ctx context.Context, profileID string) error
}

// ResumeHandler handles resume upload and removal requests.
type ResumeHandler struct {
	pipeline       resumeIngester
	profiles       storage.ProfileStore
	objects        objstore.ObjectStore
	maxUploadBytes int64
}

// NewResumeHandler creates a new ResumeHandler. maxUploadBytes caps the
// accepted request size.
func NewResumeHandler(pipeline resumeIngester, profiles storage.ProfileStore, objects objstore.ObjectStore, maxUploadBytes int64) *ResumeHandler {
	return &ResumeHandler{
		pipeline:       pipeline,
		profiles:       profiles,
		objects:        objects,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles HTTP requests for uploading a resume PDF.
//
// Accepts a multipart form with a single "file" field holding the PDF.
// The file is stored, its text embedded and indexed, and the profile
// updated in one pipeline run; a failure anywhere rolls the earlier
// steps back.
//
// swagger:route POST /api/resume uploadResume
//
// # Upload a resume
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Resume ingested, updated profile returned
//	  schema:
//	    "$ref": "#/definitions/ProfileResponse"
//	'400':
//	  description: Missing file, wrong type, or too little text
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'403':
//	  description: Caller is not a confirmed candidate
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'413':
//	  description: File exceeds the upload size limit
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'422':
//	  description: File is not a readable PDF
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: Embedding or indexing service unavailable
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	caller, ok := requireConfirmedRole(w, r, storage.RoleCandidate)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "Resume file is too large")
			return
		}
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Expected a multipart form with a \"file\" field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Expected a multipart form with a \"file\" field")
		return
	}
	defer file.Close()

	if !isPDFUpload(header) {
		logger.WarnContext(ctx, "rejected non-pdf upload",
			"filename", header.Filename, "content_type", header.Header.Get("Content-Type"))
		writeError(w, http.StatusBadRequest, "Only PDF resumes are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "Resume file is too large")
			return
		}
		logger.ErrorContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	if err := h.pipeline.IngestResume(ctx, caller.ID, data); err != nil {
		h.handleIngestError(w, ctx, err)
		return
	}

	profile, err := h.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		handleStoreError(w, ctx, err, "Failed to load profile")
		return
	}
	writeJSON(ctx, w, http.StatusOK, makeProfileResponse(profile, h.objects))
}

// Delete handles HTTP requests for removing the caller's resume.
//
// swagger:route DELETE /api/resume deleteResume
//
// # Delete the uploaded resume
//
// Removes the stored file and the search index entry and clears the
// resume fields on the profile. Deleting when no resume exists is a
// no-op.
//
// ---
// produces:
// - application/json
// responses:
//
//	'204':
//	  description: Resume removed
//	'403':
//	  description: Caller is not a confirmed candidate
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := requireConfirmedRole(w, r, storage.RoleCandidate)
	if !ok {
		return
	}

	if err := h.pipeline.RemoveResume(ctx, caller.ID); err != nil {
		handleStoreError(w, ctx, err, "Failed to remove resume")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleIngestError maps ingestion pipeline errors to HTTP status codes.
// Upload errors carry enough detail for the candidate to retry correctly;
// upstream service failures stay generic.
func (h *ResumeHandler) handleIngestError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "resume ingestion failed", "error", err)

	switch {
	case errors.Is(err, ingest.ErrNotCandidate):
		writeError(w, http.StatusForbidden, "Only candidate accounts can upload a resume")
	case errors.Is(err, ingest.ErrTextTooShort):
		writeError(w, http.StatusBadRequest, "The resume contains too little extractable text. Upload a text-based PDF, not a scan.")
	case errors.Is(err, extract.ErrInvalidPDF):
		writeError(w, http.StatusUnprocessableEntity, "The uploaded file is not a readable PDF")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, vectorstore.ErrTimeout):
		writeError(w, http.StatusBadGateway, "Search index timed out, try again later")
	default:
		// Upstream classification follows the pipeline's wrapping.
		errMsg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errMsg, "embed"):
			writeError(w, http.StatusBadGateway, "Embedding service unavailable, try again later")
		case strings.Contains(errMsg, "vector") || strings.Contains(errMsg, "qdrant"):
			writeError(w, http.StatusBadGateway, "Search index unavailable, try again later")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to process resume")
		}
	}
}

// isPDFUpload checks the declared content type and filename. The actual
// bytes are verified by the extractor.
func isPDFUpload(header *multipart.FileHeader) bool {
	ct := strings.ToLower(header.Header.Get("Content-Type"))
	if strings.Contains(ct, "application/pdf") || strings.Contains(ct, "application/x-pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(header.Filename), ".pdf")
}

// isTooLarge detects MaxBytesReader trips. The multipart reader can
// swallow the typed error, so the message is checked as well.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
