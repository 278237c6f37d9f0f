package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/storage"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleStoreError maps storage errors to HTTP status codes. Validation
// errors surface their own message, unknown records become 404, and
// everything else is a 500 with the caller-supplied message so internal
// detail stays out of the response body.
func handleStoreError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var verr *storage.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.WarnContext(ctx, "request validation failed", "field", verr.Field, "error", err)
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, storage.ErrNotFound):
		logger.WarnContext(ctx, "record not found", "error", err)
		writeError(w, http.StatusNotFound, "Not found")
	default:
		logger.ErrorContext(ctx, defaultMsg, "error", err)
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

// callerFromRequest extracts the authenticated caller set by the identity
// middleware, writing a 401 when none is present.
func callerFromRequest(w http.ResponseWriter, r *http.Request) (contextutil.Caller, bool) {
	caller, ok := contextutil.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
	}
	return caller, ok
}

// requireConfirmedRole extracts the caller and checks that they hold the
// given role and have explicitly confirmed it. Unconfirmed roles are not
// authoritative for access control.
func requireConfirmedRole(w http.ResponseWriter, r *http.Request, role storage.Role) (contextutil.Caller, bool) {
	caller, ok := callerFromRequest(w, r)
	if !ok {
		return caller, false
	}
	if caller.Role != role || !caller.RoleConfirmed {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "caller role not allowed",
			"caller_id", caller.ID, "role", caller.Role, "role_confirmed", caller.RoleConfirmed, "required", role)
		writeError(w, http.StatusForbidden, "This action requires a confirmed "+string(role)+" account")
		return caller, false
	}
	return caller, true
}
