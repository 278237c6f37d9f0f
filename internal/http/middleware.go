package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/handlers"
	"talentmatch/internal/storage"
)

// LoggerMiddleware adds a structured logger to the request context.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := contextutil.WithLogger(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseWriter captures the status code for access logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs completed requests. Successful hits on the root and
// health endpoints are skipped so probes do not drown the log.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode == http.StatusOK && (r.URL.Path == "/" || r.URL.Path == "/api/health") {
			return
		}
		slog.Default().Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// CORS adds CORS headers to allow cross-origin requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Identity resolves the caller from the X-User-ID header and stashes the
// profile's identity in the request context. Session handling lives
// upstream; this trusts the header and only checks the profile exists.
func Identity(profiles storage.ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := contextutil.LoggerFromContext(ctx)

			userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
			if userID == "" {
				writeAuthError(w, http.StatusUnauthorized, "X-User-ID header is required")
				return
			}

			profile, err := profiles.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					logger.WarnContext(ctx, "unknown caller", "user_id", userID)
					writeAuthError(w, http.StatusUnauthorized, "Unknown user")
					return
				}
				logger.ErrorContext(ctx, "failed to resolve caller", "error", err)
				writeAuthError(w, http.StatusInternalServerError, "Failed to resolve caller")
				return
			}

			caller := contextutil.Caller{
				ID:            profile.ID,
				Role:          profile.Role,
				RoleConfirmed: profile.RoleConfirmed,
			}
			next.ServeHTTP(w, r.WithContext(contextutil.WithCaller(ctx, caller)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(handlers.ErrorResponse{Error: message})
}
