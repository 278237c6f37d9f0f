package contextutil

import (
	"context"

	"talentmatch/internal/storage"
)

const callerKey contextKey = "caller"

// Caller identifies the authenticated profile a request acts on behalf of.
// It is resolved once by the identity middleware and read by handlers.
// Role is only authoritative for access control once RoleConfirmed is set.
type Caller struct {
	ID            string
	Role          storage.Role
	RoleConfirmed bool
}

// WithCaller returns a copy of ctx carrying the given caller identity.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext extracts the caller identity from context.
// The second return value reports whether a caller was present.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	return caller, ok
}
