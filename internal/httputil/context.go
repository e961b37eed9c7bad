package httputil

import (
	"context"
	"net/http"

	"advogadovirtual/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity adds the authenticated caller to the request context.
func WithIdentity(r *http.Request, ident models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, ident)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the caller identity from the context. The zero
// Identity (empty UserID) means the request never passed through the
// auth middleware.
func GetIdentity(r *http.Request) models.Identity {
	ident, _ := r.Context().Value(identityKey).(models.Identity)
	return ident
}
