package ctxutil

import (
	"context"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

type identityKey struct{}

// WithIdentity attaches the authenticated caller to the request context.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity returns the caller identity, if the auth middleware attached
// one.
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}
