package rest

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/server/auth"
)

type ctxKey string

const (
	identityKey ctxKey = "identity"
	bodyKey     ctxKey = "body"
)

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok && id != nil
}

func withBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, bodyKey, body)
}

// bodyFrom returns the request body decoded by decodeBody[T].
func bodyFrom[T any](ctx context.Context) (*T, bool) {
	b, ok := ctx.Value(bodyKey).(*T)
	return b, ok && b != nil
}
