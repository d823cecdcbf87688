package readdoc

import "context"

// Identity is an authenticated caller.
type Identity struct {
	UserID string
}

// TokenVerifier turns bearer tokens into identities.
type TokenVerifier interface {
	// Verify returns the identity a token was issued for.
	// Returns EUNAUTHORIZED if the token is invalid or expired.
	Verify(ctx context.Context, token string) (*Identity, error)
}

type identityKey struct{}

// NewContextWithIdentity returns a copy of ctx carrying id.
func NewContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored in ctx, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
