package mock

import (
	"context"

	"github.com/fwojciec/readdoc"
)

var _ readdoc.TokenVerifier = (*TokenVerifier)(nil)

// TokenVerifier is a mock implementation of readdoc.TokenVerifier.
type TokenVerifier struct {
	VerifyFn func(ctx context.Context, token string) (*readdoc.Identity, error)
}

func (v *TokenVerifier) Verify(ctx context.Context, token string) (*readdoc.Identity, error) {
	return v.VerifyFn(ctx, token)
}
