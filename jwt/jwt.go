// Package jwt verifies and issues HS256 bearer tokens.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/golang-jwt/jwt/v5"
)

// Ensure Verifier implements readdoc.TokenVerifier at compile time.
var _ readdoc.TokenVerifier = (*Verifier)(nil)

// MinSecretLen is the shortest accepted signing secret.
const MinSecretLen = 32

// Verifier validates HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for tokens signed with secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses token and returns the identity named by its subject.
func (v *Verifier) Verify(ctx context.Context, token string) (*readdoc.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// Only HS256 is accepted.
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, readdoc.Errorf(readdoc.EUNAUTHORIZED, "Invalid token")
	}
	if claims.Subject == "" {
		return nil, readdoc.Errorf(readdoc.EUNAUTHORIZED, "Token has no subject")
	}
	return &readdoc.Identity{UserID: claims.Subject}, nil
}

// Issue mints a token for userID that expires after ttl.
func Issue(secret []byte, userID string, ttl time.Duration) (string, error) {
	if len(secret) < MinSecretLen {
		return "", readdoc.Errorf(readdoc.EINVALID, "secret must be at least %d bytes", MinSecretLen)
	}
	if userID == "" {
		return "", readdoc.Errorf(readdoc.EINVALID, "user ID required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
