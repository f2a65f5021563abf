package auth

import (
	"context"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"wtfSpaces/errs"
)

// TokenVerifier checks bearer tokens against the identity provider's JWKS
// and extracts the subject claim. Signature, issuer and audience are
// enforced here; what the subject means is the session service's business.
type TokenVerifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NewTokenVerifier fetches the provider's JWKS and returns a verifier that
// keeps the key set refreshed in the background until Close is called.
func NewTokenVerifier(ctx context.Context, jwksURI, issuer, audience string) (*TokenVerifier, error) {
	jwks, err := keyfunc.Get(jwksURI, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, errs.Errorf(errs.EUNAVAILABLE, "Could not fetch JWKS from %s: %v.", jwksURI, err)
	}
	return &TokenVerifier{
		jwks:     jwks,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Subject verifies the raw bearer token and returns its subject claim.
func (v *TokenVerifier) Subject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil || !token.Valid {
		return "", errs.Errorf(errs.EUNAUTHENTICATED, "Bearer token is invalid.")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", errs.Errorf(errs.EUNAUTHENTICATED, "Bearer token carries no subject.")
	}
	return subject, nil
}

// Close stops the background JWKS refresh.
func (v *TokenVerifier) Close() {
	v.jwks.EndBackground()
}

// PassthroughVerifier treats the raw bearer token as the subject claim
// itself, skipping all cryptographic checks. Dev setups without an
// identity provider use it; never wire it in production.
type PassthroughVerifier struct{}

// Subject returns the token string unchanged.
func (PassthroughVerifier) Subject(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.Errorf(errs.EUNAUTHENTICATED, "Bearer token is empty.")
	}
	return tokenString, nil
}
