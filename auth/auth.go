// Package auth verifies the bearer credentials the identity provider issues
// to dashboard users. Tokens are checked against the provider's JWKS, which
// is fetched once and kept fresh by an HTTP resource cache.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/brandscapers/dropbydrop/config"
)

var (
	// ErrNotConfigured means no issuer or JWKS URL was supplied at startup.
	// The admin endpoints cannot run without one, so startup fails closed.
	ErrNotConfigured = errors.New("auth: no AUTH_ISSUER_URL or AUTH_JWKS_URL configured")

	// ErrUnauthenticated covers every invalid-credential case: missing or
	// malformed header, bad signature, expired token, wrong issuer.
	ErrUnauthenticated = errors.New("auth: invalid or missing credentials")
)

// Identity is the decoded caller of a protected endpoint.
type Identity struct {
	Subject string
	Email   string
}

// TokenVerifier checks one bearer credential and returns the decoded identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type Verifier struct {
	cache   *jwk.Cache
	static  jwk.Set
	jwksURL string
	issuer  string
}

func NewVerifier(ctx context.Context, cfg config.Config) (*Verifier, error) {
	if cfg.AuthJWKSURL == "" {
		return nil, ErrNotConfigured
	}

	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("auth: init jwk cache: %w", err)
	}
	err = cache.Register(ctx, cfg.AuthJWKSURL)
	if err != nil {
		return nil, fmt.Errorf("auth: register jwks url: %w", err)
	}

	return &Verifier{
		cache:   cache,
		jwksURL: cfg.AuthJWKSURL,
		issuer:  cfg.AuthIssuerURL,
	}, nil
}

// newStaticVerifier builds a verifier over a fixed key set, bypassing the
// JWKS fetch. Used by tests.
func newStaticVerifier(set jwk.Set, issuer string) *Verifier {
	return &Verifier{static: set, issuer: issuer}
}

func (v *Verifier) keySet(ctx context.Context) (jwk.Set, error) {
	if v.static != nil {
		return v.static, nil
	}
	return v.cache.Lookup(ctx, v.jwksURL)
}

func (v *Verifier) Verify(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrUnauthenticated
	}

	set, err := v.keySet(ctx)
	if err != nil {
		// provider unreachable is a server-side failure, not a bad credential
		return Identity{}, fmt.Errorf("auth: fetch jwks: %w", err)
	}

	opts := []jwt.ParseOption{
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse([]byte(raw), opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}

	identity := Identity{}
	if sub, ok := token.Subject(); ok {
		identity.Subject = sub
	}
	if identity.Subject == "" {
		return Identity{}, fmt.Errorf("%w: no subject claim", ErrUnauthenticated)
	}

	// email is informational only
	token.Get("email", &identity.Email)

	return identity, nil
}

// BearerToken extracts the credential from an Authorization header,
// reporting false when the header is missing or not a Bearer scheme.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
