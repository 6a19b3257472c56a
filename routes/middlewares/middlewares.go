package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/brandscapers/dropbydrop/auth"
	"github.com/brandscapers/dropbydrop/httpx"
	"github.com/brandscapers/dropbydrop/log"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth verifies the bearer credential before any admin endpoint runs.
// A bad or missing credential is a 401; a verifier-side failure (provider
// unreachable) is a 500.
func RequireAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r)
			if !ok {
				httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.bearer_token")
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.verify")
				} else {
					httpx.LogInternalError(w, "auth.verify", err)
				}
				return
			}

			log.Debugf("auth.verify: authenticated %s", identity.Subject)

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the verified identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
