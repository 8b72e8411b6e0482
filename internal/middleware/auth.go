package middleware

import (
	"context"
	"net/http"
	"strings"

	"lol-tracker/internal/auth"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const principalKey contextKey = "principal"

type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Authenticate attaches the caller's principal when a valid bearer token is
// present. Requests without one pass through anonymously; RequireAuth
// rejects them on protected routes.
func Authenticate(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected bearer token")
				next.ServeHTTP(w, r)
				return
			}

			p := domain.Principal{UserID: claims.UserID, Username: claims.Username(), Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAuth hands unauthenticated requests to unauthorized instead of next.
func RequireAuth(unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFrom(r.Context()); !ok {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
