package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/bookshop-be/internal/auth"
	"github.com/hongminglow/bookshop-be/internal/http/respond"
)

const keyClaims ctxKey = "claims"

// Claims returns the verified token claims stored by RequireAuth.
func Claims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(keyClaims).(*auth.Claims)
	return c, ok
}

// RequireAuth rejects requests without a valid "Bearer" token and stores the
// verified claims in the request context.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "token expired"
				}
				respond.Error(w, http.StatusUnauthorized, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), keyClaims, claims)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
