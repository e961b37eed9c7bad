package middleware

import (
	"net/http"
	"strings"

	"advogadovirtual/internal/auth"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/httputil"
)

// AuthMiddleware validates the Bearer token on every request and stores
// the caller Identity (user, escritório, papel) in the request context.
// The health check is exempt so load balancers can probe without a token.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ident := models.Identity{
				UserID:       claims.GetUserID(),
				EscritorioID: claims.GetEscritorioID(),
				Papel:        claims.GetPapel(),
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, ident))
		})
	}
}
