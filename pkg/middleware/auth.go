package middleware

import (
	"context"
	"net/http"
	"strings"

	"flight-review/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to a company name.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AuthCompany rejects requests without a valid company bearer token and puts
// the company name into the request context.
func AuthCompany(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			company, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn("Rejected company token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetCompanyContext(r.Context(), company)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
