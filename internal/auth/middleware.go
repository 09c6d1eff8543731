package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// SubjectContextKey holds the verified token subject (the username)
const SubjectContextKey ContextKey = "subject"

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth validates the bearer token and stores its subject in the
// request context. Expired and invalid tokens are distinguished in logs only;
// the response body is identical for both.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthenticated(w)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Warn("authentication failed: malformed authorization header")
			respondUnauthenticated(w)
			return
		}

		claims, err := m.tokenService.VerifyToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, ErrExpiredToken):
				logger.Warn("authentication failed: token expired")
			case errors.Is(err, ErrSubjectMissing):
				logger.Warn("authentication failed: subject claim missing")
			default:
				logger.Warn("authentication failed: invalid token")
			}
			respondUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext extracts the verified token subject from the request context
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectContextKey).(string)
	return subject, ok
}

func respondUnauthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "unauthenticated", httputil.CodeUnauthenticated, http.StatusUnauthorized)
}
