package middleware

import (
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/employee-api/token"
	"go.uber.org/zap"
)

// TokenValidator is the slice of the token service the authentication stage
// needs: parse plus the refresh-family check.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
	IsRefresh(claims *token.Claims) bool
}

// Authenticator populates the per-request SecurityContext from the
// Authorization header. It never rejects a request itself: all failures
// leave the context unauthenticated and the route policy decides the
// outcome, so every failure mode surfaces as the same 401 downstream.
type Authenticator struct {
	tokens TokenValidator
	logger *zap.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(tokens TokenValidator, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate is the authentication stage, run once per request before any
// route handler.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimiddleware.GetReqID(ctx)

		sctx := &SecurityContext{}

		if bearer := extractBearerToken(r); bearer != "" {
			claims, err := a.tokens.Validate(bearer)
			switch {
			case err != nil:
				a.logger.Warn("bearer token rejected",
					zap.String("request_id", requestID),
					zap.Error(err))
			case a.tokens.IsRefresh(claims):
				// A refresh token carries no roles and was never meant to
				// authorize resource access.
				a.logger.Warn("refresh token presented as bearer credential",
					zap.String("request_id", requestID),
					zap.String("sub", claims.Subject))
			default:
				sctx = &SecurityContext{
					Authenticated: true,
					Username:      claims.Subject,
					Roles:         claims.Roles,
				}
				a.logger.Debug("authentication successful",
					zap.String("request_id", requestID),
					zap.String("sub", claims.Subject))
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSecurityContext(ctx, sctx)))
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
