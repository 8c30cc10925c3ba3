package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/employee-api/policy"
	"github.com/upb/employee-api/utils"
	"go.uber.org/zap"
)

// PolicyEnforcer applies the route policy table to every request. It runs
// after the authentication stage and is the single place a request is
// rejected for missing or insufficient credentials.
type PolicyEnforcer struct {
	table  *policy.Table
	logger *zap.Logger
}

// NewPolicyEnforcer creates a new PolicyEnforcer
func NewPolicyEnforcer(table *policy.Table, logger *zap.Logger) *PolicyEnforcer {
	return &PolicyEnforcer{
		table:  table,
		logger: logger,
	}
}

// Enforce is the authorization stage middleware.
func (e *PolicyEnforcer) Enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimiddleware.GetReqID(ctx)
		sctx := GetSecurityContext(ctx)

		decision := e.table.Decide(r.Method, r.URL.Path, policy.Subject{
			Authenticated: sctx.Authenticated,
			Roles:         sctx.Roles,
		})

		switch decision {
		case policy.DenyUnauthenticated:
			e.logger.Warn("request denied: not authenticated",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "Authentication required")
		case policy.DenyForbidden:
			e.logger.Warn("request denied: insufficient role",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("user", sctx.Username))
			_ = utils.WriteForbidden(w, "Insufficient permissions")
		default:
			next.ServeHTTP(w, r)
		}
	})
}
