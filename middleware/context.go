package middleware

import (
	"context"
)

// Context key type to avoid collisions
type contextKey string

const (
	// securityContextKey is the context key for the per-request SecurityContext
	securityContextKey contextKey = "security_context"
)

// SecurityContext is the per-request authentication state derived from a
// validated access token. It is populated at most once by the
// authentication stage and read-only afterwards.
type SecurityContext struct {
	Authenticated bool
	Username      string
	Roles         []string
}

// HasRole returns true if the authenticated caller's role set contains role
func (s *SecurityContext) HasRole(role string) bool {
	if s == nil || !s.Authenticated {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// WithSecurityContext adds a SecurityContext to the request context
func WithSecurityContext(ctx context.Context, sctx *SecurityContext) context.Context {
	return context.WithValue(ctx, securityContextKey, sctx)
}

// GetSecurityContext retrieves the SecurityContext from the request context.
// An empty unauthenticated context is returned when none was set, so callers
// never have to nil-check.
func GetSecurityContext(ctx context.Context) *SecurityContext {
	if val := ctx.Value(securityContextKey); val != nil {
		if sctx, ok := val.(*SecurityContext); ok {
			return sctx
		}
	}
	return &SecurityContext{}
}
