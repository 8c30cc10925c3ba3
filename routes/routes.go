package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/employee-api/app"
	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/policy"
)

// AccessPolicy is the declarative route authorization table. Matching is
// first-match-wins with more specific patterns checked first; requests that
// match no rule require authentication.
func AccessPolicy() *policy.Table {
	return policy.NewTable([]policy.Rule{
		// Identity lookup requires a bearer token even though it lives
		// under /auth
		{Pattern: "/auth/me", Methods: []string{http.MethodGet}, Access: policy.AccessAuthenticated},
		{Pattern: "/auth/**", Methods: []string{http.MethodPost}, Access: policy.AccessPublic},

		{Pattern: "/healthz", Methods: []string{http.MethodGet}, Access: policy.AccessPublic},
		{Pattern: "/readyz", Methods: []string{http.MethodGet}, Access: policy.AccessPublic},
		{Pattern: "/docs/**", Methods: []string{http.MethodGet}, Access: policy.AccessPublic},

		{Pattern: "/api/v1/employees/*", Methods: []string{http.MethodDelete}, Access: policy.AccessRole, Role: models.RoleAdmin},
		{Pattern: "/api/v1/employees/**", Access: policy.AccessAuthenticated},
	})
}

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Authentication populates the security context, authorization decides.
	// Neither handler sees a request the policy table rejected.
	r.Use(deps.Authenticator.Authenticate)
	r.Use(deps.PolicyEnforcer.Enforce)

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	// API documentation
	r.Get("/docs/openapi.json", deps.DocsHandler.HandleOpenAPI)

	// Authentication endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", deps.AuthHandler.HandleLogin)
		r.Post("/refresh", deps.AuthHandler.HandleRefresh)
		r.Post("/register", deps.AuthHandler.HandleRegister)
		r.Get("/me", deps.AuthHandler.HandleMe)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", deps.EmployeeHandler.HandleList)
			r.Post("/", deps.EmployeeHandler.HandleCreate)
			r.Get("/{id}", deps.EmployeeHandler.HandleGet)
			r.Put("/{id}", deps.EmployeeHandler.HandleUpdate)
			r.Delete("/{id}", deps.EmployeeHandler.HandleDelete)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
