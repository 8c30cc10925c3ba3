package app

import (
	"fmt"

	"github.com/upb/employee-api/config"
	"github.com/upb/employee-api/handlers"
	"github.com/upb/employee-api/middleware"
	"github.com/upb/employee-api/policy"
	"github.com/upb/employee-api/repositories"
	"github.com/upb/employee-api/repositories/memory"
	"github.com/upb/employee-api/repositories/postgres"
	"github.com/upb/employee-api/services"
	"github.com/upb/employee-api/token"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil when the in-memory store is used
	Logger *zap.Logger

	// Repositories
	Users     repositories.UserRepository
	Employees repositories.EmployeeRepository

	// Services
	Tokens          *token.Service
	AuthService     *services.AuthService
	EmployeeService *services.EmployeeService

	// Middleware
	Authenticator  *middleware.Authenticator
	PolicyEnforcer *middleware.PolicyEnforcer

	// Handlers
	AuthHandler     *handlers.AuthHandler
	EmployeeHandler *handlers.EmployeeHandler
	HealthHandler   *handlers.HealthHandler
	DocsHandler     *handlers.DocsHandler
}

// NewDependencies creates and wires up all application dependencies.
// The route policy table is supplied by the caller so the routing layer
// stays the single owner of the authorization rules.
func NewDependencies(cfg *config.Config, table *policy.Table, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initRepositories(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	if err := deps.initServices(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	deps.initHTTP(table)

	logger.Info("all dependencies initialized")
	return deps, nil
}

// initRepositories selects the storage backend from the configuration.
// Without a database the service runs fully in memory, which is the mode
// the test suite and local development use.
func (d *Dependencies) initRepositories(cfg *config.Config) error {
	if cfg.Database == nil {
		d.Users = memory.NewUserRepository()
		d.Employees = memory.NewEmployeeRepository()
		d.Logger.Info("using in-memory storage")
		return nil
	}

	db, err := postgres.NewDB(*cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	d.DB = db
	d.Users = postgres.NewUserRepository(db, d.Logger)
	d.Employees = postgres.NewEmployeeRepository(db, d.Logger)
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) error {
	tokens, err := token.NewService([]byte(cfg.JWT.Secret), cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}
	d.Tokens = tokens

	authService, err := services.NewAuthService(d.Users, services.NewBcryptHasher(), tokens, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	d.AuthService = authService
	d.EmployeeService = services.NewEmployeeService(d.Employees, d.Logger)
	return nil
}

func (d *Dependencies) initHTTP(table *policy.Table) {
	d.Authenticator = middleware.NewAuthenticator(d.Tokens, d.Logger)
	d.PolicyEnforcer = middleware.NewPolicyEnforcer(table, d.Logger)

	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.EmployeeHandler = handlers.NewEmployeeHandler(d.EmployeeService, d.Logger)
	if d.DB != nil {
		d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
	} else {
		d.HealthHandler = handlers.NewHealthHandler(nil, d.Logger)
	}
	d.DocsHandler = handlers.NewDocsHandler(d.Logger)
}

// Close releases held resources
func (d *Dependencies) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
