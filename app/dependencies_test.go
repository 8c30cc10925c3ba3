package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/employee-api/config"
	"github.com/upb/employee-api/policy"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		JWT: config.JWTConfig{
			Secret:     "a-test-signing-secret-of-32-bytes!!",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

func TestNewDependenciesInMemory(t *testing.T) {
	table := policy.NewTable(nil)

	deps, err := NewDependencies(testConfig(), table, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.Nil(t, deps.DB)
	assert.NotNil(t, deps.Users)
	assert.NotNil(t, deps.Employees)
	assert.NotNil(t, deps.Tokens)
	assert.NotNil(t, deps.AuthService)
	assert.NotNil(t, deps.EmployeeService)
	assert.NotNil(t, deps.Authenticator)
	assert.NotNil(t, deps.PolicyEnforcer)
	assert.NotNil(t, deps.AuthHandler)
	assert.NotNil(t, deps.EmployeeHandler)
	assert.NotNil(t, deps.HealthHandler)
	assert.NotNil(t, deps.DocsHandler)
}

func TestNewDependenciesRejectsEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""

	_, err := NewDependencies(cfg, policy.NewTable(nil), zap.NewNop())
	assert.Error(t, err)
}

func TestCloseWithoutDatabase(t *testing.T) {
	deps, err := NewDependencies(testConfig(), policy.NewTable(nil), zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, deps.Close())
}
