package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/employee-api/app"
	"github.com/upb/employee-api/config"
	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/policy"
	"go.uber.org/zap"
)

func policySubject(authenticated bool, roles []string) policy.Subject {
	return policy.Subject{Authenticated: authenticated, Roles: roles}
}

func newTestServer(t *testing.T) (http.Handler, *app.Dependencies) {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		JWT: config.JWTConfig{
			Secret:     "a-test-signing-secret-of-32-bytes!!",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}

	deps, err := app.NewDependencies(cfg, AccessPolicy(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	return SetupRoutes(deps), deps
}

func request(t *testing.T, router http.Handler, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

func registerAndLogin(t *testing.T, router http.Handler, username, password string) tokenPair {
	t.Helper()

	reg := request(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, reg.Code, reg.Body.String())

	login := request(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, login.Code, login.Body.String())

	var pair tokenPair
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &pair))
	return pair
}

func promoteToAdmin(t *testing.T, deps *app.Dependencies, username string) {
	t.Helper()

	user, found, err := deps.Users.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	require.True(t, found)
	user.Roles = append(user.Roles, models.RoleAdmin)
	require.NoError(t, deps.Users.Save(context.Background(), user))
}

func TestPublicEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/docs/openapi.json", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := request(t, router, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticationFlow(t *testing.T) {
	router, _ := newTestServer(t)
	pair := registerAndLogin(t, router, "alice", "correct-horse")

	t.Run("me without a token returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me with an access token returns the identity", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/auth/me", pair.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var identity struct {
			Username string   `json:"username"`
			Roles    []string `json:"roles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, []string{models.RoleUser}, identity.Roles)
	})

	t.Run("me with a refresh token as bearer returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/auth/me", pair.RefreshToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh with a refresh token returns a new pair", func(t *testing.T) {
		rec := request(t, router, http.MethodPost, "/auth/refresh", "", map[string]string{
			"refreshToken": pair.RefreshToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var next tokenPair
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
		assert.NotEmpty(t, next.AccessToken)
	})

	t.Run("refresh with an access token returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodPost, "/auth/refresh", "", map[string]string{
			"refreshToken": pair.AccessToken,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate registration returns 409", func(t *testing.T) {
		rec := request(t, router, http.MethodPost, "/auth/register", "", map[string]string{
			"username": "alice",
			"password": "another-pass",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestEmployeeAuthorization(t *testing.T) {
	router, deps := newTestServer(t)
	userPair := registerAndLogin(t, router, "alice", "correct-horse")

	registerAndLogin(t, router, "root", "admin-password")
	promoteToAdmin(t, deps, "root")
	adminLogin := request(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "root",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, adminLogin.Code)
	var adminPair tokenPair
	require.NoError(t, json.Unmarshal(adminLogin.Body.Bytes(), &adminPair))

	t.Run("listing without a token returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/api/v1/employees", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	var employeeID int64
	t.Run("authenticated user can create and read", func(t *testing.T) {
		created := request(t, router, http.MethodPost, "/api/v1/employees", userPair.AccessToken, map[string]string{
			"name":     "Ada Lovelace",
			"position": "Engineer",
		})
		require.Equal(t, http.StatusCreated, created.Code)

		var emp models.Employee
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &emp))
		employeeID = emp.ID

		got := request(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", employeeID), userPair.AccessToken, nil)
		assert.Equal(t, http.StatusOK, got.Code)
	})

	t.Run("delete as plain user returns 403", func(t *testing.T) {
		rec := request(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", employeeID), userPair.AccessToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete as admin returns 204", func(t *testing.T) {
		rec := request(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", employeeID), adminPair.AccessToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown path without a token returns 401", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/api/v1/unknown", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown path with a token returns 404", func(t *testing.T) {
		rec := request(t, router, http.MethodGet, "/api/v1/unknown", userPair.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAccessPolicyTable(t *testing.T) {
	table := AccessPolicy()

	t.Run("me rule outranks the auth wildcard", func(t *testing.T) {
		tests := []struct {
			method string
			path   string
			want   string
		}{
			{http.MethodPost, "/auth/login", "allow"},
			{http.MethodPost, "/auth/refresh", "allow"},
			{http.MethodPost, "/auth/register", "allow"},
			{http.MethodGet, "/auth/me", "deny_unauthenticated"},
		}
		for _, tt := range tests {
			decision := table.Decide(tt.method, tt.path, policySubject(false, nil))
			assert.Equal(t, tt.want, decision.String(), "%s %s", tt.method, tt.path)
		}
	})

	t.Run("employee delete requires the admin role", func(t *testing.T) {
		decision := table.Decide(http.MethodDelete, "/api/v1/employees/7", policySubject(true, []string{models.RoleUser}))
		assert.Equal(t, "deny_forbidden", decision.String())

		decision = table.Decide(http.MethodDelete, "/api/v1/employees/7", policySubject(true, []string{models.RoleUser, models.RoleAdmin}))
		assert.Equal(t, "allow", decision.String())
	})
}
