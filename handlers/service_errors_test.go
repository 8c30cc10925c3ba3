package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/employee-api/services"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid credentials map to 401 with a fixed message",
			err:        services.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid username or password",
		},
		{
			name:       "unauthorized maps to 401 with a fixed message",
			err:        services.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:       "wrong token kind maps to the same 401 body",
			err:        services.ErrWrongTokenKind,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:       "forbidden maps to 403",
			err:        services.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not found maps to 404",
			err:        services.ErrEmployeeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "conflict maps to 409",
			err:        services.ErrUsernameTaken,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "internal maps to 500 with a generic message",
			err:        services.WrapInternal("query failed", errors.New("pq: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An internal error occurred",
		},
		{
			name:       "unknown errors map to 500",
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleServiceError(rec, tt.err, zap.NewNop())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleServiceErrorDoesNotLeakInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleServiceError(rec, services.WrapInternal("connect failed", errors.New("dial tcp 10.0.0.5:5432")), zap.NewNop())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHandleServiceErrorNilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleServiceError(rec, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
