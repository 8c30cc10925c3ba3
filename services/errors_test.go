package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"invalid credentials", ErrInvalidCredentials, IsInvalidCredentialsError},
		{"unauthorized", ErrUnauthorized, IsUnauthorizedError},
		{"wrong token kind is unauthorized", ErrWrongTokenKind, IsUnauthorizedError},
		{"forbidden", ErrForbidden, IsForbiddenError},
		{"username taken is conflict", ErrUsernameTaken, IsConflictError},
		{"employee not found", ErrEmployeeNotFound, IsNotFoundError},
		{"internal", ErrInternal, IsInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			// Wrapping must not change the classification.
			assert.True(t, tt.check(fmt.Errorf("context: %w", tt.err)))
		})
	}
}

func TestWrongTokenKindIsDistinctFromGenericUnauthorized(t *testing.T) {
	assert.False(t, errors.Is(ErrUnauthorized, ErrWrongTokenKind))
	assert.True(t, errors.Is(ErrWrongTokenKind, ErrWrongTokenKind))
}

func TestWrapInternal(t *testing.T) {
	cause := errors.New("disk on fire")
	wrapped := WrapInternal("save failed", cause)

	assert.True(t, IsInternalError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "save failed")
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, GetErrorType(ErrUsernameTaken))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}
