// Package memory provides mutex-guarded in-memory repository backends.
// They are the default backends for development and tests and can be
// swapped for the postgres implementations without touching the services.
package memory

import (
	"context"
	"sync"

	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
)

// UserRepository is an in-memory credential store keyed by username.
// Reads take the shared lock, writes the exclusive one.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		users: make(map[string]models.User),
	}
}

// FindByUsername returns a copy of the stored credential for a username
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*models.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored role set.
	user.Roles = append([]string(nil), user.Roles...)
	return &user, true, nil
}

// ExistsByUsername reports whether a username is already taken
func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok, nil
}

// Save persists a credential, overwriting any previous entry for the
// username
func (r *UserRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.Roles = append([]string(nil), user.Roles...)
	r.users[user.Username] = stored
	return nil
}
