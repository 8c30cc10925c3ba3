package repositories

import (
	"context"

	"github.com/upb/employee-api/models"
)

// UserRepository is the credential store consumed by the auth service.
// Lookups return an explicit found flag instead of a nil-able result so
// callers must handle the missing-user branch.
type UserRepository interface {
	// FindByUsername returns the stored credential for a username.
	FindByUsername(ctx context.Context, username string) (*models.User, bool, error)

	// ExistsByUsername reports whether a username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save persists a new credential.
	Save(ctx context.Context, user *models.User) error
}

// EmployeeFilter narrows and pages an employee listing. A zero Limit means
// no paging.
type EmployeeFilter struct {
	Position string
	Offset   int
	Limit    int
}

// EmployeeRepository is the storage backend for the employee resource.
type EmployeeRepository interface {
	// List returns the employees matching the filter plus the total match
	// count before paging.
	List(ctx context.Context, filter EmployeeFilter) ([]models.Employee, int, error)

	// GetByID returns the employee with the given ID.
	GetByID(ctx context.Context, id int64) (*models.Employee, bool, error)

	// Create persists a new employee and assigns its ID.
	Create(ctx context.Context, emp *models.Employee) error

	// Update replaces the employee with the given ID. The found flag is
	// false when no such employee exists.
	Update(ctx context.Context, id int64, emp *models.Employee) (bool, error)

	// Delete removes the employee with the given ID. The found flag is
	// false when no such employee exists.
	Delete(ctx context.Context, id int64) (bool, error)
}
