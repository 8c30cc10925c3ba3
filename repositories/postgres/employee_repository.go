package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
	"go.uber.org/zap"
)

// EmployeeRepository implements repositories.EmployeeRepository on PostgreSQL
type EmployeeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *DB, logger *zap.Logger) repositories.EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves a page of employees with an optional position filter.
// The returned total counts all rows matching the filter, not just the page.
func (r *EmployeeRepository) List(ctx context.Context, filter repositories.EmployeeFilter) ([]models.Employee, int, error) {
	countQuery := `SELECT COUNT(*) FROM employees WHERE ($1 = '' OR position ILIKE '%' || $1 || '%')`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, filter.Position).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `
		SELECT id, name, position
		FROM employees
		WHERE ($1 = '' OR position ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT NULLIF($3, 0)
	`

	rows, err := r.db.QueryContext(ctx, query, filter.Position, filter.Offset, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Position); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, bool, error) {
	query := `SELECT id, name, position FROM employees WHERE id = $1`

	emp := &models.Employee{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&emp.ID, &emp.Name, &emp.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, true, nil
}

// Create persists a new employee and assigns its ID
func (r *EmployeeRepository) Create(ctx context.Context, emp *models.Employee) error {
	query := `INSERT INTO employees (name, position) VALUES ($1, $2) RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, emp.Name, emp.Position).Scan(&emp.ID); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	r.logger.Debug("employee created", zap.Int64("id", emp.ID))
	return nil
}

// Update replaces an existing employee's fields. The bool result reports
// whether a row with the given ID existed.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, emp *models.Employee) (bool, error) {
	query := `UPDATE employees SET name = $1, position = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, emp.Name, emp.Position, id)
	if err != nil {
		return false, fmt.Errorf("failed to update employee: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// Delete removes an employee by ID. The bool result reports whether a row
// with the given ID existed.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM employees WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
