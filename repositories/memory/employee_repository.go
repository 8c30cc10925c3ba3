package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/upb/employee-api/models"
	"github.com/upb/employee-api/repositories"
)

// EmployeeRepository is an in-memory employee store with an atomic ID
// counter.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[int64]models.Employee
	idCounter atomic.Int64
}

// NewEmployeeRepository creates an empty in-memory employee repository
func NewEmployeeRepository() repositories.EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[int64]models.Employee),
	}
}

// List returns employees matching the filter, ordered by ID, plus the
// total match count before paging. The position filter is a
// case-insensitive substring match.
func (r *EmployeeRepository) List(_ context.Context, filter repositories.EmployeeFilter) ([]models.Employee, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Employee, 0, len(r.employees))
	needle := strings.ToLower(filter.Position)
	for _, emp := range r.employees {
		if needle != "" && !strings.Contains(strings.ToLower(emp.Position), needle) {
			continue
		}
		matched = append(matched, emp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= total {
			return []models.Employee{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// GetByID returns the employee with the given ID
func (r *EmployeeRepository) GetByID(_ context.Context, id int64) (*models.Employee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return nil, false, nil
	}
	return &emp, true, nil
}

// Create persists a new employee and assigns the next ID
func (r *EmployeeRepository) Create(_ context.Context, emp *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp.ID = r.idCounter.Add(1)
	r.employees[emp.ID] = *emp
	return nil
}

// Update replaces the employee with the given ID
func (r *EmployeeRepository) Update(_ context.Context, id int64, emp *models.Employee) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return false, nil
	}
	emp.ID = id
	r.employees[id] = *emp
	return true, nil
}

// Delete removes the employee with the given ID
func (r *EmployeeRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return false, nil
	}
	delete(r.employees, id)
	return true, nil
}
