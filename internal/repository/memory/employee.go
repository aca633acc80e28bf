package memory

import (
	"context"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.state.Employees {
		if e.Name == emp.Name {
			return employee.Employee{}, employee.ErrNameExists
		}
	}

	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.store.state.Employees = append(r.store.state.Employees, emp)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.state.Employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// GetByName implements employee.EmployeeRepository.
func (r *employeeRepository) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.state.Employees {
		if e.Name == name {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, onlyActive bool) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.store.state.Employees))
	for _, e := range r.store.state.Employees {
		if onlyActive && !e.Active {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, e := range r.store.state.Employees {
		if e.ID == emp.ID {
			emp.CreatedAt = e.CreatedAt
			emp.UpdatedAt = time.Now().UTC()
			r.store.state.Employees[i] = emp
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.state.Employees {
		if r.store.state.Employees[i].ID == id {
			r.store.state.Employees[i].Active = false
			r.store.state.Employees[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}
