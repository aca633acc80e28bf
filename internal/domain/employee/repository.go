package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// Employees are never physically deleted while referenced by attendance
// history; Deactivate flips the active flag instead.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByName retrieves an employee by exact display name. Used by the
	// guard login flow.
	GetByName(ctx context.Context, name string) (Employee, error)

	List(ctx context.Context, onlyActive bool) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error

	Deactivate(ctx context.Context, id string) error
}
