package employee

import "context"

// EmployeeService defines business logic for employee administration.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate flags an employee as inactive. The record is kept so
	// historical attendance entries stay attributable.
	Deactivate(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (EmployeeResponse, error)

	List(ctx context.Context, onlyActive bool) ([]EmployeeResponse, error)
}
