package employee

import "time"

type Role string

const (
	RoleGuard Role = "GUARD"
	RoleAdmin Role = "ADMIN"
)

var RoleValues = []string{
	string(RoleGuard),
	string(RoleAdmin),
}

// PlaceholderName is rendered wherever a historical record references an
// employee that no longer exists.
const PlaceholderName = "---"

type Employee struct {
	ID        string
	Name      string
	Active    bool
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
