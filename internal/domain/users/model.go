package users

import "time"

// Role es informativo; no se hacen chequeos de permisos.
// @Enum veterinarian, receptionist, owner
type Role string

const (
	RoleVeterinarian Role = "veterinarian"
	RoleReceptionist Role = "receptionist"
	RoleOwner        Role = "owner"
)

type User struct {
	ID string

	Name  string
	Email string
	Role  Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
