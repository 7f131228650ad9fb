package domain

import "github.com/google/uuid"

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

type UserRole struct {
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Role   Role      `json:"role" db:"role"`
}
