package domain

import (
	"time"

	"github.com/google/uuid"
)

type VerificationCode struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Identifier string    `json:"identifier" db:"identifier"`
	Code       string    `json:"-" db:"code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
}

// Acceptable reports whether the code can still be consumed at now.
func (c *VerificationCode) Acceptable(now time.Time) bool {
	return !c.IsVerified && c.ExpiresAt.After(now)
}
