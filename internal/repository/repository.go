package repository

import (
	"context"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	VerificationCodes VerificationCodes
	StoreSettings     StoreSettings
	UserRoles         UserRoles
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		VerificationCodes: newVerificationCodeRepository(db),
		StoreSettings:     newStoreSettingRepository(db),
		UserRoles:         newUserRoleRepository(db),
	}
}

type VerificationCodes interface {
	Create(ctx context.Context, code *domain.VerificationCode) error
	// Verify marks the most recent acceptable code for identifier+code as verified.
	// It returns domain.ErrNoRowsAffected when nothing matched.
	Verify(ctx context.Context, identifier, code string, now time.Time) error
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}

type StoreSettings interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type UserRoles interface {
	GetRole(ctx context.Context, userID uuid.UUID) (domain.Role, error)
}

func isMySQL(db *sqlx.DB) bool {
	return db.DriverName() == "mysql"
}
