package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userRoleRepository struct {
	db *sqlx.DB
}

func newUserRoleRepository(db *sqlx.DB) *userRoleRepository {
	return &userRoleRepository{
		db: db,
	}
}

func (r *userRoleRepository) GetRole(ctx context.Context, userID uuid.UUID) (domain.Role, error) {
	var userRole domain.UserRole
	query := r.db.Rebind("SELECT user_id, role FROM user_roles WHERE user_id = ? LIMIT 1")

	if err := r.db.GetContext(ctx, &userRole, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("select user role: %w", err)
	}

	return userRole.Role, nil
}
