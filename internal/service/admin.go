package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/repository"

	"github.com/google/uuid"
)

type adminService struct {
	roles        repository.UserRoles
	queryTimeout time.Duration
}

func newAdminService(roles repository.UserRoles, queryTimeout time.Duration) *adminService {
	return &adminService{
		roles:        roles,
		queryTimeout: queryTimeout,
	}
}

// Authorize succeeds only for users holding the owner role.
func (s *adminService) Authorize(ctx context.Context, userID uuid.UUID) error {
	const op = "adminService.Authorize"

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	role, err := s.roles.GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}

	if role != domain.RoleOwner {
		return ErrForbidden
	}

	return nil
}
