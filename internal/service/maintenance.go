package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gamestore-zarzis/backend/internal/repository"
	"github.com/gamestore-zarzis/backend/pkg/logger"

	"go.uber.org/zap"
)

type maintenanceService struct {
	codes        repository.VerificationCodes
	retention    time.Duration
	queryTimeout time.Duration
	now          func() time.Time
}

func newMaintenanceService(codes repository.VerificationCodes, retention, queryTimeout time.Duration, now func() time.Time) *maintenanceService {
	return &maintenanceService{
		codes:        codes,
		retention:    retention,
		queryTimeout: queryTimeout,
		now:          now,
	}
}

// CleanupVerificationCodes deletes codes that expired more than the retention ago.
func (s *maintenanceService) CleanupVerificationCodes(ctx context.Context) (int64, error) {
	const op = "maintenanceService.CleanupVerificationCodes"

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	before := s.now().Add(-s.retention)
	deleted, err := s.codes.DeleteExpiredBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}

	logger.Info("verification codes cleaned up", zap.Int64("deleted", deleted), zap.Time("expired_before", before))
	return deleted, nil
}
