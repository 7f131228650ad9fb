package worker

import (
	"context"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/pkg/logger"

	"go.uber.org/zap"
)

type codeCleaner struct {
	maintenance service.Maintenance
}

func newCodeCleaner(maintenance service.Maintenance) *codeCleaner {
	return &codeCleaner{
		maintenance: maintenance,
	}
}

func (c *codeCleaner) CleanupCodes(ctx context.Context, reason string) error {
	deleted, err := c.maintenance.CleanupVerificationCodes(ctx)
	if err != nil {
		return fmt.Errorf("cleanup codes: %w", err)
	}

	logger.Info("scheduled cleanup finished", zap.String("reason", reason), zap.Int64("deleted_codes", deleted))
	return nil
}
