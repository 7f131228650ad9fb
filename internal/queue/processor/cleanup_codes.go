package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/queue/task"
	"github.com/gamestore-zarzis/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type cleanupCodesProcessor struct {
	workers *worker.Workers
}

func NewCleanupCodesProcessor(workers *worker.Workers) *cleanupCodesProcessor {
	return &cleanupCodesProcessor{
		workers: workers,
	}
}

func (p *cleanupCodesProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.CleanupCodes
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &data); err != nil {
			return fmt.Errorf("process cleanup codes task json unmarshal failed: %w", err)
		}
	}

	if err := p.workers.CodeCleaner.CleanupCodes(ctx, data.Reason); err != nil {
		return fmt.Errorf("cleanup verification codes failed: %w", err)
	}

	return nil
}
