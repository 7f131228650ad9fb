package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	CleanupCodesTaskName    = "cleanupVerificationCodesTask"
	MaintenanceQueueName    = "maintenanceQueue"
	cleanupCodesTaskTimeout = time.Minute
)

type CleanupCodes struct {
	Reason string `json:"reason"`
}

func NewCleanupCodesTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(CleanupCodes{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		CleanupCodesTaskName,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(MaintenanceQueueName),
		asynq.Timeout(cleanupCodesTaskTimeout),
	), nil
}
