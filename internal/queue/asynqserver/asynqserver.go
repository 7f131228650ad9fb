package asynqserver

import (
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/cache"
	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/queue/processor"
	"github.com/gamestore-zarzis/backend/internal/queue/task"
	"github.com/gamestore-zarzis/backend/internal/worker"

	"github.com/hibiken/asynq"
)

const scheduledCleanupReason = "schedule"

func New(cfg config.Cache, queueCfg config.QueueConfig, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)

	concurrency := queueCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: concurrency,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler enqueues the verification code cleanup on the cleanup schedule.
func NewScheduler(cfg config.Cache, cleanupCfg config.CleanupConfig) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(RedisOptions(cfg), &asynq.SchedulerOpts{
		LogLevel: asynq.ErrorLevel,
	})

	cleanupTask, err := task.NewCleanupCodesTask(scheduledCleanupReason)
	if err != nil {
		return nil, err
	}

	if _, err := scheduler.Register(cleanupCfg.Schedule, cleanupTask); err != nil {
		return nil, fmt.Errorf("register cleanup schedule %q failed: %w", cleanupCfg.Schedule, err)
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.CleanupCodesTaskName, processor.NewCleanupCodesProcessor(workers))
	queues := map[string]int{
		task.MaintenanceQueueName: 1,
	}
	return mux, queues
}
