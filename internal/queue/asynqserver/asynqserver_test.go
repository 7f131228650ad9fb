package asynqserver

import (
	"context"
	"errors"
	"testing"

	"github.com/gamestore-zarzis/backend/internal/cache"
	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/queue/task"
	"github.com/gamestore-zarzis/backend/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	reasons []string
	err     error
}

func (f *fakeCleaner) CleanupCodes(_ context.Context, reason string) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

func TestGetQueues_RoutesCleanupTask(t *testing.T) {
	cleaner := &fakeCleaner{}
	mux, queues := getQueues(&worker.Workers{CodeCleaner: cleaner})

	assert.Equal(t, map[string]int{task.MaintenanceQueueName: 1}, queues)

	cleanupTask, err := task.NewCleanupCodesTask("schedule")
	require.NoError(t, err)
	assert.Equal(t, task.CleanupCodesTaskName, cleanupTask.Type())

	require.NoError(t, mux.ProcessTask(context.Background(), cleanupTask))
	assert.Equal(t, []string{"schedule"}, cleaner.reasons)
}

func TestGetQueues_PropagatesFailure(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db down")}
	mux, _ := getQueues(&worker.Workers{CodeCleaner: cleaner})

	err := mux.ProcessTask(context.Background(), asynq.NewTask(task.CleanupCodesTaskName, nil))
	assert.ErrorIs(t, err, cleaner.err)
	assert.Equal(t, []string{""}, cleaner.reasons)
}

func TestGetQueues_BadPayload(t *testing.T) {
	cleaner := &fakeCleaner{}
	mux, _ := getQueues(&worker.Workers{CodeCleaner: cleaner})

	err := mux.ProcessTask(context.Background(), asynq.NewTask(task.CleanupCodesTaskName, []byte("{")))
	assert.Error(t, err)
	assert.Empty(t, cleaner.reasons)
}

func TestRedisOptions(t *testing.T) {
	var single config.Cache
	single.Type = cache.RedisTypeSingle
	single.Redis.Address = "localhost:6379"
	single.Redis.Password = "secret"
	assert.Equal(t, asynq.RedisClientOpt{Addr: "localhost:6379", Password: "secret"}, RedisOptions(single))

	var cluster config.Cache
	cluster.Type = cache.RedisTypeCluster
	cluster.RedisCluster.Addresses = []string{"a:7000", "b:7001"}
	assert.Equal(t, asynq.RedisClusterClientOpt{Addrs: []string{"a:7000", "b:7001"}}, RedisOptions(cluster))
}
