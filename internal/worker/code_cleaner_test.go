package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintenance struct {
	deleted int64
	err     error
	calls   int
}

func (f *fakeMaintenance) CleanupVerificationCodes(context.Context) (int64, error) {
	f.calls++
	return f.deleted, f.err
}

func TestCodeCleaner(t *testing.T) {
	m := &fakeMaintenance{deleted: 3}
	require.NoError(t, newCodeCleaner(m).CleanupCodes(context.Background(), "schedule"))
	assert.Equal(t, 1, m.calls)

	m.err = errors.New("db down")
	err := newCodeCleaner(m).CleanupCodes(context.Background(), "schedule")
	assert.ErrorIs(t, err, m.err)
}
