package service

import (
	"context"
	"testing"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenance_CleanupVerificationCodes(t *testing.T) {
	f := newFixture(t, nil)
	now := f.clock.Now()

	f.codes.codes = []domain.VerificationCode{
		{Identifier: "old", ExpiresAt: now.Add(-48 * time.Hour)},
		{Identifier: "recently-expired", ExpiresAt: now.Add(-time.Hour)},
		{Identifier: "active", ExpiresAt: now.Add(5 * time.Minute)},
	}

	deleted, err := f.services.Maintenance.CleanupVerificationCodes(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.Equal(t, 2, f.codes.count())
}
