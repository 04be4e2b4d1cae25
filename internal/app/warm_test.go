package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/domain"
)

func TestWarmAll_CountsSuccessesAndFailures(t *testing.T) {
	repo := seededRepo()
	repo.getErr = map[int64]error{2: domain.StorageErr("get hotel", errBoom)}
	cache := &fakeCache{}
	detail := app.NewDetailService(repo, nil, cache, time.Minute)
	warm := app.NewWarmService(repo, detail)

	stats, err := warm.WarmAll(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, app.WarmStats{Total: 3, Warmed: 2, Failed: 1}, stats)
	assert.Equal(t, 2, cache.sets)
}

func TestWarmAll_CancelledContext(t *testing.T) {
	repo := seededRepo()
	detail := app.NewDetailService(repo, nil, &fakeCache{}, time.Minute)
	warm := app.NewWarmService(repo, detail)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := warm.WarmAll(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
