package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJobStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	require.NoError(t, store.Save(ctx, newTestJob("job-1", time.Now())))

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", got.ID)
	assert.Equal(t, "weekly", got.Project)
	assert.Equal(t, "pending", got.Status)
}

func TestMemoryJobStore_GetMissing(t *testing.T) {
	store := NewMemoryJobStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMemoryJobStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	job := newTestJob("job-1", time.Now())
	require.NoError(t, store.Save(ctx, job))

	// Mutating the caller's copy must not change the stored record.
	job.Status = "failed"

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	// Same for a record handed out by Get.
	got.Status = "failed"

	again, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", again.Status)
}

func TestMemoryJobStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	base := time.Now()
	require.NoError(t, store.Save(ctx, newTestJob("job-old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, newTestJob("job-new", base)))
	require.NoError(t, store.Save(ctx, newTestJob("job-mid", base.Add(-time.Hour))))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "job-new", jobs[0].ID)
	assert.Equal(t, "job-mid", jobs[1].ID)
	assert.Equal(t, "job-old", jobs[2].ID)
}

func TestMemoryJobStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	require.NoError(t, store.Save(ctx, newTestJob("job-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "job-1"))

	_, err := store.Get(ctx, "job-1")
	assert.ErrorIs(t, err, ErrJobNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "job-1"), ErrJobNotFound)
}
