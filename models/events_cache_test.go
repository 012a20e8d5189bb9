package models_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/logging"
	"eventmanager/models"
	"eventmanager/models/mocks"
	"eventmanager/utils"
)

func newCachedRepo(t *testing.T) (models.EventRepository, *mocks.MockEventRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	inner := mocks.NewMockEventRepo()
	return models.NewCachedEventRepository(inner, rdb, 30*time.Second, logging.Discard()), inner, mr
}

func TestCachedRepoListHitThenInvalidatedByCreate(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	// empty lists are cached too
	events, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.True(t, mr.Exists(utils.EventsListKey))

	_, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Reads, "second read must come from redis")

	e := models.Event{Name: "Launch", Location: "HQ",
		StartDateAndTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndDateAndTime:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, &e))
	assert.False(t, mr.Exists(utils.EventsListKey))

	events, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
	assert.True(t, e.StartDateAndTime.Equal(events[0].StartDateAndTime))
	assert.Equal(t, 2, inner.Reads)
}

func TestCachedRepoItemInvalidatedByUpdateAndDelete(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	e := models.Event{Name: "Launch", Location: "HQ"}
	require.NoError(t, repo.Create(ctx, &e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
	assert.True(t, mr.Exists(utils.EventItemKey(e.ID)))

	got.Name = "Relaunch"
	require.NoError(t, repo.Update(ctx, &got))
	assert.False(t, mr.Exists(utils.EventItemKey(e.ID)))

	got, err = repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", got.Name)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
	assert.False(t, mr.Exists(utils.EventItemKey(e.ID)), "misses are not cached")
	assert.Zero(t, inner.Len())
}

func TestCachedRepoFallsBackWhenRedisIsDown(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()
	mr.Close()

	e := models.Event{Name: "Launch", Location: "HQ"}
	require.NoError(t, repo.Create(ctx, &e))

	events, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, inner.Reads)
}

func TestCachedRepoPassesStoreErrors(t *testing.T) {
	repo, inner, _ := newCachedRepo(t)
	inner.Err = errors.New("store down")

	_, err := repo.GetAll(context.Background())
	assert.EqualError(t, err, "store down")
}
