package models

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/db"
	"eventmanager/logging"
)

func newSQLiteRepo(t *testing.T) *SQLEventRepo {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "events.db") + "?_time_format=sqlite"
	conn, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.CreateTables(context.Background(), conn))
	return NewSQLEventRepository(conn, 5*time.Second, logging.Discard())
}

func at(hour int) time.Time {
	return time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC)
}

func TestSQLEventRepoCRUD(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	e := Event{Name: "Launch", Location: "HQ", StartDateAndTime: at(10), EndDateAndTime: at(12)}
	require.NoError(t, repo.Create(ctx, &e))
	require.NotEmpty(t, e.ID)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
	assert.Equal(t, "HQ", got.Location)
	assert.WithinDuration(t, at(10), got.StartDateAndTime, 0)
	assert.WithinDuration(t, at(12), got.EndDateAndTime, 0)

	got.Name = "Relaunch"
	require.NoError(t, repo.Update(ctx, &got))
	got, err = repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", got.Name)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	require.NoError(t, repo.Delete(ctx, e.ID))
}

func TestSQLEventRepoOrdersByStartDescending(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, h := range []int{9, 15, 11} {
		e := Event{Name: "e", Location: "l", StartDateAndTime: at(h), EndDateAndTime: at(h + 1)}
		require.NoError(t, repo.Create(ctx, &e))
	}
	// a non-UTC start is normalised before it is stored
	local := Event{Name: "e", Location: "l",
		StartDateAndTime: at(13).In(time.FixedZone("X", 5*3600)), EndDateAndTime: at(14)}
	require.NoError(t, repo.Create(ctx, &local))

	events, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i, h := range []int{15, 13, 11, 9} {
		assert.WithinDuration(t, at(h), events[i].StartDateAndTime, 0)
	}
}

func TestSQLEventRepoUpdateUnknown(t *testing.T) {
	repo := newSQLiteRepo(t)
	err := repo.Update(context.Background(), &Event{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}
