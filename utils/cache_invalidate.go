package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	// EventsListKey caches the sorted event list.
	EventsListKey   = "cache:events:list"
	eventItemPrefix = "cache:events:item:"
)

// EventItemKey caches a single event.
func EventItemKey(id string) string {
	return eventItemPrefix + id
}

type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

// PurgeEventsList drops the cached event list.
func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) error {
	return ci.rdb.Del(ctx, EventsListKey).Err()
}

// PurgeEventItem drops the cached copy of one event.
func (ci *CacheInvalidator) PurgeEventItem(ctx context.Context, id string) error {
	return ci.rdb.Del(ctx, EventItemKey(id)).Err()
}
