package models

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"eventmanager/logging"
	"eventmanager/utils"
)

// cachedEvents wraps the list so that an empty result still encodes.
type cachedEvents struct {
	Events []Event
}

// cachedEventRepo is a Redis read-through cache in front of another
// repository. Redis failures fall back to the wrapped repository.
type cachedEventRepo struct {
	next   EventRepository
	rdb    *redis.Client
	inv    *utils.CacheInvalidator
	ttl    time.Duration
	logger *logrus.Entry
}

func NewCachedEventRepository(next EventRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Entry) EventRepository {
	return &cachedEventRepo{
		next:   next,
		rdb:    rdb,
		inv:    utils.NewCacheInvalidator(rdb),
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	var hit cachedEvents
	if r.load(ctx, utils.EventsListKey, &hit) {
		return hit.Events, nil
	}
	events, err := r.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, utils.EventsListKey, cachedEvents{Events: events})
	return events, nil
}

func (r *cachedEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	key := utils.EventItemKey(id)
	var hit Event
	if r.load(ctx, key, &hit) {
		return hit, nil
	}
	e, err := r.next.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	r.store(ctx, key, e)
	return e, nil
}

func (r *cachedEventRepo) Create(ctx context.Context, e *Event) error {
	if err := r.next.Create(ctx, e); err != nil {
		return err
	}
	r.purge(ctx, e.ID)
	return nil
}

func (r *cachedEventRepo) Update(ctx context.Context, e *Event) error {
	if err := r.next.Update(ctx, e); err != nil {
		return err
	}
	r.purge(ctx, e.ID)
	return nil
}

func (r *cachedEventRepo) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.purge(ctx, id)
	return nil
}

func (r *cachedEventRepo) load(ctx context.Context, key string, v any) bool {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.WithError(err).WithField(logging.FldKey, key).Warn("Cache read failed")
		}
		return false
	}
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(v); err != nil {
		r.logger.WithError(err).WithField(logging.FldKey, key).Warn("Dropping undecodable cache entry")
		return false
	}
	r.logger.WithField(logging.FldKey, key).Debug("Cache hit")
	return true
}

func (r *cachedEventRepo) store(ctx context.Context, key string, v any) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		r.logger.WithError(err).WithField(logging.FldKey, key).Warn("Cache encode failed")
		return
	}
	if err := r.rdb.Set(ctx, key, buf.Bytes(), r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField(logging.FldKey, key).Warn("Cache write failed")
	}
}

// purge runs after every successful write. The list always changes, so it
// is dropped together with the item.
func (r *cachedEventRepo) purge(ctx context.Context, id string) {
	if err := r.inv.PurgeEventsList(ctx); err != nil {
		r.logger.WithError(err).Warn("Purging cached event list failed")
	}
	if err := r.inv.PurgeEventItem(ctx, id); err != nil {
		r.logger.WithError(err).WithField(logging.FldID, id).Warn("Purging cached event failed")
	}
}
