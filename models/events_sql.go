package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"eventmanager/logging"
)

const eventFields = `name, location, start_date_and_time, end_date_and_time`

// SQLEventRepo stores events in the events table of a SQLite or PostgreSQL
// database. Timestamps are written in UTC so that they sort as stored.
type SQLEventRepo struct {
	db      *sqlx.DB
	timeout time.Duration
	logger  *logrus.Entry
}

func NewSQLEventRepository(db *sqlx.DB, timeout time.Duration, logger *logrus.Entry) *SQLEventRepo {
	return &SQLEventRepo{db: db, timeout: timeout, logger: logger}
}

func (r *SQLEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out []Event
	query := `SELECT id, ` + eventFields + ` FROM events ORDER BY start_date_and_time DESC`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, errors.Wrap(err, "select events")
	}
	return out, nil
}

func (r *SQLEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var e Event
	query := r.db.Rebind(`SELECT id, ` + eventFields + ` FROM events WHERE id = ?`)
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, errors.Wrapf(err, "select event %s", id)
	}
	return e, nil
}

func (r *SQLEventRepo) Create(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.logger.WithField(logging.FldID, e.ID).Debug("Inserting event row")
	query := r.db.Rebind(`INSERT INTO events(id, ` + eventFields + `) VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Location, e.StartDateAndTime.UTC(), e.EndDateAndTime.UTC())
	return errors.Wrap(err, "insert event")
}

func (r *SQLEventRepo) Update(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.WithField(logging.FldID, e.ID).Debug("Updating event row")
	query := r.db.Rebind(`UPDATE events SET name = ?, location = ?, start_date_and_time = ?, end_date_and_time = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.Location, e.StartDateAndTime.UTC(), e.EndDateAndTime.UTC(), e.ID)
	if err != nil {
		return errors.Wrapf(err, "update event %s", e.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *SQLEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.WithField(logging.FldID, id).Debug("Deleting event row")
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM events WHERE id = ?`), id)
	return errors.Wrapf(err, "delete event %s", id)
}
