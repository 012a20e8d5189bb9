package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventmanager/logging"
)

// MongoEventRepo stores events as documents of a MongoDB collection.
type MongoEventRepo struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  *logrus.Entry
}

func NewMongoEventRepository(col *mongo.Collection, timeout time.Duration, logger *logrus.Entry) *MongoEventRepo {
	return &MongoEventRepo{col: col, timeout: timeout, logger: logger}
}

// EnsureIndexes creates the index backing the list order.
func (r *MongoEventRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "startDateAndTime", Value: -1}},
	})
	return errors.Wrap(err, "create events index")
}

func (r *MongoEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDateAndTime", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find events")
	}
	defer cur.Close(ctx)

	var out []Event
	for cur.Next(ctx) {
		var e Event
		if err := cur.Decode(&e); err != nil {
			return nil, errors.Wrap(err, "decode event")
		}
		out = append(out, e)
	}
	return out, errors.Wrap(cur.Err(), "iterate events")
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var e Event
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, errors.Wrapf(err, "find event %s", id)
	}
	return e, nil
}

func (r *MongoEventRepo) Create(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.logger.WithField(logging.FldID, e.ID).Debug("Inserting event document")
	_, err := r.col.InsertOne(ctx, e)
	return errors.Wrap(err, "insert event")
}

func (r *MongoEventRepo) Update(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.WithField(logging.FldID, e.ID).Debug("Updating event document")
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{
		"name":             e.Name,
		"location":         e.Location,
		"startDateAndTime": e.StartDateAndTime,
		"endDateAndTime":   e.EndDateAndTime,
	}})
	if err != nil {
		return errors.Wrapf(err, "update event %s", e.ID)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *MongoEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.WithField(logging.FldID, id).Debug("Deleting event document")
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrapf(err, "delete event %s", id)
}
