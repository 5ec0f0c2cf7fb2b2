package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aerovoyage/pkg/config"
)

const (
	CollectionName = "Bookings"
)

// mongoActivityRepository reads raw booking dates for the demand engine.
// The query filters on flight_id only; time filtering and date-shape
// normalization happen in the engine, so legacy documents with string or
// epoch booking dates still count.
type mongoActivityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ActivityRepository interface {
	BookingDatesByFlight(ctx context.Context, flightID string) ([]any, error)
}

func NewMongoActivityRepository(cfg *config.Config) ActivityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoActivityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoActivityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoActivityRepository) BookingDatesByFlight(ctx context.Context, flightID string) ([]any, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"flight_id": flightID}
	opts := options.Find().SetProjection(bson.M{"booking_date": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking activity: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		BookingDate any `bson:"booking_date"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode booking activity: %w", err)
	}

	dates := make([]any, 0, len(docs))
	for _, doc := range docs {
		dates = append(dates, doc.BookingDate)
	}
	return dates, nil
}
