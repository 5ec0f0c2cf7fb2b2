package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	flightserrors "aerovoyage/internal/flights/errors"
	"aerovoyage/pkg/config"
	"aerovoyage/pkg/model"
)

const (
	CollectionName = "Flights"
)

type mongoFlightRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type FlightRepository interface {
	Create(ctx context.Context, flight *model.Flight) error
	FindByID(ctx context.Context, id string) (*model.Flight, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, origin string, destination string, date *time.Time, limit int, offset int64) ([]*model.Flight, error)
	CountSearch(ctx context.Context, origin string, destination string, date *time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

func NewMongoFlightRepository(cfg *config.Config) FlightRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoFlightRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction, SessionContext cannot be wrapped without breaking transaction
// semantics.
func (r *mongoFlightRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoFlightRepository) Create(ctx context.Context, flight *model.Flight) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	flight.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, flight)
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		flight.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFlightRepository) FindByID(ctx context.Context, id string) (*model.Flight, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", flightserrors.ErrInvalidID, id)
	}

	var flight model.Flight
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&flight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, flightserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find flight: %w", err)
	}

	return &flight, nil
}

func (r *mongoFlightRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "departure_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find flights: %w", err)
	}
	defer cursor.Close(ctx)

	var flights []*model.Flight
	if err = cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode flights: %w", err)
	}

	return flights, nil
}

func (r *mongoFlightRepository) Update(ctx context.Context, id string, updates bson.M) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", flightserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update flight: %w", err)
	}

	if result.MatchedCount == 0 {
		return flightserrors.ErrNotFound
	}

	return nil
}

func (r *mongoFlightRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", flightserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	if result.DeletedCount == 0 {
		return flightserrors.ErrNotFound
	}

	return nil
}

func (r *mongoFlightRepository) Search(
	ctx context.Context,
	origin string,
	destination string,
	date *time.Time,
	limit int, offset int64,
) ([]*model.Flight, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := buildSearchFilter(origin, destination, date)

	opts := options.Find().
		SetSort(bson.D{{Key: "departure_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}
	defer cursor.Close(ctx)

	var flights []*model.Flight
	if err = cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode flights: %w", err)
	}

	return flights, nil
}

func (r *mongoFlightRepository) CountSearch(ctx context.Context, origin string, destination string, date *time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildSearchFilter(origin, destination, date))
	if err != nil {
		return 0, fmt.Errorf("failed to count flights by search: %w", err)
	}
	return count, nil
}

// buildSearchFilter matches the (origin, destination, departure_time) index:
// two equality legs plus an optional day-long range on departure_time.
func buildSearchFilter(origin string, destination string, date *time.Time) bson.M {
	filter := bson.M{
		"origin":      origin,
		"destination": destination,
		"status":      "scheduled",
	}

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		filter["departure_time"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}
	}

	return filter
}

func (r *mongoFlightRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count flights: %w", err)
	}

	return count, nil
}
