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

	bookingserrors "aerovoyage/internal/bookings/errors"
	"aerovoyage/pkg/config"
	mongotx "aerovoyage/pkg/db/mongo"
	"aerovoyage/pkg/model"
)

const (
	CollectionName        = "Bookings"
	FlightsCollectionName = "Flights"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	flights    *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// CountByFlightSince counts confirmed bookings for a flight with a
	// booking_date at or after since. Served by the compound
	// (flight_id, booking_date) index.
	CountByFlightSince(ctx context.Context, flightID string, since time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id string, from string, to string) error
	DecrementSeats(ctx context.Context, flightID string, seats int) error
	IncrementSeats(ctx context.Context, flightID string, seats int) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		flights:    db.Collection(FlightsCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction, SessionContext cannot be wrapped without breaking transaction
// semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "booking_date", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by user: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) CountByFlightSince(ctx context.Context, flightID string, since time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"flight_id":    flightID,
		"status":       model.BookingConfirmed,
		"booking_date": bson.M{"$gte": since},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent bookings: %w", err)
	}
	return count, nil
}

// UpdateStatus flips a booking from one status to another. The expected
// current status lives in the filter so a double cancel cannot refund twice.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from string, to string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return fmt.Errorf("failed to check booking existence: %w", err)
		}
		if count == 0 {
			return bookingserrors.ErrNotFound
		}
		return bookingserrors.ErrAlreadyCancelled
	}

	return nil
}

func (r *mongoBookingRepository) DecrementSeats(ctx context.Context, flightID string, seats int) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(flightID)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, flightID)
	}

	filter := bson.M{
		"_id":             objectID,
		"seats_available": bson.M{"$gte": seats},
	}

	result, err := r.flights.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"seats_available": -seats},
	})
	if err != nil {
		return fmt.Errorf("failed to decrement seats: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNoSeats
	}

	return nil
}

func (r *mongoBookingRepository) IncrementSeats(ctx context.Context, flightID string, seats int) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(flightID)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, flightID)
	}

	_, err = r.flights.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$inc": bson.M{"seats_available": seats},
	})
	if err != nil {
		return fmt.Errorf("failed to increment seats: %w", err)
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
