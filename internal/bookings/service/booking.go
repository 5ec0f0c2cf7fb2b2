package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "aerovoyage/internal/bookings/errors"
	"aerovoyage/internal/bookings/repository"
	"aerovoyage/internal/bookings/validator"
	"aerovoyage/internal/pricing"
	walletservice "aerovoyage/internal/wallet/service"
	"aerovoyage/pkg/client"
	"aerovoyage/pkg/config"
	apperrors "aerovoyage/pkg/errors"
	"aerovoyage/pkg/kafka"
	"aerovoyage/pkg/model"
	"aerovoyage/pkg/sanitizer"
)

const (
	// surgeWindow and surgeThreshold drive the commit-time surge check:
	// this many confirmed bookings for the same flight inside the window
	// raise the charged price by the standard markup.
	surgeWindow    = 5 * time.Minute
	surgeThreshold = 3

	eventSource = "bookings-service"
)

// FlightCatalog is the slice of the flights service the booking flow needs.
type FlightCatalog interface {
	GetFlight(ctx context.Context, flightID string) (*model.Flight, error)
}

// EventPublisher emits booking lifecycle events. Publishing is best-effort:
// a broker outage must never fail a committed booking.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	flights   FlightCatalog
	wallet    walletservice.WalletService
	publisher EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	flights FlightCatalog,
	wallet walletservice.WalletService,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		flights:   flights,
		wallet:    wallet,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, b *model.Booking) error {
	s.sanitize(b)

	now := s.now().UTC().Truncate(time.Millisecond)
	b.Reference = uuid.New().String()
	b.Status = model.BookingConfirmed
	b.BookingDate = now

	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"flight_id", b.FlightID,
			"user_id", b.UserID,
			"error", err,
		)
		return apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	flight, err := s.flights.GetFlight(ctx, b.FlightID)
	if err != nil {
		if errors.Is(err, client.ErrFlightNotFound) {
			return apperrors.NotFoundWithID("Flight", b.FlightID)
		}
		s.cfg.Log.Error("Failed to fetch flight for booking",
			"flight_id", b.FlightID,
			"error", err,
		)
		return apperrors.Unavailable("Flights service")
	}

	if flight.Status != "scheduled" {
		return apperrors.Conflict("Flight is not open for booking")
	}
	if flight.DepartureTime.Before(now) {
		return apperrors.Conflict("Flight has already departed")
	}

	priced := pricing.ApplyEscalation(*flight, s.isSurging(ctx, b.FlightID, now))

	b.PricePaid = priced.Price
	b.Surged = priced.PriceIncreased
	if priced.PriceIncreased {
		b.BasePrice = priced.OriginalPrice
	} else {
		b.BasePrice = priced.Price
	}

	total := b.PricePaid * int64(b.Seats)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.DecrementSeats(sessCtx, b.FlightID, b.Seats); err != nil {
			if errors.Is(err, bookingserrors.ErrNoSeats) {
				return apperrors.Conflict("Not enough seats available")
			}
			return apperrors.Internal("Failed to reserve seats", err)
		}
		if err := s.wallet.Debit(sessCtx, b.UserID, total); err != nil {
			return err
		}
		return s.repo.Create(sessCtx, b)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"flight_id", b.FlightID,
			"user_id", b.UserID,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", b.ID,
		"reference", b.Reference,
		"flight_id", b.FlightID,
		"user_id", b.UserID,
		"seats", b.Seats,
		"price_paid", b.PricePaid,
		"surged", b.Surged,
	)

	s.publishEvent(ctx, kafka.EventTypeBookingCreated, b)
	return nil
}

// isSurging runs the commit-time demand check: confirmed bookings for this
// flight inside the window, counted server-side over the
// (flight_id, booking_date) index. A failed count degrades to no surge.
func (s *bookingService) isSurging(ctx context.Context, flightID string, now time.Time) bool {
	count, err := s.repo.CountByFlightSince(ctx, flightID, now.Add(-surgeWindow))
	if err != nil {
		s.cfg.Log.Warn("Surge check failed, charging base price",
			"flight_id", flightID,
			"error", err,
		)
		return false
	}
	return count >= surgeThreshold
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to get booking by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return b, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get bookings by user",
			"user_id", userID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by user",
			"user_id", userID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, count, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to retrieve booking", err)
	}

	refund := b.PricePaid * int64(b.Seats)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.UpdateStatus(sessCtx, id, model.BookingConfirmed, model.BookingCancelled); err != nil {
			if errors.Is(err, bookingserrors.ErrAlreadyCancelled) {
				return apperrors.Conflict("Booking is already cancelled")
			}
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		if err := s.repo.IncrementSeats(sessCtx, b.FlightID, b.Seats); err != nil {
			return apperrors.Internal("Failed to release seats", err)
		}
		return s.wallet.Credit(sessCtx, b.UserID, refund)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking",
			"id", id,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully",
		"id", id,
		"flight_id", b.FlightID,
		"user_id", b.UserID,
		"refund", refund,
	)

	b.Status = model.BookingCancelled
	s.publishEvent(ctx, kafka.EventTypeBookingCancelled, b)
	return nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	if s.publisher == nil {
		return
	}

	event := model.BookingEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		FlightID:    b.FlightID,
		UserID:      b.UserID,
		Seats:       b.Seats,
		BookingDate: b.BookingDate,
	}

	// Keyed by flight ID so per-flight events stay ordered.
	msg, err := kafka.NewEventMessage(b.FlightID, eventType, eventSource, event)
	if err != nil {
		s.cfg.Log.Error("Failed to build booking event",
			"booking_id", b.ID,
			"event_type", eventType,
			"error", err,
		)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"booking_id", b.ID,
			"event_type", eventType,
			"error", err,
		)
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	if len(b.Passengers) == 0 {
		return
	}
	cleaned := make(map[string]string, len(b.Passengers))
	for name, document := range b.Passengers {
		cleaned[sanitizer.SanitizePassengerName(name)] = document
	}
	b.Passengers = cleaned
}
