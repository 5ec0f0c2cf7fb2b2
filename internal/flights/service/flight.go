package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	flightserrors "aerovoyage/internal/flights/errors"
	"aerovoyage/internal/flights/repository"
	"aerovoyage/internal/flights/validator"
	"aerovoyage/internal/pricing"
	"aerovoyage/pkg/config"
	apperrors "aerovoyage/pkg/errors"
	"aerovoyage/pkg/model"
	"aerovoyage/pkg/sanitizer"
)

// DemandEngine is the slice of the pricing engine the flight service needs:
// search impressions feed it, reads ask it whether to escalate.
type DemandEngine interface {
	RecordSearch(flightID string)
	ShouldEscalate(ctx context.Context, flightID string) bool
}

type FlightService interface {
	Create(ctx context.Context, f *model.Flight) error
	GetByID(ctx context.Context, id string) (*model.Flight, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, int64, error)
	Update(ctx context.Context, id string, updates *model.FlightUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, origin string, destination string, date *time.Time, limit int, offset int64) ([]*model.Flight, int64, error)
}

type flightService struct {
	repo      repository.FlightRepository
	validator *validator.FlightValidator
	engine    DemandEngine
	cfg       *config.Config
}

func NewFlightService(
	repo repository.FlightRepository,
	validator *validator.FlightValidator,
	engine DemandEngine,
	cfg *config.Config,
) FlightService {
	return &flightService{
		repo:      repo,
		validator: validator,
		engine:    engine,
		cfg:       cfg,
	}
}

func (s *flightService) Create(ctx context.Context, f *model.Flight) error {
	s.sanitize(f)

	if err := s.validator.Validate(f); err != nil {
		s.cfg.Log.Warn("Flight validation failed",
			"flight_number", f.FlightNumber,
			"error", err,
		)
		return apperrors.Validation("Flight validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if f.SeatsAvailable == 0 {
		f.SeatsAvailable = f.SeatsTotal
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.cfg.Log.Error("Failed to create flight",
			"flight_number", f.FlightNumber,
			"error", err,
		)
		return apperrors.Internal("Failed to create flight", err)
	}

	s.cfg.Log.Info("Flight created successfully",
		"id", f.ID,
		"flight_number", f.FlightNumber,
		"origin", f.Origin,
		"destination", f.Destination,
	)
	return nil
}

// GetByID returns one flight with current demand pricing applied. Reading a
// flight does not count as demand, only search impressions and bookings do.
func (s *flightService) GetByID(ctx context.Context, id string) (*model.Flight, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Flight ID cannot be empty")
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, flightserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Flight", id)
		}
		if errors.Is(err, flightserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid flight ID format")
		}
		s.cfg.Log.Error("Failed to get flight by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve flight", err)
	}

	priced := pricing.ApplyEscalation(*f, s.engine.ShouldEscalate(ctx, f.ID))
	return &priced, nil
}

func (s *flightService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var flights []*model.Flight
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count flights", "error", err)
			errCount = apperrors.Internal("Failed to count flights", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		flights, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all flights",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve flights", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return flights, count, nil
}

func (s *flightService) Update(ctx context.Context, id string, updates *model.FlightUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Flight ID cannot be empty")
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Flight update validation failed",
			"id", id,
			"error", err,
		)
		return apperrors.Validation("Flight validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	set := buildUpdateDocument(updates)
	if len(set) == 0 {
		return apperrors.InvalidInput("No fields to update")
	}

	if err := s.repo.Update(ctx, id, set); err != nil {
		if errors.Is(err, flightserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Flight", id)
		}
		if errors.Is(err, flightserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid flight ID format")
		}
		s.cfg.Log.Error("Failed to update flight",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update flight", err)
	}

	s.cfg.Log.Info("Flight updated successfully", "id", id)
	return nil
}

func (s *flightService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Flight ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, flightserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Flight", id)
		}
		if errors.Is(err, flightserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid flight ID format")
		}
		s.cfg.Log.Error("Failed to delete flight",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete flight", err)
	}

	s.cfg.Log.Info("Flight deleted successfully", "id", id)
	return nil
}

// Search lists scheduled flights on a route. Every returned flight counts as
// one search impression for the demand engine, and prices come back with the
// escalation markup applied where demand warrants it.
func (s *flightService) Search(
	ctx context.Context,
	origin string,
	destination string,
	date *time.Time,
	limit int, offset int64,
) ([]*model.Flight, int64, error) {
	origin = sanitizer.SanitizeIATACode(origin)
	destination = sanitizer.SanitizeIATACode(destination)
	if origin == "" || destination == "" {
		return nil, 0, apperrors.InvalidInput("Both origin and destination are required")
	}
	if origin == destination {
		return nil, 0, apperrors.InvalidInput("Origin and destination must differ")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	flights, err := s.repo.Search(ctx, origin, destination, date, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to search flights",
			"origin", origin,
			"destination", destination,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to search flights", err)
	}

	count, err := s.repo.CountSearch(ctx, origin, destination, date)
	if err != nil {
		s.cfg.Log.Error("Failed to count flight search results",
			"origin", origin,
			"destination", destination,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to search flights", err)
	}

	priced := make([]*model.Flight, 0, len(flights))
	for _, f := range flights {
		s.engine.RecordSearch(f.ID)
		adjusted := pricing.ApplyEscalation(*f, s.engine.ShouldEscalate(ctx, f.ID))
		priced = append(priced, &adjusted)
	}

	s.cfg.Log.Debug("Flight search completed",
		"origin", origin,
		"destination", destination,
		"results_count", len(priced),
	)

	return priced, count, nil
}

func (s *flightService) sanitize(f *model.Flight) {
	f.Airline = sanitizer.SanitizeAirlineName(f.Airline)
	f.FlightNumber = sanitizer.SanitizeFlightNumber(f.FlightNumber)
	f.Origin = sanitizer.SanitizeIATACode(f.Origin)
	f.Destination = sanitizer.SanitizeIATACode(f.Destination)
	if f.Status == "" {
		f.Status = "scheduled"
	}
}

func (s *flightService) sanitizeUpdate(updates *model.FlightUpdate) {
	if updates.Airline != "" {
		updates.Airline = sanitizer.SanitizeAirlineName(updates.Airline)
	}
	if updates.FlightNumber != "" {
		updates.FlightNumber = sanitizer.SanitizeFlightNumber(updates.FlightNumber)
	}
	if updates.Origin != "" {
		updates.Origin = sanitizer.SanitizeIATACode(updates.Origin)
	}
	if updates.Destination != "" {
		updates.Destination = sanitizer.SanitizeIATACode(updates.Destination)
	}
}

func buildUpdateDocument(updates *model.FlightUpdate) bson.M {
	set := bson.M{}
	if updates.Airline != "" {
		set["airline"] = updates.Airline
	}
	if updates.FlightNumber != "" {
		set["flight_number"] = updates.FlightNumber
	}
	if updates.Origin != "" {
		set["origin"] = updates.Origin
	}
	if updates.Destination != "" {
		set["destination"] = updates.Destination
	}
	if updates.DepartureTime != nil {
		set["departure_time"] = *updates.DepartureTime
	}
	if updates.ArrivalTime != nil {
		set["arrival_time"] = *updates.ArrivalTime
	}
	if updates.Price != nil {
		set["price"] = *updates.Price
	}
	if updates.SeatsTotal != nil {
		set["seats_total"] = *updates.SeatsTotal
	}
	if updates.SeatsAvailable != nil {
		set["seats_available"] = *updates.SeatsAvailable
	}
	if updates.Status != "" {
		set["status"] = updates.Status
	}
	return set
}
