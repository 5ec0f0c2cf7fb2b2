package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	flightserrors "aerovoyage/internal/flights/errors"
	flightsvalidator "aerovoyage/internal/flights/validator"
	"aerovoyage/pkg/config"
	apperrors "aerovoyage/pkg/errors"
	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

type mockFlightRepository struct {
	createFunc      func(ctx context.Context, flight *model.Flight) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Flight, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.Flight, error)
	updateFunc      func(ctx context.Context, id string, updates bson.M) error
	deleteFunc      func(ctx context.Context, id string) error
	searchFunc      func(ctx context.Context, origin string, destination string, date *time.Time, limit int, offset int64) ([]*model.Flight, error)
	countSearchFunc func(ctx context.Context, origin string, destination string, date *time.Time) (int64, error)
	countFunc       func(ctx context.Context) (int64, error)
}

func (m *mockFlightRepository) Create(ctx context.Context, flight *model.Flight) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, flight)
	}
	return nil
}

func (m *mockFlightRepository) FindByID(ctx context.Context, id string) (*model.Flight, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, flightserrors.ErrNotFound
}

func (m *mockFlightRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Flight, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Flight{}, nil
}

func (m *mockFlightRepository) Update(ctx context.Context, id string, updates bson.M) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockFlightRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockFlightRepository) Search(ctx context.Context, origin string, destination string, date *time.Time, limit int, offset int64) ([]*model.Flight, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, origin, destination, date, limit, offset)
	}
	return []*model.Flight{}, nil
}

func (m *mockFlightRepository) CountSearch(ctx context.Context, origin string, destination string, date *time.Time) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, origin, destination, date)
	}
	return 0, nil
}

func (m *mockFlightRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type stubEngine struct {
	recorded  []string
	escalated map[string]bool
}

func (s *stubEngine) RecordSearch(flightID string) {
	s.recorded = append(s.recorded, flightID)
}

func (s *stubEngine) ShouldEscalate(ctx context.Context, flightID string) bool {
	return s.escalated[flightID]
}

func newTestService(repo *mockFlightRepository, engine *stubEngine) FlightService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
	return NewFlightService(repo, flightsvalidator.NewFlightValidator(log), engine, cfg)
}

func TestSearch_RecordsAndEscalates(t *testing.T) {
	repo := &mockFlightRepository{
		searchFunc: func(ctx context.Context, origin, destination string, date *time.Time, limit int, offset int64) ([]*model.Flight, error) {
			return []*model.Flight{
				{ID: "hot", Origin: origin, Destination: destination, Price: 100},
				{ID: "cold", Origin: origin, Destination: destination, Price: 200},
			}, nil
		},
		countSearchFunc: func(ctx context.Context, origin, destination string, date *time.Time) (int64, error) {
			return 2, nil
		},
	}
	engine := &stubEngine{escalated: map[string]bool{"hot": true}}
	svc := newTestService(repo, engine)

	flights, count, err := svc.Search(context.Background(), "jfk", "lhr", nil, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(flights) != 2 {
		t.Fatalf("expected 2 results, got %d (count %d)", len(flights), count)
	}

	if len(engine.recorded) != 2 || engine.recorded[0] != "hot" || engine.recorded[1] != "cold" {
		t.Errorf("expected every result to record a search, got %v", engine.recorded)
	}

	if flights[0].Price != 110 || !flights[0].PriceIncreased || flights[0].OriginalPrice != 100 {
		t.Errorf("expected escalated flight priced 110 over 100, got %+v", flights[0])
	}
	if flights[1].Price != 200 || flights[1].PriceIncreased {
		t.Errorf("expected quiet flight untouched, got %+v", flights[1])
	}
}

func TestSearch_InvalidRoute(t *testing.T) {
	svc := newTestService(&mockFlightRepository{}, &stubEngine{})

	if _, _, err := svc.Search(context.Background(), "JFK", "JFK", nil, 10, 0); err == nil {
		t.Error("expected error for identical origin and destination")
	}
	if _, _, err := svc.Search(context.Background(), "", "LHR", nil, 10, 0); err == nil {
		t.Error("expected error for empty origin")
	}
}

func TestGetByID_AdjustsWithoutRecording(t *testing.T) {
	repo := &mockFlightRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Flight, error) {
			return &model.Flight{ID: id, Price: 100}, nil
		},
	}
	engine := &stubEngine{escalated: map[string]bool{"f1": true}}
	svc := newTestService(repo, engine)

	f, err := svc.GetByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Price != 110 || !f.PriceIncreased {
		t.Errorf("expected escalated price 110, got %+v", f)
	}
	if len(engine.recorded) != 0 {
		t.Errorf("reading a flight must not count as demand, recorded %v", engine.recorded)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockFlightRepository{}, &stubEngine{})

	_, err := svc.GetByID(context.Background(), "missing")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCreate_ValidationAndDefaults(t *testing.T) {
	var created *model.Flight
	repo := &mockFlightRepository{
		createFunc: func(ctx context.Context, flight *model.Flight) error {
			created = flight
			return nil
		},
	}
	svc := newTestService(repo, &stubEngine{})

	departure := time.Now().Add(24 * time.Hour).UTC()
	flight := &model.Flight{
		Airline:       "British Airways",
		FlightNumber:  " ba 123 ",
		Origin:        "jfk",
		Destination:   "lhr",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(7 * time.Hour),
		Price:         450,
		SeatsTotal:    180,
	}
	if err := svc.Create(context.Background(), flight); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.FlightNumber != "BA123" || created.Origin != "JFK" || created.Destination != "LHR" {
		t.Errorf("expected sanitized fields, got %+v", created)
	}
	if created.SeatsAvailable != 180 || created.Status != "scheduled" {
		t.Errorf("expected defaults applied, got %+v", created)
	}
}

func TestCreate_RejectsInvalidFlight(t *testing.T) {
	svc := newTestService(&mockFlightRepository{}, &stubEngine{})

	err := svc.Create(context.Background(), &model.Flight{
		Airline:      "BA",
		FlightNumber: "123",
		Origin:       "JFK",
		Destination:  "JFK",
		Price:        100,
		SeatsTotal:   10,
	})

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
