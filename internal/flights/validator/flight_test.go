package validator

import (
	"io"
	"testing"
	"time"

	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

func testValidator() *FlightValidator {
	return NewFlightValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	}))
}

func validFlight() *model.Flight {
	departure := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	return &model.Flight{
		Airline:        "British Airways",
		FlightNumber:   "BA123",
		Origin:         "JFK",
		Destination:    "LHR",
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(7 * time.Hour),
		Price:          450,
		SeatsTotal:     180,
		SeatsAvailable: 180,
		Status:         "scheduled",
	}
}

func TestValidate_ValidFlight(t *testing.T) {
	v := testValidator()

	if err := v.Validate(validFlight()); err != nil {
		t.Errorf("expected valid flight, got %v", err)
	}
}

func TestValidate_InvalidFlights(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name   string
		mutate func(f *model.Flight)
	}{
		{"missing airline", func(f *model.Flight) { f.Airline = "" }},
		{"bad flight number", func(f *model.Flight) { f.FlightNumber = "1234" }},
		{"lowercase flight number", func(f *model.Flight) { f.FlightNumber = "ba123" }},
		{"bad origin code", func(f *model.Flight) { f.Origin = "NEWYORK" }},
		{"same origin and destination", func(f *model.Flight) { f.Destination = f.Origin }},
		{"arrival before departure", func(f *model.Flight) { f.ArrivalTime = f.DepartureTime.Add(-time.Hour) }},
		{"zero price", func(f *model.Flight) { f.Price = 0 }},
		{"negative price", func(f *model.Flight) { f.Price = -10 }},
		{"more seats available than total", func(f *model.Flight) { f.SeatsAvailable = f.SeatsTotal + 1 }},
		{"unknown status", func(f *model.Flight) { f.Status = "boarding" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFlight()
			tt.mutate(f)
			if err := v.Validate(f); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	v := testValidator()

	price := int64(300)
	if err := v.ValidateUpdate(&model.FlightUpdate{Price: &price}); err != nil {
		t.Errorf("expected partial update to pass, got %v", err)
	}

	if err := v.ValidateUpdate(&model.FlightUpdate{Origin: "newark"}); err == nil {
		t.Error("expected invalid IATA code to fail")
	}
}
