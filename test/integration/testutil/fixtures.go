package testutil

import (
	"time"

	"aerovoyage/pkg/model"
)

type FlightBuilder struct {
	f model.Flight
}

func NewFlightBuilder() *FlightBuilder {
	departure := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	return &FlightBuilder{
		f: model.Flight{
			Airline:        "AeroVoyage",
			FlightNumber:   "AV123",
			Origin:         "JFK",
			Destination:    "LAX",
			DepartureTime:  departure,
			ArrivalTime:    departure.Add(6 * time.Hour),
			Price:          100,
			SeatsTotal:     180,
			SeatsAvailable: 180,
			Status:         "scheduled",
		},
	}
}

func (b *FlightBuilder) WithFlightNumber(number string) *FlightBuilder {
	b.f.FlightNumber = number
	return b
}

func (b *FlightBuilder) WithRoute(origin, destination string) *FlightBuilder {
	b.f.Origin = origin
	b.f.Destination = destination
	return b
}

func (b *FlightBuilder) WithPrice(price int64) *FlightBuilder {
	b.f.Price = price
	return b
}

func (b *FlightBuilder) WithSeats(total int) *FlightBuilder {
	b.f.SeatsTotal = total
	b.f.SeatsAvailable = total
	return b
}

func (b *FlightBuilder) WithDeparture(departure time.Time) *FlightBuilder {
	b.f.DepartureTime = departure
	b.f.ArrivalTime = departure.Add(6 * time.Hour)
	return b
}

func (b *FlightBuilder) WithStatus(status string) *FlightBuilder {
	b.f.Status = status
	return b
}

func (b *FlightBuilder) Build() model.Flight {
	return b.f
}

func ValidFlight() model.Flight {
	return NewFlightBuilder().Build()
}

func EmptyFlight() model.Flight {
	return model.Flight{}
}

func InvalidRouteFlight() model.Flight {
	return NewFlightBuilder().WithRoute("JFK", "JFK").Build()
}

type BookingBuilder struct {
	b model.Booking
}

func NewBookingBuilder(flightID string) *BookingBuilder {
	return &BookingBuilder{
		b: model.Booking{
			UserID:   "user-1",
			FlightID: flightID,
			Passengers: map[string]string{
				"Ada Lovelace": "P1234567",
			},
			Seats: 1,
		},
	}
}

func (b *BookingBuilder) WithUser(userID string) *BookingBuilder {
	b.b.UserID = userID
	return b
}

func (b *BookingBuilder) WithPassengers(passengers map[string]string) *BookingBuilder {
	b.b.Passengers = passengers
	b.b.Seats = len(passengers)
	return b
}

func (b *BookingBuilder) Build() model.Booking {
	return b.b
}

func ValidBooking(flightID string) model.Booking {
	return NewBookingBuilder(flightID).Build()
}
