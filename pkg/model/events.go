package model

import "time"

// BookingEvent is the payload published on the bookings topic whenever a
// booking is confirmed or cancelled. The flights service feeds confirmed
// events into the demand tracker.
type BookingEvent struct {
	BookingID   string    `json:"booking_id"`
	Reference   string    `json:"reference"`
	FlightID    string    `json:"flight_id"`
	UserID      string    `json:"user_id"`
	Seats       int       `json:"seats"`
	BookingDate time.Time `json:"booking_date"`
}
