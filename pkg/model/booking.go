package model

import (
	"time"
)

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a completed purchase. BasePrice is the canonical
// un-escalated per-seat price at booking time; PricePaid is the per-seat
// price actually charged (equal to BasePrice unless Surged is set).
type Booking struct {
	ID          string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Reference   string            `json:"reference" bson:"reference" validate:"omitempty,uuid4"`
	UserID      string            `json:"user_id" bson:"user_id" validate:"required,min=1,max=128"`
	FlightID    string            `json:"flight_id" bson:"flight_id" validate:"required,mongodb"`
	Passengers  map[string]string `json:"passengers" bson:"passengers" validate:"required,passengers_map"`
	Seats       int               `json:"seats" bson:"seats" validate:"required,min=1,max=9"`
	BasePrice   int64             `json:"base_price" bson:"base_price" validate:"omitempty,min=1"`
	PricePaid   int64             `json:"price_paid" bson:"price_paid" validate:"omitempty,min=1"`
	Surged      bool              `json:"surged" bson:"surged"`
	Status      string            `json:"status" bson:"status" validate:"omitempty,oneof=confirmed cancelled"`
	BookingDate time.Time         `json:"booking_date" bson:"booking_date" validate:"omitempty"`
}
