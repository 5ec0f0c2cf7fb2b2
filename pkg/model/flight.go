package model

import (
	"time"
)

// Flight is the catalog record owned by the flights service. Price is in
// currency-agnostic integer units. OriginalPrice and PriceIncreased are
// derived fields produced by the pricing adjuster for API responses only,
// they are never written back to the catalog.
type Flight struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Airline        string    `json:"airline" bson:"airline" validate:"required,min=2,max=60"`
	FlightNumber   string    `json:"flight_number" bson:"flight_number" validate:"required,flight_number"`
	Origin         string    `json:"origin" bson:"origin" validate:"required,iata_code"`
	Destination    string    `json:"destination" bson:"destination" validate:"required,iata_code,nefield=Origin"`
	DepartureTime  time.Time `json:"departure_time" bson:"departure_time" validate:"required"`
	ArrivalTime    time.Time `json:"arrival_time" bson:"arrival_time" validate:"required,gtfield=DepartureTime"`
	Price          int64     `json:"price" bson:"price" validate:"required,min=1"`
	OriginalPrice  int64     `json:"original_price,omitempty" bson:"-"`
	PriceIncreased bool      `json:"price_increased,omitempty" bson:"-"`
	SeatsTotal     int       `json:"seats_total" bson:"seats_total" validate:"required,min=1,max=900"`
	SeatsAvailable int       `json:"seats_available" bson:"seats_available" validate:"min=0,ltefield=SeatsTotal"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=scheduled cancelled"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type FlightUpdate struct {
	Airline        string     `json:"airline,omitempty" validate:"omitempty,min=2,max=60"`
	FlightNumber   string     `json:"flight_number,omitempty" validate:"omitempty,flight_number"`
	Origin         string     `json:"origin,omitempty" validate:"omitempty,iata_code"`
	Destination    string     `json:"destination,omitempty" validate:"omitempty,iata_code"`
	DepartureTime  *time.Time `json:"departure_time,omitempty" validate:"omitempty"`
	ArrivalTime    *time.Time `json:"arrival_time,omitempty" validate:"omitempty"`
	Price          *int64     `json:"price,omitempty" validate:"omitempty,min=1"`
	SeatsTotal     *int       `json:"seats_total,omitempty" validate:"omitempty,min=1,max=900"`
	SeatsAvailable *int       `json:"seats_available,omitempty" validate:"omitempty,min=0"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled cancelled"`
}
