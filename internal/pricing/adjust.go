package pricing

import "aerovoyage/pkg/model"

// escalationPercent is the demand markup applied on top of the catalog price.
const escalationPercent = 10

// ApplyEscalation returns a copy of the flight with the demand markup applied
// when escalate is true, and the flight unchanged otherwise. The markup is
// always computed from the catalog base price: re-applying it to an already
// escalated flight yields the same price, never a compounded one.
// OriginalPrice is set exactly once, the first time the markup lands.
func ApplyEscalation(flight model.Flight, escalate bool) model.Flight {
	if !escalate {
		return flight
	}

	base := flight.Price
	if flight.OriginalPrice != 0 {
		base = flight.OriginalPrice
	} else {
		flight.OriginalPrice = flight.Price
	}

	flight.Price = escalatePrice(base)
	flight.PriceIncreased = true
	return flight
}

// escalatePrice adds escalationPercent to base, rounding half away from zero
// in integer arithmetic.
func escalatePrice(base int64) int64 {
	return (base*(100+escalationPercent) + 50) / 100
}
