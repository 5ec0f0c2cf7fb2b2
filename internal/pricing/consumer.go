package pricing

import (
	"context"
	"fmt"

	"aerovoyage/pkg/kafka"
	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

// BookingEventHandler feeds confirmed bookings from the bookings topic into
// the demand engine. Cancellations are ignored, cancelling a seat does not
// undo the demand signal the booking produced.
type BookingEventHandler struct {
	engine *Engine
	log    *logger.Logger
}

func NewBookingEventHandler(engine *Engine, log *logger.Logger) *BookingEventHandler {
	return &BookingEventHandler{engine: engine, log: log}
}

func (h *BookingEventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.GetEventType() != kafka.EventTypeBookingCreated {
		return nil
	}

	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("decode booking event %s: %w", msg.GetEventID(), err)
	}
	if event.FlightID == "" {
		h.log.Warn("Booking event without flight ID", "event_id", msg.GetEventID())
		return nil
	}

	h.engine.RecordBooking(event.FlightID)
	return nil
}
