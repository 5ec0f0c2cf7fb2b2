package pricing

import (
	"context"
	"testing"
	"time"

	"aerovoyage/pkg/kafka"
	"aerovoyage/pkg/kv"
	"aerovoyage/pkg/model"
)

func TestBookingEventHandler_Handle(t *testing.T) {
	engine, _ := newTestEngine(&stubActivitySource{}, kv.NewMemoryStore())
	handler := NewBookingEventHandler(engine, testLogger())

	event := model.BookingEvent{
		BookingID:   "b1",
		FlightID:    "f1",
		UserID:      "u1",
		Seats:       2,
		BookingDate: time.Now().UTC(),
	}
	msg, err := kafka.NewEventMessage(event.FlightID, kafka.EventTypeBookingCreated, "bookings-service", event)
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if err := handler.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine.mu.Lock()
	entry := engine.activity["f1"]
	engine.mu.Unlock()
	if entry == nil || len(entry.Bookings) != 1 {
		t.Error("expected booking recorded for f1")
	}
}

func TestBookingEventHandler_IgnoresCancellations(t *testing.T) {
	engine, _ := newTestEngine(&stubActivitySource{}, kv.NewMemoryStore())
	handler := NewBookingEventHandler(engine, testLogger())

	msg, err := kafka.NewEventMessage("f1", kafka.EventTypeBookingCancelled, "bookings-service", model.BookingEvent{FlightID: "f1"})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if err := handler.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if len(engine.activity) != 0 {
		t.Error("cancellations must not feed demand")
	}
}

func TestBookingEventHandler_BadPayload(t *testing.T) {
	engine, _ := newTestEngine(&stubActivitySource{}, kv.NewMemoryStore())
	handler := NewBookingEventHandler(engine, testLogger())

	msg := kafka.Message{
		Key:     "f1",
		Value:   []byte("{not json"),
		Headers: map[string]string{kafka.HeaderEventType: kafka.EventTypeBookingCreated},
	}

	if err := handler.Handle(context.Background(), msg); err == nil {
		t.Error("expected decode error for malformed payload")
	}
}

func TestBookingEventHandler_MissingFlightID(t *testing.T) {
	engine, _ := newTestEngine(&stubActivitySource{}, kv.NewMemoryStore())
	handler := NewBookingEventHandler(engine, testLogger())

	msg, err := kafka.NewEventMessage("b1", kafka.EventTypeBookingCreated, "bookings-service", model.BookingEvent{BookingID: "b1"})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if err := handler.Handle(context.Background(), msg); err != nil {
		t.Fatalf("events without flight ID should be dropped, not retried: %v", err)
	}
}
