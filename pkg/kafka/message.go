package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Message is the broker-agnostic envelope passed between services. Key is the
// partition key; booking events are keyed by flight ID so all activity for
// one flight lands on the same partition in order.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// Header keys shared across services
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderRetryCount    = "retry-count"
	HeaderOriginalTopic = "original-topic"
)

// Event types published on the bookings topic
const (
	EventTypeBookingCreated   = "booking.created"
	EventTypeBookingCancelled = "booking.cancelled"
)

// MessageHandler processes one consumed message. A nil return commits the
// offset; an error triggers retry/DLQ handling.
type MessageHandler func(ctx context.Context, msg Message) error

// NewEventMessage builds a message with the standard headers filled in.
func NewEventMessage(key string, eventType string, source string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:       uuid.New().String(),
			HeaderEventType:     eventType,
			HeaderSchemaVersion: "1",
			HeaderSource:        source,
			HeaderTimestamp:     now.Format(time.RFC3339),
		},
	}, nil
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) GetHeader(key string) (string, bool) {
	value, exists := m.Headers[key]
	return value, exists
}

func (m *Message) GetEventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) GetEventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) GetRetryCount() int {
	if s, exists := m.Headers[HeaderRetryCount]; exists {
		if count, err := strconv.Atoi(s); err == nil {
			return count
		}
	}
	return 0
}

func (m *Message) IncrementRetryCount() {
	if m.Headers == nil {
		m.Headers = make(map[string]string)
	}
	m.Headers[HeaderRetryCount] = strconv.Itoa(m.GetRetryCount() + 1)
}
