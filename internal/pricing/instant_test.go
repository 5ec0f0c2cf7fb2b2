package pricing

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToInstant(t *testing.T) {
	ref := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		expected time.Time
	}{
		{"native time", ref, ref},
		{"mongo datetime", primitive.NewDateTimeFromTime(ref), ref},
		{"mongo timestamp", primitive.Timestamp{T: uint32(ref.Unix())}, ref},
		{"rfc3339 string", "2026-03-14T09:26:53Z", ref},
		{"rfc3339 with offset", "2026-03-14T11:26:53+02:00", ref},
		{"epoch int64", ref.Unix(), ref},
		{"epoch int32", int32(ref.Unix()), ref},
		{"epoch int", int(ref.Unix()), ref},
		{"epoch float64", float64(ref.Unix()), ref},
		{"seconds document", bson.M{"seconds": ref.Unix()}, ref},
		{"seconds map", map[string]any{"seconds": float64(ref.Unix())}, ref},
		{"seconds bson.D", bson.D{{Key: "seconds", Value: int32(ref.Unix())}}, ref},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInstant(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestToInstant_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"garbage string", "not-a-date"},
		{"unsupported type", struct{}{}},
		{"document without seconds", bson.M{"nanos": int64(5)}},
		{"document with bad seconds", bson.M{"seconds": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToInstant(tt.value); err == nil {
				t.Errorf("expected error for %v", tt.value)
			}
		})
	}
}
