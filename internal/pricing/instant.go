package pricing

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToInstant normalizes the many shapes a booking date can arrive in. Historic
// records carry RFC 3339 strings, newer ones native datetimes, and a few
// imports epoch seconds or a {"seconds": N} document. Anything unrecognized
// is an error so callers can skip the record instead of guessing.
func ToInstant(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v.Time(), nil
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC(), nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse booking date %q: %w", v, err)
		}
		return t, nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case int32:
		return time.Unix(int64(v), 0).UTC(), nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case float64:
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), nil
	case bson.M:
		return instantFromSeconds(map[string]any(v))
	case map[string]any:
		return instantFromSeconds(v)
	case bson.D:
		return instantFromSeconds(v.Map())
	case nil:
		return time.Time{}, fmt.Errorf("booking date is nil")
	default:
		return time.Time{}, fmt.Errorf("unsupported booking date type %T", value)
	}
}

func instantFromSeconds(doc map[string]any) (time.Time, error) {
	raw, ok := doc["seconds"]
	if !ok {
		return time.Time{}, fmt.Errorf("booking date document has no seconds field")
	}
	switch s := raw.(type) {
	case int64:
		return time.Unix(s, 0).UTC(), nil
	case int32:
		return time.Unix(int64(s), 0).UTC(), nil
	case int:
		return time.Unix(int64(s), 0).UTC(), nil
	case float64:
		return time.Unix(int64(s), 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported seconds type %T", raw)
	}
}
