package pricing

import (
	"testing"

	"aerovoyage/pkg/model"
)

func TestApplyEscalation_NoEscalation(t *testing.T) {
	flight := model.Flight{ID: "f1", Price: 250}

	got := ApplyEscalation(flight, false)

	if got.Price != 250 {
		t.Errorf("expected price 250, got %d", got.Price)
	}
	if got.OriginalPrice != 0 {
		t.Errorf("expected original price unset, got %d", got.OriginalPrice)
	}
	if got.PriceIncreased {
		t.Error("expected price_increased false")
	}
}

func TestApplyEscalation_Markup(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		expected int64
	}{
		{"even markup", 100, 110},
		{"rounds down below half", 99, 109},
		{"rounds half up", 5, 6},
		{"small price", 1, 1},
		{"large price", 123456, 135802},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyEscalation(model.Flight{ID: "f1", Price: tt.base}, true)

			if got.Price != tt.expected {
				t.Errorf("expected price %d, got %d", tt.expected, got.Price)
			}
			if got.OriginalPrice != tt.base {
				t.Errorf("expected original price %d, got %d", tt.base, got.OriginalPrice)
			}
			if !got.PriceIncreased {
				t.Error("expected price_increased true")
			}
		})
	}
}

func TestApplyEscalation_NoCompounding(t *testing.T) {
	flight := model.Flight{ID: "f1", Price: 200}

	once := ApplyEscalation(flight, true)
	twice := ApplyEscalation(once, true)
	thrice := ApplyEscalation(twice, true)

	if once.Price != 220 {
		t.Fatalf("expected first application to yield 220, got %d", once.Price)
	}
	if twice.Price != 220 || thrice.Price != 220 {
		t.Errorf("expected repeated applications to stay at 220, got %d then %d", twice.Price, thrice.Price)
	}
	if thrice.OriginalPrice != 200 {
		t.Errorf("expected original price to stay 200, got %d", thrice.OriginalPrice)
	}
}

func TestApplyEscalation_InputNotMutated(t *testing.T) {
	flight := model.Flight{ID: "f1", Price: 100}

	_ = ApplyEscalation(flight, true)

	if flight.Price != 100 || flight.OriginalPrice != 0 || flight.PriceIncreased {
		t.Errorf("input flight was mutated: %+v", flight)
	}
}
