package sanitizer

import "testing"

func TestSanitizeFlightNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase with spaces", " ba 123 ", "BA123"},
		{"already clean", "LY5521", "LY5521"},
		{"punctuation stripped", "af-447", "AF447"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFlightNumber(tt.input); got != tt.expected {
				t.Errorf("SanitizeFlightNumber(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeIATACode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "jfk", "JFK"},
		{"with whitespace", " tlv ", "TLV"},
		{"digits stripped", "l4x", "LX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeIATACode(tt.input); got != tt.expected {
				t.Errorf("SanitizeIATACode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeAirlineName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapse spaces", "  El   Al ", "El Al"},
		{"strip punctuation", "Air-France!", "AirFrance"},
		{"keeps digits", "Boeing 787 Ops", "Boeing 787 Ops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeAirlineName(tt.input); got != tt.expected {
				t.Errorf("SanitizeAirlineName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizePassengerName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"keeps case", "  Jane   Doe ", "Jane Doe"},
		{"keeps hyphen and apostrophe", "O'Neil-Smith", "O'Neil-Smith"},
		{"strips digits", "John3 Doe", "John Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePassengerName(tt.input); got != tt.expected {
				t.Errorf("SanitizePassengerName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
