// Package sanitizer normalizes free-text catalog and passenger fields before
// validation and storage. Strategies are composable so each field type can
// declare its own pipeline.
package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersDigitsSpace = regexp.MustCompile(`[^0-9\p{L} ]+`)
	reMultiSpace             = regexp.MustCompile(`\s+`)
	reKeepAlnum              = regexp.MustCompile(`[^0-9A-Za-z]+`)
	reKeepLetters            = regexp.MustCompile(`[^\p{L}]+`)
	reKeepNameChars          = regexp.MustCompile(`[^\p{L} '\-]+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeAirlineName keeps letters, digits and single spaces.
func SanitizeAirlineName(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reKeepLettersDigitsSpace.ReplaceAllString(s, "") },
		collapseSpaces,
		trim,
	}
	return p.Apply(input)
}

// SanitizeFlightNumber uppercases and strips everything but letters and digits,
// e.g. " ba 123 " -> "BA123".
func SanitizeFlightNumber(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reKeepAlnum.ReplaceAllString(s, "") },
		strings.ToUpper,
	}
	return p.Apply(input)
}

// SanitizeIATACode uppercases and strips non-letters. Length is enforced by
// validation, not here.
func SanitizeIATACode(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reKeepLetters.ReplaceAllString(s, "") },
		strings.ToUpper,
	}
	return p.Apply(input)
}

// SanitizePassengerName keeps letters and single spaces, preserving case as
// printed on travel documents.
func SanitizePassengerName(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reKeepNameChars.ReplaceAllString(s, "") },
		collapseSpaces,
		trim,
	}
	return p.Apply(input)
}
