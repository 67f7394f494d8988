// Package text provides text-level utilities for the layout engine,
// currently writing-direction detection for extracted runs.
package text

import "golang.org/x/text/unicode/bidi"

// Direction represents the dominant writing direction of a run of text.
// It is used to decide how runs are joined within a line.
type Direction int

const (
	// LTR (left-to-right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (right-to-left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for digits, punctuation, and whitespace-only text.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection returns the dominant direction of s based on the Unicode
// bidi class of each character. Strong LTR and RTL characters are counted;
// text with no strong directional characters is Neutral.
func DetectDirection(s string) Direction {
	if s == "" {
		return Neutral
	}

	ltr := 0
	rtl := 0

	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			ltr++
		case bidi.R, bidi.AL:
			rtl++
		}
	}

	if ltr == 0 && rtl == 0 {
		return Neutral
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}
