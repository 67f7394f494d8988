package model

import (
	"github.com/mboros1/fast-pdf-parser/text"
)

// Mode indicates the writing mode of a text run.
type Mode int

const (
	// Horizontal text reads along the X axis (the common case).
	Horizontal Mode = iota
	// Vertical text reads along the Y axis (rotated text, CJK vertical
	// writing). Vertical runs are clustered on the perpendicular axis.
	Vertical
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	if m == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// TextRun is a positioned fragment of text produced by a content-stream
// interpreter: a Unicode string in logical codepoint order together with
// its bounding box, baseline and font metrics. Runs arrive in paint order,
// which bears no relation to reading order. A TextRun is immutable once
// handed to the engine and is owned by the page it belongs to.
type TextRun struct {
	Text      string
	BBox      BBox
	Baseline  float64 // Y coordinate of the text baseline
	FontSize  float64
	Mode      Mode
	Direction text.Direction
}

// NewRun creates a horizontal text run and detects its writing direction
// from the text content.
func NewRun(s string, bbox BBox, baseline, fontSize float64) TextRun {
	return TextRun{
		Text:      s,
		BBox:      bbox,
		Baseline:  baseline,
		FontSize:  fontSize,
		Mode:      Horizontal,
		Direction: text.DetectDirection(s),
	}
}

// NewVerticalRun creates a vertical-mode text run.
func NewVerticalRun(s string, bbox BBox, baseline, fontSize float64) TextRun {
	r := NewRun(s, bbox, baseline, fontSize)
	r.Mode = Vertical
	return r
}

// IsDegenerate reports whether the run carries unusable geometry: a
// degenerate bounding box or a non-finite baseline or font size. Such runs
// are dropped with a diagnostic count instead of aborting extraction.
func (r TextRun) IsDegenerate() bool {
	if r.BBox.IsDegenerate() {
		return true
	}
	return !isFinite(r.Baseline) || !isFinite(r.FontSize) || r.FontSize <= 0
}
