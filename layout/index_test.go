package layout

import (
	"testing"

	"github.com/mboros1/fast-pdf-parser/model"
)

func TestRunIndex_Empty(t *testing.T) {
	idx := NewRunIndex(nil)

	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d runs", idx.Len())
	}
	if got := idx.WithinBand(0, 800); got != nil {
		t.Errorf("WithinBand on empty index should be nil, got %d runs", len(got))
	}
	if _, ok := idx.NearestRight(makeRun(0, 0, 10, 10, "x"), 100); ok {
		t.Error("NearestRight on empty index should find nothing")
	}
	if got := idx.CrossingStrip(0, 100); got != nil {
		t.Errorf("CrossingStrip on empty index should be nil, got %d runs", len(got))
	}
}

func TestRunIndex_SkipsDegenerateRuns(t *testing.T) {
	runs := []model.TextRun{
		makeRun(72, 700, 40, 10, "good"),
		makeRun(0, 0, 0, 0, "degenerate"),
	}

	idx := NewRunIndex(runs)

	if idx.Len() != 1 {
		t.Errorf("expected 1 indexed run, got %d", idx.Len())
	}
}

func TestRunIndex_WithinBand(t *testing.T) {
	runs := []model.TextRun{
		makeRun(72, 700, 40, 10, "top"),
		makeRun(72, 650, 40, 10, "middle"),
		makeRun(72, 600, 40, 10, "bottom"),
	}

	idx := NewRunIndex(runs)

	hits := idx.WithinBand(645, 665)
	if len(hits) != 1 {
		t.Fatalf("expected 1 run in band, got %d", len(hits))
	}
	if hits[0].Text != "middle" {
		t.Errorf("expected middle run, got %q", hits[0].Text)
	}

	all := idx.WithinBand(0, 800)
	if len(all) != 3 {
		t.Errorf("full-page band should return all runs, got %d", len(all))
	}

	// Reversed band bounds behave the same.
	if len(idx.WithinBand(665, 645)) != 1 {
		t.Error("reversed band bounds should return the same result")
	}
}

func TestRunIndex_NearestRight(t *testing.T) {
	runs := []model.TextRun{
		makeRun(72, 700, 50, 10, "first"),
		makeRun(130, 700, 40, 10, "second"),
		makeRun(300, 700, 40, 10, "far"),
		makeRun(130, 600, 40, 10, "other line"),
	}

	idx := NewRunIndex(runs)

	// Gap of 8 points to "second"; "other line" does not overlap
	// vertically and must not be considered.
	got, ok := idx.NearestRight(runs[0], 20)
	if !ok {
		t.Fatal("expected a right neighbor")
	}
	if got.Text != "second" {
		t.Errorf("expected second, got %q", got.Text)
	}

	// "far" is 130 points away, beyond the tolerance.
	if _, ok := idx.NearestRight(runs[1], 20); ok {
		t.Error("expected no neighbor within 20 points")
	}

	// With a generous tolerance the nearest wins, not just any.
	got, ok = idx.NearestRight(runs[0], 1000)
	if !ok || got.Text != "second" {
		t.Errorf("expected nearest neighbor second, got %q (found=%v)", got.Text, ok)
	}
}

func TestRunIndex_CrossingStrip(t *testing.T) {
	runs := []model.TextRun{
		makeRun(0, 700, 50, 10, "left"),
		makeRun(60, 700, 50, 10, "right"),
	}

	idx := NewRunIndex(runs)

	if got := idx.CrossingStrip(50, 60); len(got) != 0 {
		t.Errorf("clear gutter should have no crossing runs, got %d", len(got))
	}

	wide := append(runs, makeRun(0, 730, 110, 12, "header"))
	idx = NewRunIndex(wide)

	got := idx.CrossingStrip(50, 60)
	if len(got) != 1 {
		t.Fatalf("expected 1 crossing run, got %d", len(got))
	}
	if got[0].Text != "header" {
		t.Errorf("expected header to cross the gutter, got %q", got[0].Text)
	}
}
