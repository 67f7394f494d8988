package layout

import (
	"testing"

	"github.com/mboros1/fast-pdf-parser/model"
)

// makeLine builds a single-run line at the given geometry.
func makeLine(x, y, w, h float64, s string) Line {
	lines, _ := NewLineClusterer().Cluster([]model.TextRun{makeRun(x, y, w, h, s)})
	return lines[0]
}

func TestBlockSegmenter_EmptyInput(t *testing.T) {
	if blocks := NewBlockSegmenter().Segment(nil, nil); blocks != nil {
		t.Errorf("expected nil blocks for empty input, got %d", len(blocks))
	}
}

func TestBlockSegmenter_SingleColumnStack(t *testing.T) {
	// Three consecutive lines of body text: one block, lines in vertical
	// order.
	lines := []Line{
		makeLine(72, 670, 400, 10, "third"),
		makeLine(72, 700, 400, 10, "first"),
		makeLine(72, 685, 400, 10, "second"),
	}

	blocks := NewBlockSegmenter().Segment(lines, nil)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].LineCount() != 3 {
		t.Fatalf("expected 3 lines in block, got %d", blocks[0].LineCount())
	}
	if blocks[0].Column != 0 {
		t.Errorf("single-column block should have column 0, got %d", blocks[0].Column)
	}
	if got := blocks[0].Text(); got != "first\nsecond\nthird" {
		t.Errorf("expected top-to-bottom text, got %q", got)
	}
}

func TestBlockSegmenter_ParagraphGapSplits(t *testing.T) {
	// A 35-point gap between 10-point lines starts a new block.
	lines := []Line{
		makeLine(72, 700, 400, 10, "para one line one"),
		makeLine(72, 685, 400, 10, "para one line two"),
		makeLine(72, 640, 400, 10, "para two"),
	}

	blocks := NewBlockSegmenter().Segment(lines, nil)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].LineCount() != 2 || blocks[1].LineCount() != 1 {
		t.Errorf("expected blocks of 2 and 1 lines, got %d and %d",
			blocks[0].LineCount(), blocks[1].LineCount())
	}
}

func twoColumnLines() []Line {
	// Left column at x in [0,50], right column at x in [60,110], both
	// spanning the same vertical extent.
	var lines []Line
	for i := 0; i < 4; i++ {
		y := 700 - float64(i)*15
		lines = append(lines, makeLine(0, y, 50, 10, "left"))
		lines = append(lines, makeLine(60, y, 50, 10, "right"))
	}
	return lines
}

func TestBlockSegmenter_TwoColumns(t *testing.T) {
	blocks := NewBlockSegmenter().Segment(twoColumnLines(), nil)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 column blocks, got %d", len(blocks))
	}

	var left, right *Block
	for i := range blocks {
		switch blocks[i].Column {
		case 0:
			left = &blocks[i]
		case 1:
			right = &blocks[i]
		}
	}
	if left == nil || right == nil {
		t.Fatal("expected blocks tagged column 0 and column 1")
	}
	if left.BBox.Left() != 0 || right.BBox.Left() != 60 {
		t.Errorf("column tags should run left to right, got left at %v, right at %v",
			left.BBox.Left(), right.BBox.Left())
	}
	if left.LineCount() != 4 || right.LineCount() != 4 {
		t.Errorf("expected 4 lines per column, got %d and %d",
			left.LineCount(), right.LineCount())
	}
}

func TestBlockSegmenter_AmbiguousColumnsFallBackToStack(t *testing.T) {
	// Horizontal ranges partially overlap: not trustworthy columns, so
	// the page reads as a single stack.
	var lines []Line
	for i := 0; i < 4; i++ {
		y := 700 - float64(i)*15
		lines = append(lines, makeLine(0, y, 60, 10, "a"))
		lines = append(lines, makeLine(50, y, 60, 10, "b"))
	}

	blocks := NewBlockSegmenter().Segment(lines, nil)

	for _, b := range blocks {
		if b.Column != 0 {
			t.Fatalf("ambiguous layout must fall back to single column, got column %d", b.Column)
		}
	}
}

func TestBlockSegmenter_StackedBandsAreNotColumns(t *testing.T) {
	// Two horizontally disjoint bands that do not overlap vertically are
	// stacked content, not parallel columns.
	lines := []Line{
		makeLine(0, 700, 50, 10, "upper left band"),
		makeLine(0, 685, 50, 10, "upper left band"),
		makeLine(60, 400, 50, 10, "lower right band"),
		makeLine(60, 385, 50, 10, "lower right band"),
	}

	blocks := NewBlockSegmenter().Segment(lines, nil)

	for _, b := range blocks {
		if b.Column != 0 {
			t.Fatalf("vertically disjoint bands must not become columns, got column %d", b.Column)
		}
	}
}

func TestBlockSegmenter_SpanningHeader(t *testing.T) {
	lines := append(twoColumnLines(),
		makeLine(0, 730, 110, 12, "Page Title"))

	blocks := NewBlockSegmenter().Segment(lines, nil)

	if len(blocks) != 3 {
		t.Fatalf("expected header block plus 2 columns, got %d blocks", len(blocks))
	}

	var spanning *Block
	for i := range blocks {
		if blocks[i].Spanning {
			spanning = &blocks[i]
		}
	}
	if spanning == nil {
		t.Fatal("expected a spanning header block")
	}
	if spanning.Text() != "Page Title" {
		t.Errorf("expected header text, got %q", spanning.Text())
	}
}

func TestBlockSegmenter_BlockedGutterFallsBack(t *testing.T) {
	// The lines look like two columns, but the page also carries a run
	// straddling the gutter (say, a watermark fragment). The gutter is
	// not clear, so the stacked interpretation wins.
	var runs []model.TextRun
	for i := 0; i < 4; i++ {
		y := 700 - float64(i)*15
		runs = append(runs, makeRun(0, y, 50, 10, "left"))
		runs = append(runs, makeRun(60, y, 50, 10, "right"))
	}
	straddler := makeRun(40, 500, 30, 10, "draft")
	idx := NewRunIndex(append(runs, straddler))

	blocks := NewBlockSegmenter().Segment(twoColumnLines(), idx)

	for _, b := range blocks {
		if b.Column != 0 {
			t.Fatalf("blocked gutter must fall back to single column, got column %d", b.Column)
		}
	}
}

func TestBlockSegmenter_DetectColumnsDisabled(t *testing.T) {
	config := DefaultBlockConfig()
	config.DetectColumns = false

	blocks := NewBlockSegmenterWithConfig(config).Segment(twoColumnLines(), nil)

	for _, b := range blocks {
		if b.Column != 0 {
			t.Fatalf("column detection disabled, got column %d", b.Column)
		}
	}
}

func TestBlockSegmenter_Idempotent(t *testing.T) {
	s := NewBlockSegmenter()

	first := s.Segment(twoColumnLines(), nil)
	if len(first) == 0 {
		t.Fatal("expected blocks")
	}

	// Re-segmenting any produced block's own lines must not subdivide it
	// further.
	for _, b := range first {
		again := s.Segment(b.Lines, nil)
		if len(again) != 1 {
			t.Errorf("block re-segmented into %d blocks, want 1", len(again))
		}
		if len(again) == 1 && again[0].LineCount() != b.LineCount() {
			t.Errorf("re-segmented block has %d lines, want %d",
				again[0].LineCount(), b.LineCount())
		}
	}
}
