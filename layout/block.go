package layout

import (
	"sort"
	"strings"

	"github.com/mboros1/fast-pdf-parser/model"
)

// Block represents a column or paragraph-like region of a page: lines
// stacked top to bottom under one bounding box. Blocks are transient -
// they live only within one page's pipeline execution.
type Block struct {
	// Lines are the block's lines, ordered top to bottom.
	Lines []Line

	// BBox is the aggregate bounding box of the block.
	BBox model.BBox

	// Column is the column the block belongs to (0-based, left to right;
	// 0 on single-column pages).
	Column int

	// Spanning is set on blocks that span the full content width of a
	// multi-column page (titles, headers, footers). Spanning blocks are
	// sequenced at their natural vertical position rather than inside a
	// column.
	Spanning bool

	// Index is the block's position in reading order, assigned by the
	// Sequencer.
	Index int
}

// Text assembles the block's text, one line per row.
func (b Block) Text() string {
	if len(b.Lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.Lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text())
	}
	return sb.String()
}

// LineCount returns the number of lines in the block.
func (b Block) LineCount() int {
	return len(b.Lines)
}

// BlockConfig holds configuration for block segmentation and column
// detection.
type BlockConfig struct {
	// GapThreshold is the vertical gap, as a multiple of the median line
	// height, above which a new block starts (default: 1.5).
	GapThreshold float64

	// DetectColumns toggles multi-column analysis. When disabled, every
	// page is treated as a single stack of blocks (default: true).
	DetectColumns bool

	// MinGapWidth is the minimum clear horizontal gutter, in points,
	// between two bands of lines for them to qualify as separate columns
	// (default: 8).
	MinGapWidth float64

	// ColumnOverlapRatio is the minimum shared fraction of two candidate
	// columns' vertical extents. Bands that do not overlap this much are
	// stacked content, not parallel columns (default: 0.5).
	ColumnOverlapRatio float64

	// SpanningThreshold is the fraction of the page content width above
	// which a line is treated as spanning the whole column group
	// (default: 0.7).
	SpanningThreshold float64

	// MaxColumns caps how many columns are detected; layouts that would
	// exceed it fall back to a single stack (default: 6).
	MaxColumns int
}

// DefaultBlockConfig returns sensible default configuration.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		GapThreshold:       1.5,
		DetectColumns:      true,
		MinGapWidth:        8.0,
		ColumnOverlapRatio: 0.5,
		SpanningThreshold:  0.7,
		MaxColumns:         6,
	}
}

// BlockSegmenter groups lines into blocks and detects column structure.
type BlockSegmenter struct {
	config BlockConfig
}

// NewBlockSegmenter creates a block segmenter with default configuration.
func NewBlockSegmenter() *BlockSegmenter {
	return &BlockSegmenter{
		config: DefaultBlockConfig(),
	}
}

// NewBlockSegmenterWithConfig creates a block segmenter with custom configuration.
func NewBlockSegmenterWithConfig(config BlockConfig) *BlockSegmenter {
	return &BlockSegmenter{
		config: config,
	}
}

// Segment groups lines into blocks. When column detection is enabled and
// the page splits cleanly into parallel bands, each band is segmented
// separately and its blocks tagged with a column index; otherwise the
// whole page is segmented as a single stack. Ambiguous layouts
// (partially overlapping bands, blocked gutters) deliberately fall back
// to the stacked interpretation - readable-but-merged beats wrongly
// split.
//
// The index may be nil; it is only consulted to confirm candidate
// gutters are clear.
func (s *BlockSegmenter) Segment(lines []Line, idx *RunIndex) []Block {
	if len(lines) == 0 {
		return nil
	}

	sorted := sortLinesTopToBottom(lines)

	if s.config.DetectColumns {
		if columns, spanning, ok := s.detectColumns(sorted, idx); ok {
			return s.columnBlocks(columns, spanning)
		}
	}

	blocks := s.stack(sorted, 0, false)
	return sortBlocksTopToBottom(blocks)
}

// detectColumns projects lines onto the horizontal axis and looks for two
// or more disjoint bands separated by clear gutters. It returns the lines
// of each band (left to right), the full-width spanning lines, and
// whether the multi-column interpretation holds.
func (s *BlockSegmenter) detectColumns(lines []Line, idx *RunIndex) ([][]Line, []Line, bool) {
	content := lines[0].BBox
	for _, l := range lines[1:] {
		content = content.Union(l.BBox)
	}

	var spanning, narrow []Line
	for _, l := range lines {
		if l.BBox.Width >= s.config.SpanningThreshold*content.Width {
			spanning = append(spanning, l)
		} else {
			narrow = append(narrow, l)
		}
	}
	if len(narrow) == 0 {
		return nil, nil, false
	}

	clusters := s.clusterByXRange(narrow)
	if len(clusters) < 2 || len(clusters) > s.config.MaxColumns {
		return nil, nil, false
	}

	// Adjacent bands must genuinely run in parallel; partially
	// overlapping vertical ranges mean stacked content.
	for i := 0; i < len(clusters)-1; i++ {
		a := clusterBBox(clusters[i])
		b := clusterBBox(clusters[i+1])
		if a.VerticalOverlapRatio(b) < s.config.ColumnOverlapRatio {
			return nil, nil, false
		}
	}

	// Gutters must be clear of text apart from the spanning lines that
	// legitimately cross them.
	if idx != nil {
		for i := 0; i < len(clusters)-1; i++ {
			gutterLeft := clusterBBox(clusters[i]).Right()
			gutterRight := clusterBBox(clusters[i+1]).Left()
			for _, r := range idx.CrossingStrip(gutterLeft, gutterRight) {
				if !insideAny(r.BBox.Center(), spanning) {
					return nil, nil, false
				}
			}
		}
	}

	return clusters, spanning, true
}

// clusterByXRange merges lines into bands of overlapping horizontal
// ranges. Bands closer together than MinGapWidth are merged - a gutter
// narrower than that is not trustworthy column separation.
func (s *BlockSegmenter) clusterByXRange(lines []Line) [][]Line {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})

	var clusters [][]Line
	right := 0.0

	for _, l := range sorted {
		if len(clusters) > 0 && l.BBox.Left() < right+s.config.MinGapWidth {
			clusters[len(clusters)-1] = append(clusters[len(clusters)-1], l)
			if l.BBox.Right() > right {
				right = l.BBox.Right()
			}
		} else {
			clusters = append(clusters, []Line{l})
			right = l.BBox.Right()
		}
	}

	return clusters
}

// columnBlocks segments each column band independently, then the spanning
// lines, and returns all blocks in a deterministic top-to-bottom order.
func (s *BlockSegmenter) columnBlocks(columns [][]Line, spanning []Line) []Block {
	var blocks []Block
	for col, colLines := range columns {
		blocks = append(blocks, s.stack(sortLinesTopToBottom(colLines), col, false)...)
	}
	if len(spanning) > 0 {
		blocks = append(blocks, s.stack(sortLinesTopToBottom(spanning), 0, true)...)
	}
	return sortBlocksTopToBottom(blocks)
}

// stack sweeps lines top to bottom and groups them into blocks. A line
// joins the open block it overlaps horizontally when the vertical gap
// stays under the threshold; otherwise it opens a new block. Open blocks
// left behind by more than the threshold are closed and can never accept
// another line.
func (s *BlockSegmenter) stack(lines []Line, column int, spanning bool) []Block {
	if len(lines) == 0 {
		return nil
	}

	threshold := s.config.GapThreshold * medianLineHeight(lines)

	var open, closed []Block
	for _, line := range lines {
		// Retire blocks this line has already passed.
		kept := open[:0]
		for _, b := range open {
			if b.BBox.Bottom()-line.BBox.Top() > threshold {
				closed = append(closed, b)
			} else {
				kept = append(kept, b)
			}
		}
		open = kept

		// Attach to the open block with the widest horizontal overlap.
		best := -1
		bestOverlap := 0.0
		for i, b := range open {
			overlap := b.BBox.HorizontalOverlap(line.BBox)
			if overlap > bestOverlap {
				bestOverlap = overlap
				best = i
			}
		}

		if best >= 0 {
			open[best].Lines = append(open[best].Lines, line)
			open[best].BBox = open[best].BBox.Union(line.BBox)
		} else {
			open = append(open, Block{
				Lines:    []Line{line},
				BBox:     line.BBox,
				Column:   column,
				Spanning: spanning,
			})
		}
	}
	closed = append(closed, open...)

	return closed
}

// sortLinesTopToBottom orders lines by descending top edge, ties broken
// by ascending left edge.
func sortLinesTopToBottom(lines []Line) []Line {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Top() != sorted[j].BBox.Top() {
			return sorted[i].BBox.Top() > sorted[j].BBox.Top()
		}
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})
	return sorted
}

// sortBlocksTopToBottom orders blocks by descending top edge, ties broken
// by ascending left edge. This is a stable intermediate order; the
// Sequencer applies the final reading order.
func sortBlocksTopToBottom(blocks []Block) []Block {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].BBox.Top() != blocks[j].BBox.Top() {
			return blocks[i].BBox.Top() > blocks[j].BBox.Top()
		}
		return blocks[i].BBox.Left() < blocks[j].BBox.Left()
	})
	return blocks
}

// clusterBBox returns the union bounding box of a band of lines.
func clusterBBox(lines []Line) model.BBox {
	bbox := lines[0].BBox
	for _, l := range lines[1:] {
		bbox = bbox.Union(l.BBox)
	}
	return bbox
}

// insideAny reports whether the point falls inside any of the lines'
// bounding boxes.
func insideAny(p model.Point, lines []Line) bool {
	for _, l := range lines {
		b := l.BBox
		if p.X >= b.Left() && p.X <= b.Right() && p.Y >= b.Bottom() && p.Y <= b.Top() {
			return true
		}
	}
	return false
}

// medianLineHeight returns the median line height, or a nominal 12 points
// for empty input.
func medianLineHeight(lines []Line) float64 {
	if len(lines) == 0 {
		return 12.0
	}
	heights := make([]float64, len(lines))
	for i, l := range lines {
		heights[i] = l.Height
	}
	sort.Float64s(heights)
	return heights[len(heights)/2]
}
