package layout

import (
	"math"
	"sort"

	"github.com/mboros1/fast-pdf-parser/model"
)

// RunIndex is a read-only spatial index over one page's text runs. It
// buckets runs into horizontal rows sized from the median run height, so
// band and neighbor queries touch only the rows they intersect instead of
// scanning the whole page. Pages past a few thousand runs stay well clear
// of quadratic clustering behavior this way.
//
// Runs with degenerate geometry are not indexed; the clusterer accounts
// for them separately.
type RunIndex struct {
	runs []model.TextRun

	// rows[i] holds indices into runs for every run whose vertical extent
	// intersects row i. Row 0 starts at minY.
	rows      [][]int
	rowHeight float64
	minY      float64

	// byLeft holds indices into runs sorted by ascending left edge, used
	// for gutter (vertical strip) queries.
	byLeft []int
}

// NewRunIndex builds an index over the given runs. An empty page yields an
// empty index whose queries all return nil.
func NewRunIndex(runs []model.TextRun) *RunIndex {
	idx := &RunIndex{}

	var valid []int
	for i, r := range runs {
		if r.IsDegenerate() {
			continue
		}
		valid = append(valid, i)
	}
	if len(valid) == 0 {
		return idx
	}

	idx.runs = runs

	// Row height from the median run height keeps buckets aligned with
	// actual line pitch, whatever the document's font size.
	heights := make([]float64, 0, len(valid))
	minY := math.Inf(1)
	maxY := math.Inf(-1)
	for _, i := range valid {
		b := runs[i].BBox
		heights = append(heights, b.Height)
		if b.Bottom() < minY {
			minY = b.Bottom()
		}
		if b.Top() > maxY {
			maxY = b.Top()
		}
	}
	sort.Float64s(heights)
	rowHeight := heights[len(heights)/2]
	if rowHeight < 1 {
		rowHeight = 1
	}

	idx.rowHeight = rowHeight
	idx.minY = minY

	rowCount := int((maxY-minY)/rowHeight) + 1
	idx.rows = make([][]int, rowCount)
	for _, i := range valid {
		lo, hi := idx.rowRange(runs[i].BBox)
		for row := lo; row <= hi; row++ {
			idx.rows[row] = append(idx.rows[row], i)
		}
	}

	idx.byLeft = make([]int, len(valid))
	copy(idx.byLeft, valid)
	sort.SliceStable(idx.byLeft, func(a, b int) bool {
		return runs[idx.byLeft[a]].BBox.Left() < runs[idx.byLeft[b]].BBox.Left()
	})

	return idx
}

// Len returns the number of indexed runs.
func (idx *RunIndex) Len() int {
	return len(idx.byLeft)
}

// rowRange returns the first and last row a box touches, clamped to the
// index extent.
func (idx *RunIndex) rowRange(b model.BBox) (int, int) {
	lo := int((b.Bottom() - idx.minY) / idx.rowHeight)
	hi := int((b.Top() - idx.minY) / idx.rowHeight)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(idx.rows) {
		hi = len(idx.rows) - 1
	}
	return lo, hi
}

// WithinBand returns the runs whose vertical extent intersects the band
// [y0,y1], in paint order. y0 and y1 may be given in either order.
func (idx *RunIndex) WithinBand(y0, y1 float64) []model.TextRun {
	if len(idx.rows) == 0 {
		return nil
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	band := model.BBox{X: 0, Y: y0, Width: 1, Height: y1 - y0}
	lo, hi := idx.rowRange(band)
	if band.Height == 0 {
		// A zero-height band still selects the row containing y0.
		hi = lo
	}

	seen := make(map[int]bool)
	var hits []int
	for row := lo; row <= hi; row++ {
		for _, i := range idx.rows[row] {
			if seen[i] {
				continue
			}
			b := idx.runs[i].BBox
			if b.Top() >= y0 && b.Bottom() <= y1 {
				seen[i] = true
				hits = append(hits, i)
			}
		}
	}

	sort.Ints(hits)
	out := make([]model.TextRun, len(hits))
	for n, i := range hits {
		out[n] = idx.runs[i]
	}
	return out
}

// NearestRight returns the nearest run that starts to the right of r's
// right edge, overlaps r vertically, and is no further than maxGap away.
// Ties on distance are broken by paint order, so the result is
// deterministic. The second return value reports whether a neighbor was
// found.
func (idx *RunIndex) NearestRight(r model.TextRun, maxGap float64) (model.TextRun, bool) {
	if len(idx.rows) == 0 {
		return model.TextRun{}, false
	}

	lo, hi := idx.rowRange(r.BBox)
	best := -1
	bestGap := maxGap

	for row := lo; row <= hi; row++ {
		for _, i := range idx.rows[row] {
			cand := idx.runs[i].BBox
			if cand == r.BBox && idx.runs[i].Text == r.Text {
				continue
			}
			if cand.VerticalOverlap(r.BBox) <= 0 {
				continue
			}
			gap := cand.Left() - r.BBox.Right()
			if gap < 0 || gap > bestGap {
				continue
			}
			if gap < bestGap || best == -1 || i < best {
				bestGap = gap
				best = i
			}
		}
	}

	if best == -1 {
		return model.TextRun{}, false
	}
	return idx.runs[best], true
}

// CrossingStrip returns the runs whose horizontal extent crosses into the
// open vertical strip (x0,x1), in paint order. A clear strip (no results)
// between two bands of text is the signature of a column gutter.
func (idx *RunIndex) CrossingStrip(x0, x1 float64) []model.TextRun {
	if len(idx.byLeft) == 0 {
		return nil
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}

	// byLeft is sorted ascending, so everything at or past x1 can be
	// skipped once reached.
	var hits []int
	for _, i := range idx.byLeft {
		b := idx.runs[i].BBox
		if b.Left() >= x1 {
			break
		}
		if b.Right() > x0 {
			hits = append(hits, i)
		}
	}

	sort.Ints(hits)
	out := make([]model.TextRun, len(hits))
	for n, i := range hits {
		out[n] = idx.runs[i]
	}
	return out
}
