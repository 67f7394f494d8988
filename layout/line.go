package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/mboros1/fast-pdf-parser/model"
)

// Line represents a single line of text: runs sharing an approximate
// baseline, ordered left to right. Lines are transient - they live only
// within one page's pipeline execution.
type Line struct {
	// Runs are the text runs that make up this line, ordered by ascending
	// X coordinate.
	Runs []model.TextRun

	// BBox is the aggregate bounding box of the line.
	BBox model.BBox

	// Baseline is the Y coordinate of the line's baseline (the average of
	// its runs' baselines).
	Baseline float64

	// Height is the tallest run height in the line.
	Height float64

	// Mode is the writing mode shared by the line's runs.
	Mode model.Mode

	// WordGapFactor is the gap between consecutive runs, as a multiple of
	// font size, above which Text inserts a space. The clusterer stamps it
	// from its configuration; zero falls back to the default.
	WordGapFactor float64
}

// Text assembles the line's text, inserting a space wherever consecutive
// runs are separated by a visible gap.
func (l Line) Text() string {
	if len(l.Runs) == 0 {
		return ""
	}

	factor := l.WordGapFactor
	if factor == 0 {
		factor = defaultWordGapFactor
	}

	var sb strings.Builder
	for i, r := range l.Runs {
		if i > 0 {
			prev := l.Runs[i-1]
			gap := r.BBox.Left() - prev.BBox.Right()
			if l.Mode == model.Vertical {
				gap = prev.BBox.Bottom() - r.BBox.Top()
			}
			if gap > r.FontSize*factor {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// RunCount returns the number of runs in the line.
func (l Line) RunCount() int {
	return len(l.Runs)
}

// IsEmpty reports whether the line has no visible text.
func (l Line) IsEmpty() bool {
	return strings.TrimSpace(l.Text()) == ""
}

// LineConfig holds the tolerances for clustering runs into lines. Both
// tolerances are multipliers applied to font size, so they adapt to the
// size the text is set at.
type LineConfig struct {
	// BaselineTolerance is the maximum baseline difference for two runs to
	// share a line, as a multiple of font size (default: 0.3).
	BaselineTolerance float64

	// GapTolerance is the maximum horizontal gap between consecutive runs
	// on the same baseline, as a multiple of font size (default: 1.5).
	// Runs further apart start a new line even at the same baseline, which
	// keeps juxtaposed but unrelated text (table cells, captions) from
	// merging.
	GapTolerance float64

	// WordGapFactor is the gap between consecutive runs in a line, as a
	// multiple of font size, above which a space is inserted when the
	// line's text is assembled (default: 0.25).
	WordGapFactor float64
}

// defaultWordGapFactor separates words narrower than ordinary letter
// spacing from genuine word breaks.
const defaultWordGapFactor = 0.25

// DefaultLineConfig returns sensible default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 0.3,
		GapTolerance:      1.5,
		WordGapFactor:     defaultWordGapFactor,
	}
}

// LineClusterer merges text runs into lines.
type LineClusterer struct {
	config LineConfig
}

// NewLineClusterer creates a line clusterer with default configuration.
func NewLineClusterer() *LineClusterer {
	return &LineClusterer{
		config: DefaultLineConfig(),
	}
}

// NewLineClustererWithConfig creates a line clusterer with custom configuration.
func NewLineClustererWithConfig(config LineConfig) *LineClusterer {
	return &LineClusterer{
		config: config,
	}
}

// Cluster groups runs into lines. Every valid input run lands in exactly
// one line; runs with degenerate geometry are dropped and counted in the
// second return value. The order in which lines are emitted is
// unspecified - the segmenter re-sorts them.
func (c *LineClusterer) Cluster(runs []model.TextRun) ([]Line, int) {
	if len(runs) == 0 {
		return nil, 0
	}

	var horizontal, vertical []model.TextRun
	dropped := 0
	for _, r := range runs {
		switch {
		case r.IsDegenerate():
			dropped++
		case r.Mode == model.Vertical:
			vertical = append(vertical, r)
		default:
			horizontal = append(horizontal, r)
		}
	}

	lines := c.clusterHorizontal(horizontal)
	lines = append(lines, c.clusterVertical(vertical)...)
	return lines, dropped
}

// clusterHorizontal sweeps runs sorted by baseline then X, merging a run
// into the current line while both the baseline delta and the horizontal
// gap stay within tolerance.
func (c *LineClusterer) clusterHorizontal(runs []model.TextRun) []Line {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]model.TextRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		tol := c.config.BaselineTolerance * maxFloat(sorted[i].FontSize, sorted[j].FontSize)
		if math.Abs(sorted[i].Baseline-sorted[j].Baseline) > tol {
			return sorted[i].Baseline > sorted[j].Baseline // top of page first
		}
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})

	var lines []Line
	current := []model.TextRun{sorted[0]}
	baselineSum := sorted[0].Baseline

	for _, r := range sorted[1:] {
		prev := current[len(current)-1]
		avgBaseline := baselineSum / float64(len(current))

		fontSize := maxFloat(r.FontSize, prev.FontSize)
		sameBaseline := math.Abs(r.Baseline-avgBaseline) <= c.config.BaselineTolerance*fontSize
		gap := r.BBox.Left() - prev.BBox.Right()
		closeEnough := gap <= c.config.GapTolerance*fontSize

		if sameBaseline && closeEnough {
			current = append(current, r)
			baselineSum += r.Baseline
		} else {
			lines = append(lines, c.buildLine(current, model.Horizontal))
			current = []model.TextRun{r}
			baselineSum = r.Baseline
		}
	}
	lines = append(lines, c.buildLine(current, model.Horizontal))

	return lines
}

// clusterVertical clusters vertical-mode runs on the perpendicular axis:
// runs share a line when their X centers align and the vertical gap
// between them stays within tolerance. Runs within a vertical line read
// top to bottom.
func (c *LineClusterer) clusterVertical(runs []model.TextRun) []Line {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]model.TextRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		tol := c.config.BaselineTolerance * maxFloat(sorted[i].FontSize, sorted[j].FontSize)
		ci := sorted[i].BBox.Center().X
		cj := sorted[j].BBox.Center().X
		if math.Abs(ci-cj) > tol {
			return ci < cj
		}
		return sorted[i].BBox.Top() > sorted[j].BBox.Top() // top of page first
	})

	var lines []Line
	current := []model.TextRun{sorted[0]}

	for _, r := range sorted[1:] {
		prev := current[len(current)-1]

		fontSize := maxFloat(r.FontSize, prev.FontSize)
		aligned := math.Abs(r.BBox.Center().X-prev.BBox.Center().X) <= c.config.BaselineTolerance*fontSize
		gap := prev.BBox.Bottom() - r.BBox.Top()
		closeEnough := gap <= c.config.GapTolerance*fontSize

		if aligned && closeEnough {
			current = append(current, r)
		} else {
			lines = append(lines, c.buildLine(current, model.Vertical))
			current = []model.TextRun{r}
		}
	}
	lines = append(lines, c.buildLine(current, model.Vertical))

	return lines
}

// buildLine assembles a Line from clustered runs, enforcing the run-order
// invariant for the line's mode.
func (c *LineClusterer) buildLine(runs []model.TextRun, mode model.Mode) Line {
	if mode == model.Vertical {
		sort.SliceStable(runs, func(i, j int) bool {
			return runs[i].BBox.Top() > runs[j].BBox.Top()
		})
	} else {
		sort.SliceStable(runs, func(i, j int) bool {
			return runs[i].BBox.Left() < runs[j].BBox.Left()
		})
	}

	line := Line{
		Runs:          runs,
		Mode:          mode,
		BBox:          runs[0].BBox,
		WordGapFactor: c.config.WordGapFactor,
	}

	baselineSum := 0.0
	for _, r := range runs {
		line.BBox = line.BBox.Union(r.BBox)
		baselineSum += r.Baseline
		if r.BBox.Height > line.Height {
			line.Height = r.BBox.Height
		}
	}
	line.Baseline = baselineSum / float64(len(runs))

	return line
}

// maxFloat returns the larger of two float64 values.
func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
