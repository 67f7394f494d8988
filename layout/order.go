package layout

import (
	"math"
	"sort"
)

// SequenceConfig holds configuration for reading-order sequencing.
type SequenceConfig struct {
	// RowTolerance treats block tops within this many points as the same
	// row; blocks on the same row are ordered by ascending left edge
	// (default: 0.5).
	RowTolerance float64
}

// DefaultSequenceConfig returns sensible default configuration.
func DefaultSequenceConfig() SequenceConfig {
	return SequenceConfig{
		RowTolerance: 0.5,
	}
}

// Sequencer produces the final per-page block order: top-to-bottom for
// stacked content, column-major across multi-column regions, with
// full-width spanning blocks emitted at their natural vertical position
// relative to the column group. Sequencing is deterministic and stable -
// identical input always yields identical order.
type Sequencer struct {
	config SequenceConfig
}

// NewSequencer creates a sequencer with default configuration.
func NewSequencer() *Sequencer {
	return &Sequencer{
		config: DefaultSequenceConfig(),
	}
}

// NewSequencerWithConfig creates a sequencer with custom configuration.
func NewSequencerWithConfig(config SequenceConfig) *Sequencer {
	return &Sequencer{
		config: config,
	}
}

// Order returns the blocks in reading order with Index assigned. The
// input slice is not modified.
func (s *Sequencer) Order(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	s.sortByRow(sorted)

	if isMultiColumn(sorted) {
		sorted = s.columnMajor(sorted)
	}

	for i := range sorted {
		sorted[i].Index = i
	}
	return sorted
}

// sortByRow orders blocks top-to-bottom; blocks whose tops land within
// RowTolerance of each other count as one row and order left-to-right.
func (s *Sequencer) sortByRow(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		di := blocks[i].BBox.Top() - blocks[j].BBox.Top()
		if math.Abs(di) > s.config.RowTolerance {
			return di > 0 // top of page first
		}
		return blocks[i].BBox.Left() < blocks[j].BBox.Left()
	})
}

// columnMajor rearranges a top-to-bottom sequence into column-major
// order. Spanning blocks split the sequence into column groups: each
// group emits column 0 in full, then column 1, and so on, while the
// spanning blocks stay at their vertical positions between groups.
func (s *Sequencer) columnMajor(sorted []Block) []Block {
	out := make([]Block, 0, len(sorted))
	var group []Block

	flush := func() {
		if len(group) == 0 {
			return
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Column != group[j].Column {
				return group[i].Column < group[j].Column
			}
			di := group[i].BBox.Top() - group[j].BBox.Top()
			if math.Abs(di) > s.config.RowTolerance {
				return di > 0
			}
			return group[i].BBox.Left() < group[j].BBox.Left()
		})
		out = append(out, group...)
		group = nil
	}

	for _, b := range sorted {
		if b.Spanning {
			flush()
			out = append(out, b)
		} else {
			group = append(group, b)
		}
	}
	flush()

	return out
}

// isMultiColumn reports whether any block is tagged with a column past 0.
func isMultiColumn(blocks []Block) bool {
	for _, b := range blocks {
		if b.Column > 0 {
			return true
		}
	}
	return false
}
