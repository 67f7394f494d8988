// Package layout reconstructs the reading order of a page from positioned
// text runs. It turns the unordered paint stream delivered by a PDF
// content-stream interpreter into lines, blocks and columns, ordered the
// way a human reads them.
//
// # Pipeline
//
// The per-page pipeline runs four stages:
//
//   - [RunIndex] - spatial index over a page's runs for band, neighbor,
//     and gutter queries
//   - [LineClusterer] - groups runs into text lines by baseline and
//     horizontal proximity
//   - [BlockSegmenter] - groups lines into blocks, detecting multi-column
//     layouts from vertical gaps and horizontal bands
//   - [Sequencer] - orders blocks into the final reading sequence
//     (top-to-bottom, column-major across multi-column regions)
//
// # Configuration
//
// Each stage can be configured independently:
//
//	lc := layout.NewLineClustererWithConfig(layout.LineConfig{
//	    BaselineTolerance: 0.3,
//	    GapTolerance:      1.5,
//	})
//	lines, dropped := lc.Cluster(page.Runs)
//
// All tolerances are multipliers applied to font size, so the same
// configuration works across documents set at different sizes.
//
// Every stage is deterministic: running the pipeline twice on identical
// input yields identical output, regardless of the original paint order.
package layout
