package pipeline

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mboros1/fast-pdf-parser/layout"
	"github.com/mboros1/fast-pdf-parser/model"
)

// PageResult holds the blocks recovered from one page, in reading order,
// together with the diagnostics gathered while producing them. A degraded
// or skipped result carries no blocks.
type PageResult struct {
	// PageIndex is the zero-based position of the page in the document.
	PageIndex int

	// Blocks are the page's text blocks in reading order.
	Blocks []layout.Block

	// Diagnostics records dropped runs, retries, and faults for the page.
	Diagnostics model.PageDiagnostics
}

// Text returns the page text with blocks separated by blank lines.
func (r PageResult) Text() string {
	parts := make([]string, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		if t := b.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// BlockCount returns the number of blocks on the page.
func (r PageResult) BlockCount() int {
	return len(r.Blocks)
}

// Empty reports whether the page produced no blocks.
func (r PageResult) Empty() bool {
	return len(r.Blocks) == 0
}

// runPage is swapped out by tests to inject page faults.
var runPage = executePage

// executePage runs the full layout pipeline for one page. A panic in any
// stage is converted to an error so a malformed page cannot take down the
// scheduler.
func executePage(page model.Page, cfg Config) (result PageResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = eris.Errorf("pipeline: page %d fault: %v", page.Index, p)
		}
	}()

	result = PageResult{
		PageIndex:   page.Index,
		Diagnostics: model.PageDiagnostics{PageIndex: page.Index},
	}

	idx := layout.NewRunIndex(page.Runs)
	lines, dropped := layout.NewLineClustererWithConfig(cfg.Line).Cluster(page.Runs)
	blocks := layout.NewBlockSegmenterWithConfig(cfg.Block).Segment(lines, idx)

	result.Blocks = layout.NewSequencerWithConfig(cfg.Sequence).Order(blocks)
	result.Diagnostics.DroppedRuns = dropped
	return result, nil
}
