package pipeline

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/multierr"

	"github.com/mboros1/fast-pdf-parser/model"
)

// Document is the assembled result of processing every page. Results are
// ordered by page index and the slice always has one entry per input
// page, including degraded and skipped pages.
type Document struct {
	// Results holds one PageResult per page, in page order.
	Results []PageResult

	// Summary aggregates diagnostics across all pages.
	Summary model.Summary

	// Elapsed is the wall-clock time spent processing the document.
	Elapsed time.Duration
}

// assemble builds the Document and folds per-page diagnostics into the
// summary.
func assemble(results []PageResult, elapsed time.Duration) *Document {
	doc := &Document{Results: results, Elapsed: elapsed}
	for _, r := range results {
		d := r.Diagnostics
		switch {
		case d.Skipped:
			doc.Summary.PagesSkipped++
		case d.Degraded:
			doc.Summary.PagesDegraded++
		default:
			doc.Summary.PagesProcessed++
		}
		doc.Summary.DroppedRuns += d.DroppedRuns
	}
	return doc
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Results)
}

// Page returns the result for the given page index, or nil when the
// index is out of range.
func (d *Document) Page(index int) *PageResult {
	if index < 0 || index >= len(d.Results) {
		return nil
	}
	return &d.Results[index]
}

// Text returns the document text with pages separated by blank lines.
// Empty, degraded, and skipped pages contribute nothing.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Results))
	for _, r := range d.Results {
		if t := r.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Degraded returns the indices of pages that faulted and yielded an
// empty or partial result.
func (d *Document) Degraded() []int {
	var pages []int
	for _, r := range d.Results {
		if r.Diagnostics.Degraded {
			pages = append(pages, r.PageIndex)
		}
	}
	return pages
}

// DiagnosticsError combines every page fault into one error, or returns
// nil when no page degraded. Skipped pages and dropped runs are counted
// in the summary but are not faults.
func (d *Document) DiagnosticsError() error {
	var err error
	for _, r := range d.Results {
		if r.Diagnostics.Degraded {
			err = multierr.Append(err, eris.Errorf("page %d: %s", r.PageIndex, r.Diagnostics.Fault))
		}
	}
	return err
}
