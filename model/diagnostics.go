package model

// PageDiagnostics records the recoverable problems encountered while
// reconstructing one page. A page with diagnostics still produced a
// result; the engine favors a complete, slightly degraded document over
// failing a whole batch for one bad page.
type PageDiagnostics struct {
	// PageIndex is the page this record belongs to.
	PageIndex int

	// DroppedRuns counts runs discarded for degenerate geometry.
	DroppedRuns int

	// Degraded is set when the page pipeline faulted and the page yields
	// an empty or partial result.
	Degraded bool

	// Retried is set when the page pipeline faulted once and was re-run.
	Retried bool

	// Fault holds the fault message for a degraded page, empty otherwise.
	Fault string

	// Skipped is set when the page was never dispatched because the
	// document was cancelled before its turn.
	Skipped bool
}

// Clean reports whether the page was processed without incident.
func (d PageDiagnostics) Clean() bool {
	return d.DroppedRuns == 0 && !d.Degraded && !d.Skipped
}

// Summary aggregates diagnostics across all pages of a document.
type Summary struct {
	// PagesProcessed counts pages that produced a full result.
	PagesProcessed int

	// PagesDegraded counts pages that faulted and yielded an empty or
	// partial result.
	PagesDegraded int

	// PagesSkipped counts pages never dispatched due to cancellation.
	PagesSkipped int

	// DroppedRuns is the total number of runs discarded for degenerate
	// geometry across all pages.
	DroppedRuns int
}

// Clean reports whether the whole document was processed without incident.
func (s Summary) Clean() bool {
	return s.PagesDegraded == 0 && s.PagesSkipped == 0 && s.DroppedRuns == 0
}
