// Package fastpdf reconstructs the reading order of PDF pages from
// positioned text runs.
//
// A page arrives as an unordered bag of runs, each carrying its text and
// position on the page. The engine clusters runs into lines, segments
// lines into blocks, detects column layouts, and orders the blocks the
// way a person would read them.
//
// Basic usage:
//
//	engine, err := fastpdf.New(fastpdf.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	doc, err := engine.ExtractDocument(ctx, pages)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(doc.Text())
//
// Streaming delivery, one page at a time in page order:
//
//	_, err := engine.ExtractStream(ctx, pages, func(r pipeline.PageResult) error {
//	    fmt.Println(r.Text())
//	    return nil
//	})
//
// For finer control over the layout stages, the lower-level layout and
// pipeline packages are also available.
package fastpdf

import (
	"context"
	"sync/atomic"

	"github.com/mboros1/fast-pdf-parser/model"
	"github.com/mboros1/fast-pdf-parser/pipeline"
)

// Engine extracts documents with a fixed configuration. An Engine is
// safe for concurrent use and accumulates statistics across calls.
type Engine struct {
	scheduler *pipeline.Scheduler

	documents      atomic.Int64
	pagesProcessed atomic.Int64
	pagesDegraded  atomic.Int64
	pagesSkipped   atomic.Int64
	runsDropped    atomic.Int64
}

// Stats reports the work an Engine has done since it was created.
type Stats struct {
	// Documents counts completed ExtractDocument and ExtractStream calls.
	Documents int64

	// PagesProcessed counts pages that produced a full result.
	PagesProcessed int64

	// PagesDegraded counts pages that faulted and yielded an empty or
	// partial result.
	PagesDegraded int64

	// PagesSkipped counts pages never dispatched due to cancellation.
	PagesSkipped int64

	// RunsDropped counts runs discarded for degenerate geometry.
	RunsDropped int64
}

// New creates an Engine with the given options.
func New(opts Options) (*Engine, error) {
	scheduler, err := pipeline.NewScheduler(opts.config())
	if err != nil {
		return nil, err
	}
	return &Engine{scheduler: scheduler}, nil
}

// ExtractDocument reconstructs every page and returns the assembled
// document. Per-page faults degrade the affected page rather than
// failing the call; inspect the document's Summary or DiagnosticsError
// to surface them.
func (e *Engine) ExtractDocument(ctx context.Context, pages []model.Page) (*pipeline.Document, error) {
	doc, err := e.scheduler.Process(ctx, pages)
	e.record(doc)
	return doc, err
}

// ExtractStream reconstructs every page and delivers results to fn in
// ascending page order as they become available. The assembled document
// is still returned at the end.
func (e *Engine) ExtractStream(ctx context.Context, pages []model.Page, fn pipeline.PageFunc) (*pipeline.Document, error) {
	doc, err := e.scheduler.ProcessStream(ctx, pages, fn)
	e.record(doc)
	return doc, err
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Documents:      e.documents.Load(),
		PagesProcessed: e.pagesProcessed.Load(),
		PagesDegraded:  e.pagesDegraded.Load(),
		PagesSkipped:   e.pagesSkipped.Load(),
		RunsDropped:    e.runsDropped.Load(),
	}
}

func (e *Engine) record(doc *pipeline.Document) {
	if doc == nil {
		return
	}
	e.documents.Add(1)
	e.pagesProcessed.Add(int64(doc.Summary.PagesProcessed))
	e.pagesDegraded.Add(int64(doc.Summary.PagesDegraded))
	e.pagesSkipped.Add(int64(doc.Summary.PagesSkipped))
	e.runsDropped.Add(int64(doc.Summary.DroppedRuns))
}

// NewPage constructs an input page from its positioned runs. It is a
// convenience wrapper for callers that only import the root package; the
// model package offers the full input surface.
func NewPage(index int, width, height float64, runs []model.TextRun) model.Page {
	return model.NewPage(index, width, height, runs)
}

// NewRun constructs a horizontal text run from its text, bounding box
// corners (x0,y0)-(x1,y1), baseline, and font size.
func NewRun(text string, x0, y0, x1, y1, baseline, fontSize float64) model.TextRun {
	return model.NewRun(text, model.BBoxFromCorners(x0, y0, x1, y1), baseline, fontSize)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	engine := fastpdf.Must(fastpdf.New(fastpdf.DefaultOptions()))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
