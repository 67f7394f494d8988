package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mboros1/fast-pdf-parser/model"
)

// PageFunc receives completed pages during streaming extraction. Pages
// are delivered in ascending page order regardless of completion order.
// Returning an error stops further delivery and submission.
type PageFunc func(PageResult) error

// Scheduler runs the layout pipeline for every page of a document over a
// bounded worker pool. A Scheduler is safe for concurrent use; each call
// to Process works on its own result slots.
type Scheduler struct {
	cfg Config
	log *zap.Logger
}

// NewScheduler validates the configuration and returns a Scheduler.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "pipeline: invalid configuration")
	}
	return &Scheduler{cfg: cfg, log: cfg.logger()}, nil
}

// Process reconstructs every page and assembles the results into a
// Document. Results occupy the slot of their page index, so the output
// order matches the input order no matter how workers interleave.
//
// On cancellation the partial document is returned together with the
// context error. Pages already in flight run to completion; pages never
// dispatched are marked skipped.
func (s *Scheduler) Process(ctx context.Context, pages []model.Page) (*Document, error) {
	return s.process(ctx, pages, nil)
}

// ProcessStream is Process with incremental delivery: fn is invoked for
// each page as soon as it and all pages before it have completed. The
// assembled document is still returned at the end.
func (s *Scheduler) ProcessStream(ctx context.Context, pages []model.Page, fn PageFunc) (*Document, error) {
	return s.process(ctx, pages, fn)
}

func (s *Scheduler) process(ctx context.Context, pages []model.Page, fn PageFunc) (*Document, error) {
	start := time.Now()
	results := make([]PageResult, len(pages))
	filled := make([]bool, len(pages))

	var (
		mu        sync.Mutex
		done      int
		next      int // next slot to stream
		streamErr error
	)

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)

	dispatched := 0
	for i := range pages {
		if ctx.Err() != nil {
			break
		}
		mu.Lock()
		stop := streamErr != nil
		mu.Unlock()
		if stop {
			break
		}

		page := pages[i]
		slot := i
		dispatched++
		g.Go(func() error {
			res := s.processPage(page)

			mu.Lock()
			defer mu.Unlock()
			results[slot] = res
			filled[slot] = true
			done++
			if s.cfg.Progress != nil {
				s.cfg.Progress(done, len(pages))
			}
			for fn != nil && next < len(results) && filled[next] {
				if streamErr == nil {
					if err := fn(results[next]); err != nil {
						streamErr = err
					}
				}
				next++
			}
			return nil
		})
	}
	// Workers never return errors. Faults degrade the page instead.
	_ = g.Wait()

	for i := dispatched; i < len(pages); i++ {
		results[i] = PageResult{
			PageIndex: pages[i].Index,
			Diagnostics: model.PageDiagnostics{
				PageIndex: pages[i].Index,
				Skipped:   true,
			},
		}
	}

	doc := assemble(results, time.Since(start))

	if streamErr != nil {
		return doc, eris.Wrap(streamErr, "pipeline: page callback")
	}
	if err := ctx.Err(); err != nil {
		s.log.Warn("document cancelled",
			zap.Int("pages_done", doc.Summary.PagesProcessed+doc.Summary.PagesDegraded),
			zap.Int("pages_skipped", doc.Summary.PagesSkipped))
		return doc, eris.Wrap(err, "pipeline: document cancelled")
	}
	return doc, nil
}

// processPage runs one page, retrying a single time on fault. A second
// fault degrades the page instead of failing the document.
func (s *Scheduler) processPage(page model.Page) PageResult {
	res, err := runPage(page, s.cfg)
	if err == nil {
		return res
	}

	s.log.Warn("page fault, retrying",
		zap.Int("page", page.Index),
		zap.Error(err))

	res, err = runPage(page, s.cfg)
	if err == nil {
		res.Diagnostics.Retried = true
		return res
	}

	s.log.Error("page degraded after retry",
		zap.Int("page", page.Index),
		zap.Error(err))
	return PageResult{
		PageIndex: page.Index,
		Diagnostics: model.PageDiagnostics{
			PageIndex: page.Index,
			Degraded:  true,
			Retried:   true,
			Fault:     err.Error(),
		},
	}
}
