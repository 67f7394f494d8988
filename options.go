package fastpdf

import (
	"go.uber.org/zap"

	"github.com/mboros1/fast-pdf-parser/pipeline"
)

// Options holds configuration for the extraction engine.
type Options struct {
	// Workers bounds the number of pages processed concurrently. Zero
	// selects one worker per CPU; negative counts are rejected by New.
	Workers int

	// BaselineTolerance is the baseline distance, as a fraction of font
	// size, within which runs merge into one line.
	BaselineTolerance float64

	// GapTolerance is the horizontal gap, as a multiple of font size,
	// beyond which runs on the same baseline start a new line.
	GapTolerance float64

	// DetectColumns enables multi-column page detection. When disabled,
	// every page is treated as a single column.
	DetectColumns bool

	// Logger receives per-page fault and retry events. Nil disables logging.
	Logger *zap.Logger

	// Progress, when set, is invoked after each page completes.
	Progress pipeline.ProgressFunc
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	cfg := pipeline.DefaultConfig()
	return Options{
		Workers:           cfg.Workers,
		BaselineTolerance: cfg.Line.BaselineTolerance,
		GapTolerance:      cfg.Line.GapTolerance,
		DetectColumns:     cfg.Block.DetectColumns,
	}
}

// config translates Options into the pipeline configuration.
func (o Options) config() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	cfg.Line.BaselineTolerance = o.BaselineTolerance
	cfg.Line.GapTolerance = o.GapTolerance
	cfg.Block.DetectColumns = o.DetectColumns
	cfg.Logger = o.Logger
	cfg.Progress = o.Progress
	return cfg
}
