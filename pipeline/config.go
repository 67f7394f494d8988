package pipeline

import (
	"runtime"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mboros1/fast-pdf-parser/layout"
)

// ProgressFunc reports document progress. It receives the number of pages
// finished so far and the total page count. Calls are serialized and done
// is strictly increasing, so implementations need no locking of their own.
type ProgressFunc func(done, total int)

// Config controls scheduling and the layout stages applied to every page.
type Config struct {
	// Workers bounds the number of pages processed concurrently.
	Workers int

	// Line configures baseline clustering of text runs into lines.
	Line layout.LineConfig

	// Block configures block segmentation and column detection.
	Block layout.BlockConfig

	// Sequence configures reading-order assignment.
	Sequence layout.SequenceConfig

	// Logger receives per-page fault and retry events. Nil disables logging.
	Logger *zap.Logger

	// Progress, when set, is invoked after each page completes.
	Progress ProgressFunc
}

// DefaultConfig returns a Config with one worker per CPU and the default
// layout stage settings.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		Line:     layout.DefaultLineConfig(),
		Block:    layout.DefaultBlockConfig(),
		Sequence: layout.DefaultSequenceConfig(),
	}
}

// Validate reports whether the configuration can schedule work at all.
// A zero or negative worker count and negative tolerances are rejected
// rather than silently clamped.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return eris.Errorf("pipeline: worker count must be positive, got %d", c.Workers)
	}
	if c.Line.BaselineTolerance < 0 {
		return eris.Errorf("pipeline: baseline tolerance must be non-negative, got %g", c.Line.BaselineTolerance)
	}
	if c.Line.GapTolerance < 0 {
		return eris.Errorf("pipeline: gap tolerance must be non-negative, got %g", c.Line.GapTolerance)
	}
	if c.Line.WordGapFactor < 0 {
		return eris.Errorf("pipeline: word gap factor must be non-negative, got %g", c.Line.WordGapFactor)
	}
	if c.Block.GapThreshold <= 0 {
		return eris.Errorf("pipeline: block gap threshold must be positive, got %g", c.Block.GapThreshold)
	}
	if c.Block.MinGapWidth < 0 {
		return eris.Errorf("pipeline: column gap width must be non-negative, got %g", c.Block.MinGapWidth)
	}
	if c.Sequence.RowTolerance < 0 {
		return eris.Errorf("pipeline: row tolerance must be non-negative, got %g", c.Sequence.RowTolerance)
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
