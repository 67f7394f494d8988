package layout

import (
	"testing"

	"github.com/mboros1/fast-pdf-parser/model"
)

// makeRun creates a horizontal run whose baseline sits on its bottom edge.
func makeRun(x, y, w, h float64, s string) model.TextRun {
	return model.TextRun{
		Text:     s,
		BBox:     model.NewBBox(x, y, w, h),
		Baseline: y,
		FontSize: h,
		Mode:     model.Horizontal,
	}
}

func TestLineClusterer_EmptyInput(t *testing.T) {
	lines, dropped := NewLineClusterer().Cluster(nil)
	if lines != nil {
		t.Errorf("expected nil lines for empty input, got %d", len(lines))
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestLineClusterer_SingleBaseline(t *testing.T) {
	// Three runs on one baseline with word-sized gaps, deliberately out
	// of paint order.
	runs := []model.TextRun{
		makeRun(120, 700, 40, 10, "ordered"),
		makeRun(72, 700, 40, 10, "runs"),
		makeRun(170, 700, 40, 10, "nicely"),
	}

	lines, dropped := NewLineClusterer().Cluster(runs)

	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].RunCount() != 3 {
		t.Fatalf("expected 3 runs in line, got %d", lines[0].RunCount())
	}

	// Run-order invariant: ascending X.
	for i := 1; i < len(lines[0].Runs); i++ {
		if lines[0].Runs[i].BBox.Left() < lines[0].Runs[i-1].BBox.Left() {
			t.Error("runs within a line must be ordered by ascending X")
		}
	}
	if got := lines[0].Text(); got != "runs ordered nicely" {
		t.Errorf("expected %q, got %q", "runs ordered nicely", got)
	}
}

func TestLineClusterer_GapSplitsSameBaseline(t *testing.T) {
	// Same baseline, but a 60-point gap between 10-point runs: unrelated
	// text (e.g. adjacent table cells) must not merge into one line.
	runs := []model.TextRun{
		makeRun(72, 700, 40, 10, "left cell"),
		makeRun(172, 700, 40, 10, "right cell"),
	}

	lines, _ := NewLineClusterer().Cluster(runs)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines for gapped runs, got %d", len(lines))
	}
}

func TestLineClusterer_BaselineTolerance(t *testing.T) {
	c := NewLineClusterer()

	// 2 points of baseline jitter at 10-point text stays on one line.
	jittered := []model.TextRun{
		makeRun(72, 700, 40, 10, "a"),
		makeRun(115, 702, 40, 10, "b"),
	}
	lines, _ := c.Cluster(jittered)
	if len(lines) != 1 {
		t.Errorf("2pt jitter at 10pt text should share a line, got %d lines", len(lines))
	}

	// 10 points apart is a different line.
	separate := []model.TextRun{
		makeRun(72, 700, 40, 10, "a"),
		makeRun(115, 690, 40, 10, "b"),
	}
	lines, _ = c.Cluster(separate)
	if len(lines) != 2 {
		t.Errorf("10pt apart should be separate lines, got %d", len(lines))
	}
}

func TestLineClusterer_DropsDegenerateRuns(t *testing.T) {
	runs := []model.TextRun{
		makeRun(72, 700, 40, 10, "good"),
		makeRun(0, 0, 0, 0, "degenerate"),
		makeRun(115, 700, 40, 10, "also good"),
	}

	lines, dropped := NewLineClusterer().Cluster(runs)

	if dropped != 1 {
		t.Errorf("expected 1 dropped run, got %d", dropped)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].RunCount() != 2 {
		t.Errorf("expected 2 surviving runs, got %d", lines[0].RunCount())
	}
}

func TestLineClusterer_EveryRunAssignedOnce(t *testing.T) {
	// A small page worth of runs over several baselines.
	var runs []model.TextRun
	for row := 0; row < 5; row++ {
		y := 700 - float64(row)*15
		for col := 0; col < 4; col++ {
			runs = append(runs, makeRun(72+float64(col)*45, y, 40, 10, "w"))
		}
	}

	lines, dropped := NewLineClusterer().Cluster(runs)

	total := 0
	for _, l := range lines {
		total += l.RunCount()
	}
	if total+dropped != len(runs) {
		t.Errorf("runs must be partitioned: %d in lines + %d dropped != %d input",
			total, dropped, len(runs))
	}
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
}

func TestLineClusterer_VerticalRunsClusterSeparately(t *testing.T) {
	runs := []model.TextRun{
		makeRun(72, 700, 40, 10, "horizontal"),
		{
			Text:     "上",
			BBox:     model.NewBBox(300, 690, 10, 10),
			Baseline: 690,
			FontSize: 10,
			Mode:     model.Vertical,
		},
		{
			Text:     "下",
			BBox:     model.NewBBox(300, 676, 10, 10),
			Baseline: 676,
			FontSize: 10,
			Mode:     model.Vertical,
		},
	}

	lines, _ := NewLineClusterer().Cluster(runs)

	if len(lines) != 2 {
		t.Fatalf("expected 1 horizontal + 1 vertical line, got %d", len(lines))
	}

	var vertical *Line
	for i := range lines {
		if lines[i].Mode == model.Vertical {
			vertical = &lines[i]
		}
	}
	if vertical == nil {
		t.Fatal("expected a vertical line")
	}
	if vertical.RunCount() != 2 {
		t.Fatalf("expected 2 runs in vertical line, got %d", vertical.RunCount())
	}
	// Vertical lines read top to bottom.
	if vertical.Runs[0].Text != "上" || vertical.Runs[1].Text != "下" {
		t.Errorf("vertical line should read top to bottom, got %q then %q",
			vertical.Runs[0].Text, vertical.Runs[1].Text)
	}
}

func TestLine_TextSpacing(t *testing.T) {
	// A visible gap between runs becomes a space; touching runs join.
	touching := []model.TextRun{
		makeRun(72, 700, 30, 10, "data"),
		makeRun(102.5, 700, 30, 10, "base"),
	}
	lines, _ := NewLineClusterer().Cluster(touching)
	if got := lines[0].Text(); got != "database" {
		t.Errorf("touching runs should join, got %q", got)
	}

	gapped := []model.TextRun{
		makeRun(72, 700, 30, 10, "two"),
		makeRun(108, 700, 30, 10, "words"),
	}
	lines, _ = NewLineClusterer().Cluster(gapped)
	if got := lines[0].Text(); got != "two words" {
		t.Errorf("gapped runs should get a space, got %q", got)
	}
}

func TestLine_TextSpacingConfigurable(t *testing.T) {
	// A 6 point gap at 10 point text is a word break with the default
	// factor but letter spacing with a wider one.
	runs := []model.TextRun{
		makeRun(72, 700, 30, 10, "two"),
		makeRun(108, 700, 30, 10, "words"),
	}

	config := DefaultLineConfig()
	config.WordGapFactor = 0.8
	lines, _ := NewLineClustererWithConfig(config).Cluster(runs)
	if got := lines[0].Text(); got != "twowords" {
		t.Errorf("wide factor should join runs, got %q", got)
	}

	config.WordGapFactor = 0.1
	lines, _ = NewLineClustererWithConfig(config).Cluster(runs)
	if got := lines[0].Text(); got != "two words" {
		t.Errorf("narrow factor should split runs, got %q", got)
	}
}
