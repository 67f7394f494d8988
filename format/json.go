// Package format renders assembled documents into interchange formats.
// The JSON layout mirrors the document structure: pages hold blocks,
// blocks hold lines, and positions are optional bbox arrays in PDF
// coordinates as [x0, y0, x1, y1].
package format

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/mboros1/fast-pdf-parser/layout"
	"github.com/mboros1/fast-pdf-parser/model"
	"github.com/mboros1/fast-pdf-parser/pipeline"
)

// JSONConfig controls what the serializer emits.
type JSONConfig struct {
	// IncludeBBoxes emits a bbox array for every block and line.
	IncludeBBoxes bool

	// IncludeRuns emits the individual text runs inside each line,
	// with font size and writing direction.
	IncludeRuns bool

	// Indent, when non-empty, pretty-prints with the given indent string.
	Indent string
}

// DefaultJSONConfig returns a JSONConfig with positions included and
// runs omitted.
func DefaultJSONConfig() JSONConfig {
	return JSONConfig{
		IncludeBBoxes: true,
	}
}

// JSONSerializer renders a Document as JSON.
type JSONSerializer struct {
	config JSONConfig
}

// NewJSONSerializer creates a serializer with DefaultJSONConfig.
func NewJSONSerializer() *JSONSerializer {
	return NewJSONSerializerWithConfig(DefaultJSONConfig())
}

// NewJSONSerializerWithConfig creates a serializer with custom settings.
func NewJSONSerializerWithConfig(config JSONConfig) *JSONSerializer {
	return &JSONSerializer{config: config}
}

// Marshal renders the document as a JSON byte slice.
func (s *JSONSerializer) Marshal(doc *pipeline.Document) ([]byte, error) {
	if doc == nil {
		return nil, eris.New("format: nil document")
	}
	tree := s.document(doc)

	var (
		data []byte
		err  error
	)
	if s.config.Indent != "" {
		data, err = json.MarshalIndent(tree, "", s.config.Indent)
	} else {
		data, err = json.Marshal(tree)
	}
	if err != nil {
		return nil, eris.Wrap(err, "format: encoding document")
	}
	return data, nil
}

// Write renders the document as JSON to w.
func (s *JSONSerializer) Write(w io.Writer, doc *pipeline.Document) error {
	data, err := s.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "format: writing document")
	}
	return nil
}

type documentJSON struct {
	Pages       []pageJSON  `json:"pages"`
	Diagnostics summaryJSON `json:"diagnostics"`
}

type summaryJSON struct {
	PagesProcessed int `json:"pages_processed"`
	PagesDegraded  int `json:"pages_degraded,omitempty"`
	PagesSkipped   int `json:"pages_skipped,omitempty"`
	DroppedRuns    int `json:"dropped_runs,omitempty"`
}

type pageJSON struct {
	Page        int         `json:"page"`
	Degraded    bool        `json:"degraded,omitempty"`
	Skipped     bool        `json:"skipped,omitempty"`
	Fault       string      `json:"fault,omitempty"`
	DroppedRuns int         `json:"dropped_runs,omitempty"`
	Blocks      []blockJSON `json:"blocks"`
}

type blockJSON struct {
	Column   int         `json:"column"`
	Spanning bool        `json:"spanning,omitempty"`
	BBox     *[4]float64 `json:"bbox,omitempty"`
	Lines    []lineJSON  `json:"lines"`
}

type lineJSON struct {
	Text string      `json:"text"`
	BBox *[4]float64 `json:"bbox,omitempty"`
	Runs []runJSON   `json:"runs,omitempty"`
}

type runJSON struct {
	Text      string      `json:"text"`
	BBox      *[4]float64 `json:"bbox,omitempty"`
	FontSize  float64     `json:"font_size"`
	Direction string      `json:"direction,omitempty"`
}

func (s *JSONSerializer) document(doc *pipeline.Document) documentJSON {
	out := documentJSON{
		Pages: make([]pageJSON, 0, len(doc.Results)),
		Diagnostics: summaryJSON{
			PagesProcessed: doc.Summary.PagesProcessed,
			PagesDegraded:  doc.Summary.PagesDegraded,
			PagesSkipped:   doc.Summary.PagesSkipped,
			DroppedRuns:    doc.Summary.DroppedRuns,
		},
	}
	for _, r := range doc.Results {
		out.Pages = append(out.Pages, s.page(r))
	}
	return out
}

func (s *JSONSerializer) page(r pipeline.PageResult) pageJSON {
	p := pageJSON{
		Page:        r.PageIndex,
		Degraded:    r.Diagnostics.Degraded,
		Skipped:     r.Diagnostics.Skipped,
		Fault:       r.Diagnostics.Fault,
		DroppedRuns: r.Diagnostics.DroppedRuns,
		Blocks:      make([]blockJSON, 0, len(r.Blocks)),
	}
	for _, b := range r.Blocks {
		p.Blocks = append(p.Blocks, s.block(b))
	}
	return p
}

func (s *JSONSerializer) block(b layout.Block) blockJSON {
	out := blockJSON{
		Column:   b.Column,
		Spanning: b.Spanning,
		BBox:     s.bbox(b.BBox),
		Lines:    make([]lineJSON, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, s.line(l))
	}
	return out
}

func (s *JSONSerializer) line(l layout.Line) lineJSON {
	out := lineJSON{
		Text: l.Text(),
		BBox: s.bbox(l.BBox),
	}
	if s.config.IncludeRuns {
		out.Runs = make([]runJSON, 0, len(l.Runs))
		for _, r := range l.Runs {
			out.Runs = append(out.Runs, runJSON{
				Text:      r.Text,
				BBox:      s.bbox(r.BBox),
				FontSize:  r.FontSize,
				Direction: r.Direction.String(),
			})
		}
	}
	return out
}

func (s *JSONSerializer) bbox(b model.BBox) *[4]float64 {
	if !s.config.IncludeBBoxes {
		return nil
	}
	return &[4]float64{b.Left(), b.Bottom(), b.Right(), b.Top()}
}
