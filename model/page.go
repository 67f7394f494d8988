package model

// Page is one page worth of interpreter output: text runs in paint order
// plus the page dimensions. Pages are read-only inputs to the pipeline;
// no stage mutates a page or shares its runs with another page.
type Page struct {
	// Index is the page's position within the document (0-based).
	Index int

	// Width and Height are the page dimensions in points.
	Width  float64
	Height float64

	// Runs are the text runs in paint order, as produced by the
	// content-stream interpreter.
	Runs []TextRun
}

// NewPage creates a page from interpreter output.
func NewPage(index int, width, height float64, runs []TextRun) Page {
	return Page{
		Index:  index,
		Width:  width,
		Height: height,
		Runs:   runs,
	}
}

// RunCount returns the number of runs on the page.
func (p Page) RunCount() int {
	return len(p.Runs)
}

// IsEmpty reports whether the page has no runs at all.
func (p Page) IsEmpty() bool {
	return len(p.Runs) == 0
}
