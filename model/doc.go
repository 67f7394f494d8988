// Package model defines the data types shared by all stages of the layout
// engine: page geometry, positioned text runs as delivered by a PDF
// content-stream interpreter, input pages, and the diagnostics recorded
// while reconstructing reading order.
//
// All coordinates follow the PDF convention: the origin is the lower-left
// corner of the page and Y grows upward, so the top of the page has the
// largest Y values.
//
// Types in this package are plain values. A [TextRun] is immutable once
// handed to the engine, and a [Page] is only ever read by pipeline stages.
package model
