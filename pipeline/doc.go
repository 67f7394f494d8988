// Package pipeline executes the per-page layout stages across a document.
//
// A [Scheduler] fans pages out over a bounded worker pool, runs the
// index/cluster/segment/sequence stages for each page, and collects the
// results into an index-addressed slot per page, so completion order
// never affects document order. Page state is private to its worker; the
// only synchronization point is result collection.
//
// A fault while processing one page is retried once and then degrades
// that page alone - the rest of the document is unaffected. Cancelling
// the context lets in-flight pages finish but submits no new ones;
// the assembled document marks the gap pages as skipped.
package pipeline
