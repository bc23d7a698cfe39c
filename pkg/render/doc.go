// Package render projects validated models onto the two generated targets and
// the export-key list, and drives the template engine that turns those facts
// into source text.
//
// Projection is pure: every fact is derived from an already validated model,
// so building facts never fails. Targets are looked up through a Registry so
// callers can add outputs without touching the orchestrator.
package render
