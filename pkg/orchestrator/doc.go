// Package orchestrator wires the loader → validator → model builder →
// renderer → writer pipeline, providing dependency injection friendly helpers
// for consumers that prefer a single entry point.
package orchestrator
