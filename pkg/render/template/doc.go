// Package template defines the engine-agnostic seam the renderer drives. The
// gotemplate subpackage provides the pongo2-backed implementation.
package template
