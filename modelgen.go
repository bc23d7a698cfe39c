// Package modelgen turns one declarative description of feed-forward networks
// into a training-side PyTorch module, an inference-side Rust module and a
// script that exports trained parameters under the keys the inference side
// loads.
package modelgen

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-modelgen/internal/document/loader"
	"github.com/goliatone/go-modelgen/pkg/document"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/templates"
)

// Config aliases orchestrator.Config so callers can stay on the root package.
type Config = orchestrator.Config

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Artifact aliases render.Artifact.
type Artifact = render.Artifact

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// EmbeddedTemplates exposes the built-in target templates so callers can copy
// them as a starting point for a template directory.
func EmbeddedTemplates() fs.FS {
	return templates.FS()
}

// Generate loads the document at location, builds every model it declares and
// writes all artifacts to cfg.OutputDir.
func Generate(ctx context.Context, location string, cfg Config, options ...orchestrator.Option) (*Result, error) {
	src, err := document.ParseSource(location)
	if err != nil {
		return nil, err
	}
	options = append([]orchestrator.Option{orchestrator.WithConfig(cfg)}, options...)
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: src})
}

// Render is Generate without writing: artifacts are returned in memory.
func Render(ctx context.Context, location string, cfg Config, options ...orchestrator.Option) (*Result, error) {
	src, err := document.ParseSource(location)
	if err != nil {
		return nil, err
	}
	options = append([]orchestrator.Option{orchestrator.WithConfig(cfg)}, options...)
	return orchestrator.New(options...).Render(ctx, orchestrator.Request{Source: src})
}
