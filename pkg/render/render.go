package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render/template"
)

// Artifact is the rendered content of one target, not yet written anywhere.
type Artifact struct {
	Target   string
	Filename string
	Content  []byte
}

// Render projects models onto target and executes its template.
func Render(ctx context.Context, engine template.TemplateRenderer, target Target, models []*model.Model, options Options) (Artifact, error) {
	if engine == nil {
		return Artifact{}, errors.New("render: template renderer is required")
	}
	if target == nil {
		return Artifact{}, errors.New("render: target is required")
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	out, err := engine.RenderTemplate(target.TemplateID(), target.Facts(models, options))
	if err != nil {
		return Artifact{}, fmt.Errorf("render: target %q: %w", target.Name(), err)
	}
	return Artifact{
		Target:   target.Name(),
		Filename: target.Filename(),
		Content:  []byte(out),
	}, nil
}

// RenderAll renders every target of registry in name order. Either every
// artifact is returned or none is.
func RenderAll(ctx context.Context, engine template.TemplateRenderer, registry *Registry, models []*model.Model, options Options) ([]Artifact, error) {
	if registry == nil {
		return nil, errors.New("render: registry is required")
	}
	names := registry.List()
	artifacts := make([]Artifact, 0, len(names))
	for _, name := range names {
		target, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		artifact, err := Render(ctx, engine, target, models, options)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}
