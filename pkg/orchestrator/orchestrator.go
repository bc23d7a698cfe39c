package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	internalLoader "github.com/goliatone/go-modelgen/internal/document/loader"
	"github.com/goliatone/go-modelgen/internal/prompt"
	"github.com/goliatone/go-modelgen/pkg/document"
	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/render/template"
	"github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-modelgen/pkg/validation"
	"github.com/goliatone/go-modelgen/templates"
)

// DefaultOutputDir receives the artifacts when Config.OutputDir is empty.
const DefaultOutputDir = "models"

// Config carries the settings a generation run needs.
type Config struct {
	// TemplateDir overrides individual built-in templates with files on disk.
	// Templates missing from the directory fall back to the embedded ones.
	TemplateDir string

	// OutputDir is where artifacts are written.
	OutputDir string

	// Debug makes generated code print intermediate shapes.
	Debug bool
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the run configuration.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) {
		o.config = cfg
	}
}

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithValidator injects a structural validator.
func WithValidator(validator *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithTemplateRenderer injects the engine that executes target templates.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithTemplateFS replaces the embedded templates used as fallback.
func WithTemplateFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.templateFS = fsys
	}
}

// WithRegistry injects a target registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithPrompt asks driver before overwriting existing artifacts. Without a
// driver existing files are overwritten.
func WithPrompt(driver prompt.Driver) Option {
	return func(o *Orchestrator) {
		o.prompt = driver
	}
}

// Orchestrator coordinates the full pipeline from model document to written
// artifacts. It applies defaults (file/fs loader, embedded schema, embedded
// templates, built-in targets) while remaining open to dependency injection.
type Orchestrator struct {
	config        Config
	loader        document.Loader
	validator     *validation.Validator
	engine        template.TemplateRenderer
	templateFS    fs.FS
	registry      *render.Registry
	prompt        prompt.Driver
	writer        *writer
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Source identifies where the model document lives. Optional when
	// Document is supplied.
	Source document.Source

	// Document allows callers to bypass the loader when they already hold the
	// payload.
	Document *document.Document

	// SkipSchemaValidation bypasses the structural validator. The model
	// builder still rejects malformed records.
	SkipSchemaValidation bool

	// Debug enables debug prints for this request in addition to
	// Config.Debug.
	Debug bool

	// Targets restricts rendering to the named targets. Empty means all.
	Targets []string
}

// Result is the outcome of a run.
type Result struct {
	Models    []*model.Model
	Keys      []exportkeys.Entry
	Artifacts []render.Artifact
	// Written lists the artifact paths written to disk, in target order.
	Written []string
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config {
	return o.config
}

// Build loads, validates and builds every model of the requested document.
func (o *Orchestrator) Build(ctx context.Context, req Request) ([]*model.Model, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	if !req.SkipSchemaValidation {
		if err := o.validator.Validate(ctx, doc.JSON()).Err(); err != nil {
			return nil, fmt.Errorf("orchestrator: %s: %w", doc.Location(), err)
		}
	}

	records, err := doc.Records()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	models, err := model.BuildDocument(records)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build models: %w", err)
	}
	return models, nil
}

// Render runs Build and renders every requested target in memory.
func (o *Orchestrator) Render(ctx context.Context, req Request) (*Result, error) {
	models, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	options := render.Options{Debug: o.config.Debug || req.Debug}
	registry, err := o.targetRegistry(req.Targets)
	if err != nil {
		return nil, err
	}
	artifacts, err := render.RenderAll(ctx, o.engine, registry, models, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	return &Result{
		Models:    models,
		Keys:      exportkeys.Entries(models...),
		Artifacts: artifacts,
	}, nil
}

// Generate runs Render and writes the artifacts to Config.OutputDir. Nothing
// is written unless every target rendered and was staged on disk.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	written, err := o.writer.write(ctx, result.Artifacts)
	if err != nil {
		return nil, err
	}
	result.Written = written
	return result, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (document.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return document.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) targetRegistry(names []string) (*render.Registry, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: target registry is nil")
	}
	if len(names) == 0 {
		if len(o.registry.List()) == 0 {
			return nil, errors.New("orchestrator: no targets registered")
		}
		return o.registry, nil
	}

	subset := render.NewRegistry()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || subset.Has(name) {
			continue
		}
		target, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: target %q: %w", name, err)
		}
		if err := subset.Register(target); err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}
	return subset, nil
}

func (o *Orchestrator) applyDefaults() {
	if strings.TrimSpace(o.config.OutputDir) == "" {
		o.config.OutputDir = DefaultOutputDir
	}
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if o.validator == nil {
		validator, err := validation.NewValidator(context.Background())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default validator: %w", err)
			return
		}
		o.validator = validator
	}
	if o.templateFS == nil {
		o.templateFS = templates.FS()
	}
	if o.engine == nil {
		engineOptions := []gotemplate.Option{
			gotemplate.WithFS(o.templateFS),
			gotemplate.WithGlobalData(render.Globals()),
		}
		if dir := strings.TrimSpace(o.config.TemplateDir); dir != "" {
			engineOptions = append(engineOptions, gotemplate.WithBaseDir(dir))
		}
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default template renderer: %w", err)
			return
		}
		o.engine = engine
	}
	if o.registry == nil {
		o.registry = render.DefaultRegistry()
	}
	o.writer = &writer{dir: o.config.OutputDir, prompt: o.prompt}
}
