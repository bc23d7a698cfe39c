package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-modelgen/pkg/render/template"
)

// DefaultExtension is appended to template identifiers that carry none.
const DefaultExtension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
	passthru   []gotemplatepkg.Option
}

// WithBaseDir loads templates from a directory on disk. When combined with
// WithFS the directory wins and the fs.FS serves as fallback.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically the embedded defaults.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers filters (pongo2.FilterFunction values) or global
// helper functions on top of Filters.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		for name, fn := range funcs {
			if cfg.templateFn == nil {
				cfg.templateFn = make(map[string]any, len(funcs))
			}
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			if cfg.globalData == nil {
				cfg.globalData = make(map[string]any, len(data))
			}
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions forwards options to the underlying go-template
// renderer. They apply after the options above, so they win on conflicts.
func WithGoTemplateOptions(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.passthru = append(cfg.passthru, options...)
	}
}

// Engine is a go-template renderer that can also answer HasTemplate. Filters
// and globals flow through go-template's own registration.
type Engine struct {
	*gotemplatepkg.Engine

	sources []fs.FS
	ext     string
}

var (
	_ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.Lookup           = (*Engine)(nil)
)

// pongo2 keeps filters in a process-wide map without locking, and go-template
// writes to it while constructing a renderer.
var constructMu sync.Mutex

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	funcs := Filters()
	for name, fn := range cfg.templateFn {
		if name == "" || fn == nil {
			continue
		}
		funcs[name] = fn
	}

	engine := &Engine{ext: cfg.extension}
	goOptions := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
		gotemplatepkg.WithTemplateFunc(funcs),
		gotemplatepkg.WithGlobalData(cfg.globalData),
	}
	if cfg.baseDir != "" {
		if _, err := os.Stat(cfg.baseDir); err != nil {
			return nil, fmt.Errorf("gotemplate: template dir: %w", err)
		}
		goOptions = append(goOptions, gotemplatepkg.WithBaseDir(cfg.baseDir))
		engine.sources = append(engine.sources, os.DirFS(cfg.baseDir))
	}
	if cfg.templates != nil {
		goOptions = append(goOptions, gotemplatepkg.WithFS(cfg.templates))
		engine.sources = append(engine.sources, cfg.templates)
	}
	goOptions = append(goOptions, cfg.passthru...)

	constructMu.Lock()
	renderer, err := gotemplatepkg.NewRenderer(goOptions...)
	constructMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	engine.Engine = renderer
	return engine, nil
}

// RegisterFilter registers a template filter. Filters are process-wide in
// pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	constructMu.Lock()
	defer constructMu.Unlock()
	if err := e.Engine.RegisterFilter(name, fn); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}
	return nil
}

// HasTemplate reports whether name resolves to a file in any template source,
// the directory first.
func (e *Engine) HasTemplate(name string) bool {
	if e == nil || e.Engine == nil {
		return false
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	for _, source := range e.sources {
		if info, err := fs.Stat(source, path); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
