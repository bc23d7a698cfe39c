package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/document"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
)

// DefaultConfigFile is read from the working directory when -config is not
// given and the file exists.
const DefaultConfigFile = "modelgen.yaml"

// fileConfig mirrors modelgen.yaml.
type fileConfig struct {
	TemplateDir    string        `yaml:"template_dir"`
	OutputDir      string        `yaml:"output_dir"`
	Debug          bool          `yaml:"debug"`
	SkipValidation bool          `yaml:"skip_validation"`
	Yes            bool          `yaml:"yes"`
	Targets        []string      `yaml:"targets"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	fs     *flag.FlagSet
	config string
	file   fileConfig
}

func newCommonFlags(name string) *commonFlags {
	c := &commonFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	c.fs.StringVar(&c.config, "config", "", "YAML config file (defaults to ./"+DefaultConfigFile+" when present)")
	c.fs.StringVar(&c.file.TemplateDir, "templates", "", "directory with template overrides")
	c.fs.BoolVar(&c.file.SkipValidation, "skip-validation", false, "skip structural schema validation")
	c.fs.DurationVar(&c.file.HTTPTimeout, "http-timeout", 30*time.Second, "timeout for documents fetched over HTTP")
	return c
}

// parse parses args, then layers the config file under the flags that were
// set explicitly.
func (c *commonFlags) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	path := c.config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path == "" {
		return nil
	}

	loaded, err := loadConfig(path)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	c.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	merged := loaded
	if set["templates"] || merged.TemplateDir == "" {
		merged.TemplateDir = c.file.TemplateDir
	}
	if set["out"] || merged.OutputDir == "" {
		merged.OutputDir = c.file.OutputDir
	}
	if set["debug"] {
		merged.Debug = c.file.Debug
	}
	if set["skip-validation"] {
		merged.SkipValidation = c.file.SkipValidation
	}
	if set["yes"] {
		merged.Yes = c.file.Yes
	}
	if set["target"] || len(merged.Targets) == 0 {
		merged.Targets = c.file.Targets
	}
	if set["http-timeout"] || merged.HTTPTimeout == 0 {
		merged.HTTPTimeout = c.file.HTTPTimeout
	}
	c.file = merged
	return nil
}

func loadConfig(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *commonFlags) document() (document.Source, error) {
	if c.fs.NArg() == 0 {
		return nil, fmt.Errorf("%w: %s needs a DOCUMENT argument", errUsage, c.fs.Name())
	}
	return document.ParseSource(c.fs.Arg(0))
}

func (c *commonFlags) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithConfig(orchestrator.Config{
			TemplateDir: c.file.TemplateDir,
			OutputDir:   c.file.OutputDir,
			Debug:       c.file.Debug,
		}),
		orchestrator.WithLoader(modelgen.NewLoader(document.WithHTTPFallback(c.file.HTTPTimeout))),
	}
	return orchestrator.New(append(options, extra...)...)
}

func (c *commonFlags) request(src document.Source) orchestrator.Request {
	return orchestrator.Request{
		Source:               src,
		SkipSchemaValidation: c.file.SkipValidation,
		Targets:              c.file.Targets,
	}
}

// targetList implements flag.Value for a comma separated -target flag.
type targetList struct {
	values *[]string
}

func (t targetList) String() string {
	if t.values == nil {
		return ""
	}
	return strings.Join(*t.values, ",")
}

func (t targetList) Set(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*t.values = append(*t.values, part)
		}
	}
	if len(*t.values) == 0 {
		return errors.New("at least one target is required")
	}
	return nil
}
