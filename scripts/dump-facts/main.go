package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-modelgen/pkg/document"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
)

func main() {
	var (
		documentPath = flag.String("document", "examples/mnist/model.yaml", "model document path or URL")
		outputDir    = flag.String("output", "templates/testdata", "directory receiving one <target>.facts.json per target")
		debug        = flag.Bool("debug", false, "project facts with debug prints enabled")
	)
	flag.Parse()

	ctx := context.Background()

	src, err := document.ParseSource(*documentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid document: %v\n", err)
		os.Exit(1)
	}
	models, err := orchestrator.New().Build(ctx, orchestrator.Request{Source: src})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build models: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
		os.Exit(1)
	}

	registry := render.DefaultRegistry()
	for _, name := range registry.List() {
		target := registry.MustGet(name)
		payload, err := json.MarshalIndent(target.Facts(models, render.Options{Debug: *debug}), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode %s facts: %v\n", name, err)
			os.Exit(1)
		}
		path := filepath.Join(*outputDir, name+".facts.json")
		if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Facts for %s written to %s\n", name, path)
	}
}
