package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-modelgen/internal/prompt"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
)

func runGenerate(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newCommonFlags("generate")
	flags.fs.StringVar(&flags.file.OutputDir, "out", "", "output directory (default \""+orchestrator.DefaultOutputDir+"\")")
	flags.fs.BoolVar(&flags.file.Debug, "debug", false, "make generated code print intermediate shapes")
	flags.fs.BoolVar(&flags.file.Yes, "yes", false, "overwrite existing artifacts without asking")
	flags.fs.Var(targetList{values: &flags.file.Targets}, "target", "comma separated targets to render (default all)")
	if err := flags.parse(args); err != nil {
		return err
	}

	src, err := flags.document()
	if err != nil {
		return err
	}

	var extra []orchestrator.Option
	if !flags.file.Yes {
		extra = append(extra, orchestrator.WithPrompt(prompt.NewSurvey()))
	}

	result, err := flags.orchestrator(extra...).Generate(ctx, flags.request(src))
	if err != nil {
		return err
	}
	for _, path := range result.Written {
		fmt.Fprintln(stdout, path)
	}
	return nil
}
