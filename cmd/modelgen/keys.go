package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/layers"
	"github.com/goliatone/go-modelgen/pkg/npz"
)

type keyRecord struct {
	Key      string `json:"key"`
	Module   string `json:"module"`
	Layer    string `json:"layer"`
	Weight   string `json:"weight"`
	Shape    []int  `json:"shape"`
	Optional bool   `json:"optional"`
}

func runKeys(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newCommonFlags("keys")
	asJSON := flags.fs.Bool("json", false, "print keys with their shapes as JSON")
	withShapes := flags.fs.Bool("shapes", false, "print the expected shape next to every key")
	zerosPath := flags.fs.String("zeros", "", "also write a zero-filled float32 .npz with every key to this path")
	if err := flags.parse(args); err != nil {
		return err
	}

	src, err := flags.document()
	if err != nil {
		return err
	}
	models, err := flags.orchestrator().Build(ctx, flags.request(src))
	if err != nil {
		return err
	}
	entries := exportkeys.Entries(models...)
	if *zerosPath != "" {
		if err := writeZeros(*zerosPath, entries); err != nil {
			return err
		}
	}

	if *asJSON {
		records := make([]keyRecord, 0, len(entries))
		for _, entry := range entries {
			records = append(records, keyRecord(entry))
		}
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	for _, entry := range entries {
		line := entry.Key
		if *withShapes {
			line += " " + layers.TupleLiteral(entry.Shape...)
			if entry.Optional {
				line += " optional"
			}
		}
		if _, err := fmt.Fprintln(stdout, strings.TrimSpace(line)); err != nil {
			return err
		}
	}
	return nil
}

func writeZeros(path string, entries []exportkeys.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("keys: create %s: %w", path, err)
	}
	if err := npz.WriteZeros(file, entries); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("keys: write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("keys: close %s: %w", path, err)
	}
	klog.Infof("wrote %d zero-filled arrays to %s", len(entries), path)
	return nil
}
