package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-modelgen/internal/prompt"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// ErrOverwriteDeclined is returned when the operator refuses to replace an
// existing artifact. No artifact is written in that case.
var ErrOverwriteDeclined = errors.New("orchestrator: overwrite declined")

type writer struct {
	dir    string
	prompt prompt.Driver
}

// write stages every artifact in a temporary file next to its destination and
// renames them into place only once all of them are on disk. A failure while
// staging leaves the output directory as it was.
func (w *writer) write(ctx context.Context, artifacts []render.Artifact) ([]string, error) {
	if err := w.checkDestinations(ctx, artifacts); err != nil {
		return nil, err
	}

	klog.V(1).Infof("writing %d artifacts to %s", len(artifacts), w.dir)
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("orchestrator: create output dir: %w", err)
	}

	staged := make([]string, 0, len(artifacts))
	defer func() {
		for _, tmp := range staged {
			if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
				klog.Warningf("remove staged file %s: %v", tmp, err)
			}
		}
	}()
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tmp, err := stage(filepath.Join(w.dir, artifact.Filename), artifact.Content)
		if tmp != "" {
			staged = append(staged, tmp)
		}
		if err != nil {
			return nil, err
		}
	}

	written := make([]string, 0, len(artifacts))
	for i, artifact := range artifacts {
		path := filepath.Join(w.dir, artifact.Filename)
		if err := os.Rename(staged[i], path); err != nil {
			return written, fmt.Errorf("orchestrator: write %s: %w", path, err)
		}
		klog.Infof("wrote %s (%s, target %s)", path, humanize.Bytes(uint64(len(artifact.Content))), artifact.Target)
		written = append(written, path)
	}
	return written, nil
}

func stage(path string, content []byte) (string, error) {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	tmp := file.Name()
	if _, err := file.Write(content); err != nil {
		file.Close()
		return tmp, fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return tmp, fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return tmp, fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	return tmp, nil
}

// checkDestinations rejects destinations that are directories and, with a
// prompt configured, asks before replacing any existing file.
func (w *writer) checkDestinations(ctx context.Context, artifacts []render.Artifact) error {
	for _, artifact := range artifacts {
		path := filepath.Join(w.dir, artifact.Filename)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("orchestrator: stat %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("orchestrator: %s is a directory", path)
		}
		if w.prompt == nil {
			continue
		}

		ok, err := w.prompt.Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("Overwrite %s?", path),
			Default: false,
		})
		if err != nil {
			return fmt.Errorf("orchestrator: confirm overwrite: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrOverwriteDeclined, path)
		}
	}
	return nil
}
