package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/npz"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(testsupport.ScenarioJSON), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := run(context.Background(), args, &stdout)
	return stdout.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, err := runCLI(t)
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "train")
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), `"train"`)

	_, err = runCLI(t, "keys")
	require.ErrorIs(t, err, errUsage)

	var buf bytes.Buffer
	usage(&buf)
	for _, cmd := range commands() {
		assert.Contains(t, buf.String(), cmd.name)
	}
}

func TestGenerate_WritesArtifacts(t *testing.T) {
	doc := writeScenario(t)
	out := filepath.Join(t.TempDir(), "generated")

	stdout, err := runCLI(t, "generate", "-yes", "-out", out, doc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		filepath.Join(out, "export_weights.py"),
		filepath.Join(out, "models.rs"),
		filepath.Join(out, "models.py"),
	}, lines)

	py, err := os.ReadFile(filepath.Join(out, "models.py"))
	require.NoError(t, err)
	assert.Contains(t, string(py), "class M(nn.Module):")
}

func TestGenerate_TargetsAndDebug(t *testing.T) {
	doc := writeScenario(t)
	out := t.TempDir()

	stdout, err := runCLI(t, "generate", "-yes", "-debug", "-target", "inference", "-out", out, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "models.rs"), strings.TrimSpace(stdout))

	rs, err := os.ReadFile(filepath.Join(out, "models.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(rs), "println!(")
}

func TestGenerate_ConfigFile(t *testing.T) {
	doc := writeScenario(t)
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "from-config")
	config := filepath.Join(dir, "modelgen.yaml")
	require.NoError(t, os.WriteFile(config, []byte("output_dir: "+fromConfig+"\nyes: true\ntargets: [training]\n"), 0o644))

	_, err := runCLI(t, "generate", "-config", config, doc)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(fromConfig, "models.py"))
	assert.NoFileExists(t, filepath.Join(fromConfig, "models.rs"))

	fromFlag := filepath.Join(dir, "from-flag")
	_, err = runCLI(t, "generate", "-config", config, "-out", fromFlag, doc)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(fromFlag, "models.py"))

	_, err = runCLI(t, "generate", "-config", filepath.Join(dir, "missing.yaml"), doc)
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	doc := writeScenario(t)

	stdout, err := runCLI(t, "keys", doc)
	require.NoError(t, err)
	assert.Equal(t, testsupport.ScenarioKeys, strings.Split(strings.TrimSpace(stdout), "\n"))

	stdout, err = runCLI(t, "keys", "-shapes", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "M.c0.weight (8, 3, 3, 3)\n")
	assert.Contains(t, stdout, "M.c0.bias (8,) optional\n")

	stdout, err = runCLI(t, "keys", "-json", doc)
	require.NoError(t, err)
	var records []keyRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 4)
	assert.Equal(t, keyRecord{Key: "M.l0.weight", Module: "M", Layer: "l0", Weight: "weight", Shape: []int{10, 288}}, records[2])
}

func TestKeys_ZerosArchiveVerifies(t *testing.T) {
	doc := writeScenario(t)
	archive := filepath.Join(t.TempDir(), "zeros.npz")

	stdout, err := runCLI(t, "keys", "-zeros", archive, doc)
	require.NoError(t, err)
	assert.Equal(t, testsupport.ScenarioKeys, strings.Split(strings.TrimSpace(stdout), "\n"))

	stdout, err = runCLI(t, "verify", "-strict", doc, archive)
	require.NoError(t, err)
	assert.Contains(t, stdout, "4 of 4 keys present")
}

func TestKeys_ReportsBuildErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"module_name": "X", "layers": [{"type": "Dropout", "name": "d"}]}]`), 0o644))

	_, err := runCLI(t, "keys", path)
	require.Error(t, err)

	_, err = runCLI(t, "keys", "-skip-validation", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "type"`)
}

func TestInspect(t *testing.T) {
	stdout, err := runCLI(t, "inspect", writeScenario(t))
	require.NoError(t, err)

	for _, fragment := range []string{"M", "Reference classifier.", "c0", "Conv2d", "(8, 3, 3, 3)", "bias (8,)?", "rank 3", "3,114", "# parameters"} {
		assert.Contains(t, stdout, fragment)
	}
}

func TestVerify(t *testing.T) {
	doc := writeScenario(t)
	dir := t.TempDir()

	complete := writeArchive(t, filepath.Join(dir, "complete.npz"), map[string][]int{
		"M.c0.weight": {8, 3, 3, 3},
		"M.l0.weight": {10, 288},
		"M.l0.bias":   {10},
		"step":        {},
	})
	stdout, err := runCLI(t, "verify", doc, complete)
	require.NoError(t, err)
	assert.Contains(t, stdout, "absent (optional)")
	assert.Contains(t, stdout, "3 of 4 keys present, 4 arrays in")

	_, err = runCLI(t, "verify", "-strict", doc, complete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step")

	partial := writeArchive(t, filepath.Join(dir, "partial.npz"), map[string][]int{
		"M.c0.weight": {8, 3, 3, 3},
	})
	stdout, err = runCLI(t, "verify", doc, partial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing M.l0.weight")
	assert.Contains(t, stdout, "MISSING")

	_, err = runCLI(t, "verify", doc)
	require.True(t, errors.Is(err, errUsage))
}

func writeArchive(t *testing.T, path string, arrays map[string][]int) string {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := npz.NewWriter(file)
	for name, shape := range arrays {
		size := 1
		for _, dim := range shape {
			size *= dim
		}
		require.NoError(t, w.WriteArray(name, "<f4", shape, make([]byte, 4*size)))
	}
	require.NoError(t, w.Close())
	return path
}
