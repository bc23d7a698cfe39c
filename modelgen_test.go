package modelgen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/document"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func TestEmbeddedTemplatesContainTargets(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "training-target-source.tpl"); err != nil {
		t.Fatalf("expected training template to be readable: %v", err)
	}
}

func TestGenerateFromExampleDocument(t *testing.T) {
	out := t.TempDir()
	result, err := Generate(testsupport.Context(), filepath.Join("examples", "mnist", "model.yaml"), Config{OutputDir: out})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Written) != 3 {
		t.Fatalf("expected three artifacts, got %v", result.Written)
	}

	rs, err := os.ReadFile(filepath.Join(out, "models.rs"))
	if err != nil {
		t.Fatalf("read models.rs: %v", err)
	}
	for _, module := range []string{"pub struct Encoder<F: FloatLikePrimitive>", "pub struct Classifier<F: FloatLikePrimitive>"} {
		if !strings.Contains(string(rs), module) {
			t.Fatalf("models.rs missing %q", module)
		}
	}
}

func TestRenderKeepsArtifactsInMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, []byte(testsupport.ScenarioJSON), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	out := filepath.Join(dir, "out")
	result, err := Render(testsupport.Context(), path, Config{OutputDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Artifacts) != 3 || len(result.Written) != 0 {
		t.Fatalf("unexpected result: %d artifacts, written %v", len(result.Artifacts), result.Written)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("render must not create the output dir")
	}
}

func TestNewLoaderRejectsHTTPByDefault(t *testing.T) {
	_, err := NewLoader().Load(testsupport.Context(), document.SourceFromURL("https://example.com/model.json"))
	if err == nil {
		t.Fatalf("expected http to be disabled")
	}
}
