package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen/internal/document/loader"
	"github.com/goliatone/go-modelgen/pkg/document"
)

const yamlDoc = `- module_name: M
  layers:
    - {type: Flatten, name: f0}
    - {type: Linear, name: l0, in_features: 4, out_features: 2, bias: false}
`

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loader.New(document.NewLoaderOptions()).Load(context.Background(), document.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != document.FormatYAML {
		t.Fatalf("format = %s", doc.Format())
	}
	records, err := doc.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].ModuleName != "M" || len(records[0].Layers) != 2 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"specs/models.json": {Data: []byte(`[{"module_name": "M", "layers": [{"type": "Flatten", "name": "f0"}]}]`)},
	}
	l := loader.New(document.NewLoaderOptions(document.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), document.SourceFromFS("specs/models.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != document.FormatJSON || doc.Location() != "specs/models.json" {
		t.Fatalf("unexpected document: %s %s", doc.Format(), doc.Location())
	}

	if _, err := l.Load(context.Background(), document.SourceFromFS("specs/missing.json")); err == nil {
		t.Fatalf("expected missing fs entry to fail")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(yamlDoc))
	}))
	defer server.Close()

	src := document.SourceFromURL(server.URL + "/models.yaml")

	if _, err := loader.New(document.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(document.NewLoaderOptions(document.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != document.FormatYAML {
		t.Fatalf("format = %s", doc.Format())
	}

	if _, err := l.Load(context.Background(), document.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected 404 to fail")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "models.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := loader.New(document.NewLoaderOptions()).Load(ctx, document.SourceFromFile(path))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
