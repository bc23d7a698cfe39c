package templates

import (
	"io/fs"
	"testing"
)

func TestFSContainsTargetTemplates(t *testing.T) {
	for _, name := range []string{
		"training-target-source.tpl",
		"inference-target-source.tpl",
		"export-key-list.tpl",
	} {
		if _, err := fs.Stat(FS(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}
