// Package exportkeys derives the fully qualified parameter paths that must be
// pulled out of a trained instance: one "<module>.<layer>.<weight>" key per
// declared weight, in model, layer and declaration order.
package exportkeys

import (
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Entry is one exported parameter.
type Entry struct {
	Key      string
	Module   string
	Layer    string
	Weight   string
	Shape    []int
	Optional bool
}

// Entries lists every declared weight of models. Optional weights are
// included; optional only relaxes what the extraction side tolerates.
func Entries(models ...*model.Model) []Entry {
	var out []Entry
	for _, m := range models {
		if m == nil {
			continue
		}
		for _, layer := range m.Layers() {
			for _, weight := range layer.Weights() {
				out = append(out, Entry{
					Key:      Key(m.ModuleName(), layer.Name(), weight.Name()),
					Module:   m.ModuleName(),
					Layer:    layer.Name(),
					Weight:   weight.Name(),
					Shape:    weight.Shape(),
					Optional: weight.Optional(),
				})
			}
		}
	}
	return out
}

// Keys returns just the key strings of Entries.
func Keys(models ...*model.Model) []string {
	entries := Entries(models...)
	out := make([]string, len(entries))
	for idx, entry := range entries {
		out[idx] = entry.Key
	}
	return out
}

// Key joins the path segments of one parameter.
func Key(module, layer, weight string) string {
	return strings.Join([]string{module, layer, weight}, ".")
}
