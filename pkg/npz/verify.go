package npz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
)

// Mismatch is an archive array whose shape disagrees with the declared weight.
type Mismatch struct {
	Key      string
	Expected []int
	Actual   []int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %v, got %v", m.Key, m.Expected, m.Actual)
}

// Report is the outcome of checking an archive against export keys.
type Report struct {
	// Present lists keys found with an acceptable shape.
	Present []string
	// MissingRequired lists non-optional keys absent from the archive.
	MissingRequired []string
	// MissingOptional lists optional keys absent from the archive. The
	// extraction script omits those, so they never fail verification.
	MissingOptional []string
	// Reshaped lists keys stored flat with the expected element count. The
	// inference-side loader reshapes them on load.
	Reshaped        []string
	ShapeMismatches []Mismatch
	// Extra lists archive arrays no export key refers to.
	Extra []string
}

// OK reports whether the archive satisfies every required key.
func (r Report) OK() bool {
	return len(r.MissingRequired) == 0 && len(r.ShapeMismatches) == 0
}

// Err summarises a failing report, or returns nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	var parts []string
	if len(r.MissingRequired) > 0 {
		parts = append(parts, "missing "+strings.Join(r.MissingRequired, ", "))
	}
	for _, mismatch := range r.ShapeMismatches {
		parts = append(parts, mismatch.String())
	}
	return fmt.Errorf("npz: archive does not match export keys: %s", strings.Join(parts, "; "))
}

// Verify checks archive against entries.
func Verify(archive *Archive, entries []exportkeys.Entry) Report {
	var report Report
	wanted := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		wanted[entry.Key] = struct{}{}

		array, ok := archive.Get(entry.Key)
		if !ok {
			if entry.Optional {
				report.MissingOptional = append(report.MissingOptional, entry.Key)
			} else {
				report.MissingRequired = append(report.MissingRequired, entry.Key)
			}
			continue
		}

		switch {
		case equalShape(entry.Shape, array.Shape):
			report.Present = append(report.Present, entry.Key)
		case len(array.Shape) == 1 && array.Size() == elementCount(entry.Shape):
			report.Present = append(report.Present, entry.Key)
			report.Reshaped = append(report.Reshaped, entry.Key)
		default:
			report.ShapeMismatches = append(report.ShapeMismatches, Mismatch{
				Key:      entry.Key,
				Expected: append([]int(nil), entry.Shape...),
				Actual:   array.Shape,
			})
		}
	}

	for _, name := range archive.Names() {
		if _, ok := wanted[name]; !ok {
			report.Extra = append(report.Extra, name)
		}
	}
	sort.Strings(report.Extra)
	return report
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func elementCount(shape []int) int {
	total := 1
	for _, dim := range shape {
		total *= dim
	}
	return total
}
