package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// DescriptionLines strips any markup from a model description and splits it
// into comment lines. Leading and trailing blank lines are dropped, as is
// trailing whitespace on every line.
func DescriptionLines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	cleaned := html.UnescapeString(descriptionSanitizer().Sanitize(raw))
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")

	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	if start == end {
		return nil
	}
	return lines[start:end]
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.StrictPolicy()
	})
	return descriptionPolicy
}
