package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Filters returns the filters every engine registers: trim and comment.
func Filters() map[string]any {
	return map[string]any{
		"trim":    pongo2.FilterFunction(filterTrim),
		"comment": pongo2.FilterFunction(filterComment),
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterComment prefixes every line of the input with the parameter, e.g.
// {{ lines|comment:"# " }}. A list input contributes one line per item. Blank
// lines get the prefix without its trailing space.
func filterComment(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	prefix := "# "
	if param != nil && param.IsString() && param.String() != "" {
		prefix = param.String()
	}

	var lines []string
	switch {
	case in.IsNil():
		return pongo2.AsValue(""), nil
	case in.CanSlice() && !in.IsString():
		for i := 0; i < in.Len(); i++ {
			lines = append(lines, strings.Split(in.Index(i).String(), "\n")...)
		}
	default:
		lines = strings.Split(in.String(), "\n")
	}
	if len(lines) == 0 {
		return pongo2.AsValue(""), nil
	}

	bare := strings.TrimRight(prefix, " ")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = bare
			continue
		}
		lines[i] = prefix + line
	}
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}
