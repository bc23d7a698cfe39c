package layers

import (
	"strconv"
	"strings"
)

// TupleLiteral renders dims as a parenthesised tuple. Single element tuples
// keep the trailing comma.
func TupleLiteral(dims ...int) string {
	parts := make([]string, len(dims))
	for idx, dim := range dims {
		parts[idx] = strconv.Itoa(dim)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func pyBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
