package layers

import (
	"fmt"
	"strings"
)

// Padding selects how a convolution pads its input.
type Padding int

const (
	// PaddingValid applies no padding.
	PaddingValid Padding = iota
	// PaddingSame pads kernel/2 on every side. Requires a square kernel.
	PaddingSame
)

func (p Padding) String() string {
	switch p {
	case PaddingSame:
		return "same"
	default:
		return "valid"
	}
}

// ParsePadding resolves "valid" or "same", ignoring case and surrounding
// whitespace.
func ParsePadding(raw string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "valid":
		return PaddingValid, nil
	case "same":
		return PaddingSame, nil
	default:
		return 0, fmt.Errorf("unknown padding %q (want valid or same)", raw)
	}
}

func (p Padding) inferenceLiteral() string {
	if p == PaddingSame {
		return "Padding::Same"
	}
	return "Padding::Valid"
}
