package layers

// Kind enumerates the supported layer variants. The String form is the
// discriminator used by the "type" field of a layer record.
type Kind int

const (
	KindConv2d Kind = iota
	KindConv2dTranspose
	KindLinear
	KindFlatten
	KindReLU
)

var kindNames = [...]string{
	KindConv2d:          "Conv2d",
	KindConv2dTranspose: "Conv2dTranspose",
	KindLinear:          "Linear",
	KindFlatten:         "Flatten",
	KindReLU:            "ReLU",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind maps a record discriminator to its Kind. Matching is exact.
func ParseKind(name string) (Kind, bool) {
	for idx, candidate := range kindNames {
		if candidate == name {
			return Kind(idx), true
		}
	}
	return 0, false
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for idx := range kindNames {
		out[idx] = Kind(idx)
	}
	return out
}

// KindNames returns the record discriminators of every supported kind.
func KindNames() []string {
	out := make([]string, len(kindNames))
	copy(out, kindNames[:])
	return out
}
