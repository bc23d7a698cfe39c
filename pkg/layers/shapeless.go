package layers

// DecodeName reads and validates the name of a layer that carries no other
// configuration.
func DecodeName(rec Record, kind Kind) (string, error) {
	f, err := newFieldReader(rec, kind)
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Flatten collapses whatever it receives into a rank-1 vector.
type Flatten struct {
	base
}

// NewFlatten validates name and returns a Flatten layer.
func NewFlatten(name string) (*Flatten, error) {
	if err := validateName(name, KindFlatten); err != nil {
		return nil, err
	}
	return &Flatten{base: base{name: name}}, nil
}

func (*Flatten) Kind() Kind                   { return KindFlatten }
func (*Flatten) TrainingConstructor() string  { return "Flatten" }
func (*Flatten) TrainingArgs() []KeywordArg   { return nil }
func (*Flatten) InferenceConstructor() string { return "Flatten" }
func (*Flatten) InferenceGeneric() bool       { return false }
func (*Flatten) InferenceArgs() []string      { return nil }
func (*Flatten) InputRank() Rank              { return RankAny }
func (*Flatten) OutputRank() Rank             { return 1 }

// ReLU is the element-wise rectifier; it preserves the rank in flow.
type ReLU struct {
	base
}

// NewReLU validates name and returns a ReLU layer.
func NewReLU(name string) (*ReLU, error) {
	if err := validateName(name, KindReLU); err != nil {
		return nil, err
	}
	return &ReLU{base: base{name: name}}, nil
}

func (*ReLU) Kind() Kind                   { return KindReLU }
func (*ReLU) TrainingConstructor() string  { return "ReLU" }
func (*ReLU) TrainingArgs() []KeywordArg   { return nil }
func (*ReLU) InferenceConstructor() string { return "ReluLayer" }
func (*ReLU) InferenceGeneric() bool       { return false }
func (*ReLU) InferenceArgs() []string      { return nil }
func (*ReLU) InputRank() Rank              { return RankAny }
func (*ReLU) OutputRank() Rank             { return RankAny }
