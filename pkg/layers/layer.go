package layers

// Layer is one stage of a strictly sequential model. The set of
// implementations is closed: only the types in this package satisfy it.
type Layer interface {
	// Name is unique within a model and prefixes the export keys of the
	// layer's weights.
	Name() string
	Kind() Kind

	// TrainingConstructor and TrainingArgs describe the training-side
	// (PyTorch) module constructor and its keyword arguments, in order.
	TrainingConstructor() string
	TrainingArgs() []KeywordArg

	// InferenceConstructor and InferenceArgs describe the inference-side
	// (Rust) constructor and the literal positional arguments that follow the
	// weight arguments.
	InferenceConstructor() string
	InferenceGeneric() bool
	InferenceArgs() []string

	// Weights lists the parameters in declaration order, kernel before bias.
	Weights() []Weight

	InputRank() Rank
	OutputRank() Rank

	sealed()
}

// KeywordArg is one name=literal pair of a training-side constructor call.
type KeywordArg struct {
	Name  string
	Value string
}

// BiasHolder is implemented by layers whose inference constructor takes an
// optional bias argument.
type BiasHolder interface {
	HasBias() bool
}

type base struct {
	name    string
	weights []Weight
}

func (b base) Name() string {
	return b.name
}

func (b base) Weights() []Weight {
	if len(b.weights) == 0 {
		return nil
	}
	return append([]Weight(nil), b.weights...)
}

func (base) sealed() {}

func validateName(name string, kind Kind) error {
	if name == "" {
		return configError("", kind, FieldName, "required string field is missing")
	}
	if !IsIdentifier(name) {
		return configError(name, kind, FieldName, "%q is not a valid identifier", name)
	}
	if IsReservedLayerName(name) {
		return configError(name, kind, FieldName, "%q is reserved by the generated constructor", name)
	}
	return nil
}

func positive(layer string, kind Kind, field string, value int) error {
	if value <= 0 {
		return configError(layer, kind, field, "must be a positive integer, got %d", value)
	}
	return nil
}

// Compile-time checks that every variant satisfies Layer.
var (
	_ Layer = (*Conv2d)(nil)
	_ Layer = (*Conv2dTranspose)(nil)
	_ Layer = (*Linear)(nil)
	_ Layer = (*Flatten)(nil)
	_ Layer = (*ReLU)(nil)
)
