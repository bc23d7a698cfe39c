package layers

// Weight is a named tensor parameter owned by exactly one layer. The shape is
// fixed when the owning layer is constructed.
type Weight struct {
	name     string
	shape    []int
	optional bool
}

// NewWeight builds a Weight, copying shape.
func NewWeight(name string, shape []int, optional bool) Weight {
	return Weight{
		name:     name,
		shape:    append([]int(nil), shape...),
		optional: optional,
	}
}

// Name is unique within the owning layer.
func (w Weight) Name() string {
	return w.name
}

// Shape returns a copy of the weight dimensions.
func (w Weight) Shape() []int {
	return append([]int(nil), w.shape...)
}

// Optional reports whether a trained instance may lack this parameter.
func (w Weight) Optional() bool {
	return w.optional
}

// Size is the number of scalar elements in the tensor.
func (w Weight) Size() int {
	if len(w.shape) == 0 {
		return 0
	}
	total := 1
	for _, dim := range w.shape {
		total *= dim
	}
	return total
}

// ShapeLiteral renders the shape as a tuple literal, e.g. "(8, 3, 3, 3)" or
// "(8,)". The form is valid in both target languages.
func (w Weight) ShapeLiteral() string {
	return TupleLiteral(w.shape...)
}
