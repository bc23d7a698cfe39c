package layers

import "strconv"

// Conv2dConfig is the typed form of a Conv2d or Conv2dTranspose record.
type Conv2dConfig struct {
	Name        string
	InChannels  int
	OutChannels int
	Kernel      [2]int
	// Stride defaults to 1 when zero.
	Stride  int
	Padding Padding
	Bias    bool
}

// DecodeConv2dConfig converts a raw record into a Conv2dConfig. kind selects
// which variant errors are reported against.
func DecodeConv2dConfig(rec Record, kind Kind) (Conv2dConfig, error) {
	f, err := newFieldReader(rec, kind)
	if err != nil {
		return Conv2dConfig{}, err
	}

	cfg := Conv2dConfig{Name: f.name}
	if cfg.InChannels, err = f.requiredInt(FieldInChannels); err != nil {
		return Conv2dConfig{}, err
	}
	if cfg.OutChannels, err = f.requiredInt(FieldOutChannels); err != nil {
		return Conv2dConfig{}, err
	}
	if cfg.Kernel, err = f.kernel(FieldKernelSize); err != nil {
		return Conv2dConfig{}, err
	}
	if cfg.Stride, err = f.optionalInt(FieldStride, 1); err != nil {
		return Conv2dConfig{}, err
	}
	if cfg.Stride <= 0 {
		return Conv2dConfig{}, f.fail(FieldStride, "must be a positive integer, got %d", cfg.Stride)
	}
	rawPadding, err := f.optionalString(FieldPadding, PaddingValid.String())
	if err != nil {
		return Conv2dConfig{}, err
	}
	if cfg.Padding, err = ParsePadding(rawPadding); err != nil {
		return Conv2dConfig{}, f.fail(FieldPadding, "%v", err)
	}
	if cfg.Bias, err = f.requiredBool(FieldBias); err != nil {
		return Conv2dConfig{}, err
	}
	return cfg, nil
}

// convolution holds what Conv2d and Conv2dTranspose share. The weight layout
// is (out_channels, in_channels, kernel_h, kernel_w) for both.
type convolution struct {
	base
	inChannels  int
	outChannels int
	kernel      [2]int
	stride      int
	padding     Padding
	padAmount   int
	bias        bool
}

func newConvolution(cfg Conv2dConfig, kind Kind) (convolution, error) {
	if err := validateName(cfg.Name, kind); err != nil {
		return convolution{}, err
	}
	if cfg.Stride == 0 {
		cfg.Stride = 1
	}
	checks := []struct {
		field string
		value int
	}{
		{FieldInChannels, cfg.InChannels},
		{FieldOutChannels, cfg.OutChannels},
		{FieldKernelSize, cfg.Kernel[0]},
		{FieldKernelSize, cfg.Kernel[1]},
		{FieldStride, cfg.Stride},
	}
	for _, check := range checks {
		if err := positive(cfg.Name, kind, check.field, check.value); err != nil {
			return convolution{}, err
		}
	}

	padAmount := 0
	switch cfg.Padding {
	case PaddingValid:
	case PaddingSame:
		if cfg.Kernel[0] != cfg.Kernel[1] {
			return convolution{}, configError(cfg.Name, kind, FieldPadding,
				"padding=same requires a square kernel, got %s", TupleLiteral(cfg.Kernel[:]...))
		}
		padAmount = cfg.Kernel[0] / 2
	default:
		return convolution{}, configError(cfg.Name, kind, FieldPadding, "unknown padding %d", int(cfg.Padding))
	}

	weights := []Weight{
		NewWeight("weight", []int{cfg.OutChannels, cfg.InChannels, cfg.Kernel[0], cfg.Kernel[1]}, false),
	}
	if cfg.Bias {
		weights = append(weights, NewWeight("bias", []int{cfg.OutChannels}, true))
	}

	return convolution{
		base:        base{name: cfg.Name, weights: weights},
		inChannels:  cfg.InChannels,
		outChannels: cfg.OutChannels,
		kernel:      cfg.Kernel,
		stride:      cfg.Stride,
		padding:     cfg.Padding,
		padAmount:   padAmount,
		bias:        cfg.Bias,
	}, nil
}

func (c convolution) InChannels() int        { return c.inChannels }
func (c convolution) OutChannels() int       { return c.outChannels }
func (c convolution) KernelSize() [2]int     { return c.kernel }
func (c convolution) Stride() int            { return c.stride }
func (c convolution) Padding() Padding       { return c.padding }
func (c convolution) HasBias() bool          { return c.bias }
func (c convolution) InputRank() Rank        { return 3 }
func (c convolution) OutputRank() Rank       { return 3 }
func (c convolution) InferenceGeneric() bool { return true }

// PaddingAmount is the per-side zero padding: 0 for valid, kernel/2 for same.
func (c convolution) PaddingAmount() int {
	return c.padAmount
}

func (c convolution) TrainingArgs() []KeywordArg {
	return []KeywordArg{
		{Name: FieldInChannels, Value: strconv.Itoa(c.inChannels)},
		{Name: FieldOutChannels, Value: strconv.Itoa(c.outChannels)},
		{Name: FieldKernelSize, Value: TupleLiteral(c.kernel[:]...)},
		{Name: FieldStride, Value: strconv.Itoa(c.stride)},
		{Name: FieldPadding, Value: strconv.Itoa(c.padAmount)},
		{Name: FieldBias, Value: pyBool(c.bias)},
	}
}

func (c convolution) InferenceArgs() []string {
	return []string{strconv.Itoa(c.stride), c.padding.inferenceLiteral()}
}

// Conv2d is a 2D convolution over (channels, height, width) inputs.
type Conv2d struct {
	convolution
}

// NewConv2d validates cfg and derives the layer's weights.
func NewConv2d(cfg Conv2dConfig) (*Conv2d, error) {
	conv, err := newConvolution(cfg, KindConv2d)
	if err != nil {
		return nil, err
	}
	return &Conv2d{convolution: conv}, nil
}

func (*Conv2d) Kind() Kind                   { return KindConv2d }
func (*Conv2d) TrainingConstructor() string  { return "Conv2d" }
func (*Conv2d) InferenceConstructor() string { return "ConvolutionLayer" }

// Conv2dTranspose is the transposed (fractionally strided) 2D convolution.
type Conv2dTranspose struct {
	convolution
}

// NewConv2dTranspose validates cfg and derives the layer's weights.
func NewConv2dTranspose(cfg Conv2dConfig) (*Conv2dTranspose, error) {
	conv, err := newConvolution(cfg, KindConv2dTranspose)
	if err != nil {
		return nil, err
	}
	return &Conv2dTranspose{convolution: conv}, nil
}

func (*Conv2dTranspose) Kind() Kind                   { return KindConv2dTranspose }
func (*Conv2dTranspose) TrainingConstructor() string  { return "ConvTranspose2d" }
func (*Conv2dTranspose) InferenceConstructor() string { return "TransposedConvolutionLayer" }
