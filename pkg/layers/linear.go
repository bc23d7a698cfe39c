package layers

import "strconv"

// LinearConfig is the typed form of a Linear record.
type LinearConfig struct {
	Name        string
	InFeatures  int
	OutFeatures int
	Bias        bool
}

// DecodeLinearConfig converts a raw record into a LinearConfig.
func DecodeLinearConfig(rec Record) (LinearConfig, error) {
	f, err := newFieldReader(rec, KindLinear)
	if err != nil {
		return LinearConfig{}, err
	}

	cfg := LinearConfig{Name: f.name}
	if cfg.InFeatures, err = f.requiredInt(FieldInFeatures); err != nil {
		return LinearConfig{}, err
	}
	if cfg.OutFeatures, err = f.requiredInt(FieldOutFeatures); err != nil {
		return LinearConfig{}, err
	}
	if cfg.Bias, err = f.requiredBool(FieldBias); err != nil {
		return LinearConfig{}, err
	}
	return cfg, nil
}

// Linear is a fully connected layer over rank-1 inputs.
//
// Weight shape: (out_features, in_features)
// Bias shape:   (out_features,), optional
type Linear struct {
	base
	inFeatures  int
	outFeatures int
	bias        bool
}

// NewLinear validates cfg and derives the layer's weights.
func NewLinear(cfg LinearConfig) (*Linear, error) {
	if err := validateName(cfg.Name, KindLinear); err != nil {
		return nil, err
	}
	if err := positive(cfg.Name, KindLinear, FieldInFeatures, cfg.InFeatures); err != nil {
		return nil, err
	}
	if err := positive(cfg.Name, KindLinear, FieldOutFeatures, cfg.OutFeatures); err != nil {
		return nil, err
	}

	weights := []Weight{NewWeight("weight", []int{cfg.OutFeatures, cfg.InFeatures}, false)}
	if cfg.Bias {
		weights = append(weights, NewWeight("bias", []int{cfg.OutFeatures}, true))
	}

	return &Linear{
		base:        base{name: cfg.Name, weights: weights},
		inFeatures:  cfg.InFeatures,
		outFeatures: cfg.OutFeatures,
		bias:        cfg.Bias,
	}, nil
}

func (l *Linear) InFeatures() int  { return l.inFeatures }
func (l *Linear) OutFeatures() int { return l.outFeatures }
func (l *Linear) HasBias() bool    { return l.bias }

func (*Linear) Kind() Kind                   { return KindLinear }
func (*Linear) TrainingConstructor() string  { return "Linear" }
func (*Linear) InferenceConstructor() string { return "LinearLayer" }
func (*Linear) InferenceGeneric() bool       { return true }
func (*Linear) InferenceArgs() []string      { return nil }
func (*Linear) InputRank() Rank              { return 1 }
func (*Linear) OutputRank() Rank             { return 1 }

func (l *Linear) TrainingArgs() []KeywordArg {
	return []KeywordArg{
		{Name: FieldInFeatures, Value: strconv.Itoa(l.inFeatures)},
		{Name: FieldOutFeatures, Value: strconv.Itoa(l.outFeatures)},
		{Name: FieldBias, Value: pyBool(l.bias)},
	}
}
