package render

import (
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/layers"
	"github.com/goliatone/go-modelgen/pkg/model"
)

// GeneratorName is stamped into the header of every generated artifact.
const GeneratorName = "modelgen"

// Globals returns the values every target template reads from the engine's
// global context rather than from its payload.
func Globals() map[string]any {
	return map[string]any{"generator": GeneratorName}
}

// StateContainer is the attribute under which the training-side module keeps
// its layers, so trained parameters live at "<container>.<layer>.<weight>".
const StateContainer = "layers"

// Weight describes one parameter as both targets need it.
type Weight struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	Var          string `json:"var"`
	Shape        []int  `json:"shape"`
	ShapeLiteral string `json:"shape_literal"`
	Rank         int    `json:"rank"`
	Type         string `json:"type"`
	Optional     bool   `json:"optional"`
}

// KeywordArg is one name=literal argument of a training-side constructor.
type KeywordArg struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TrainingLayer is the training-side projection of one layer.
type TrainingLayer struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Constructor string       `json:"constructor"`
	Args        []KeywordArg `json:"args"`
	Weights     []Weight     `json:"weights"`
}

// TrainingModel is the training-side projection of one model.
type TrainingModel struct {
	ModuleName        string          `json:"module_name"`
	Description       []string        `json:"description"`
	InputShapeLiteral string          `json:"input_shape_literal"`
	Layers            []TrainingLayer `json:"layers"`
}

// TrainingFacts feeds the training-target-source template.
type TrainingFacts struct {
	Debug     bool            `json:"debug"`
	Container string          `json:"container"`
	Models    []TrainingModel `json:"models"`
}

// InferenceLayer is the inference-side projection of one layer. Args holds the
// configuration literals; CallArgs is the complete positional argument list
// of the constructor call, weights first.
type InferenceLayer struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Constructor string   `json:"constructor"`
	Type        string   `json:"type"`
	Generic     bool     `json:"generic"`
	Args        []string `json:"args"`
	CallArgs    []string `json:"call_args"`
	Weights     []Weight `json:"weights"`
	InputRank   int      `json:"input_rank"`
	OutputRank  int      `json:"output_rank"`
	InputType   string   `json:"input_type"`
	OutputType  string   `json:"output_type"`
}

// InferenceModel is the inference-side projection of one model.
type InferenceModel struct {
	ModuleName  string           `json:"module_name"`
	Description []string         `json:"description"`
	InputType   string           `json:"input_type"`
	OutputType  string           `json:"output_type"`
	Layers      []InferenceLayer `json:"layers"`
}

// InferenceFacts feeds the inference-target-source template.
type InferenceFacts struct {
	Debug  bool             `json:"debug"`
	Models []InferenceModel `json:"models"`
}

// ExportKey is one parameter the extraction script copies into the archive.
type ExportKey struct {
	Key          string `json:"key"`
	Module       string `json:"module"`
	Layer        string `json:"layer"`
	Weight       string `json:"weight"`
	StateKey     string `json:"state_key"`
	ShapeLiteral string `json:"shape_literal"`
	Optional     bool   `json:"optional"`
}

// ExportFacts feeds the export-key-list template.
type ExportFacts struct {
	Debug   bool        `json:"debug"`
	Modules []string    `json:"modules"`
	Keys    []ExportKey `json:"keys"`
}

// NewTrainingFacts projects models onto the training target.
func NewTrainingFacts(models []*model.Model, debug bool) TrainingFacts {
	facts := TrainingFacts{
		Debug:     debug,
		Container: StateContainer,
		Models:    make([]TrainingModel, 0, len(models)),
	}
	for _, m := range models {
		tm := TrainingModel{
			ModuleName:  m.ModuleName(),
			Description: DescriptionLines(m.Description()),
			Layers:      make([]TrainingLayer, 0, m.Len()),
		}
		if shape := m.InputShape(); len(shape) > 0 {
			tm.InputShapeLiteral = layers.TupleLiteral(shape...)
		}
		for _, layer := range m.Layers() {
			args := layer.TrainingArgs()
			tl := TrainingLayer{
				Name:        layer.Name(),
				Kind:        layer.Kind().String(),
				Constructor: layer.TrainingConstructor(),
				Args:        make([]KeywordArg, 0, len(args)),
				Weights:     weightFacts(m.ModuleName(), layer),
			}
			for _, arg := range args {
				tl.Args = append(tl.Args, KeywordArg{Name: arg.Name, Value: arg.Value})
			}
			tm.Layers = append(tm.Layers, tl)
		}
		facts.Models = append(facts.Models, tm)
	}
	return facts
}

// NewInferenceFacts projects models onto the inference target, resolving the
// concrete array type flowing through every layer.
func NewInferenceFacts(models []*model.Model, debug bool) InferenceFacts {
	facts := InferenceFacts{
		Debug:  debug,
		Models: make([]InferenceModel, 0, len(models)),
	}
	for _, m := range models {
		im := InferenceModel{
			ModuleName:  m.ModuleName(),
			Description: DescriptionLines(m.Description()),
			InputType:   ArrayType(int(m.InputRank())),
			OutputType:  ArrayType(int(m.OutputRank())),
			Layers:      make([]InferenceLayer, 0, m.Len()),
		}
		for idx, layer := range m.Layers() {
			boundary := m.Boundary(idx)
			weights := weightFacts(m.ModuleName(), layer)

			il := InferenceLayer{
				Name:        layer.Name(),
				Kind:        layer.Kind().String(),
				Constructor: layer.InferenceConstructor(),
				Type:        layer.InferenceConstructor(),
				Generic:     layer.InferenceGeneric(),
				Args:        append([]string{}, layer.InferenceArgs()...),
				CallArgs:    make([]string, 0, len(weights)+len(layer.InferenceArgs())+1),
				Weights:     weights,
				InputRank:   int(boundary.InputRank),
				OutputRank:  int(boundary.OutputRank),
				InputType:   ArrayType(int(boundary.InputRank)),
				OutputType:  ArrayType(int(boundary.OutputRank)),
			}
			if il.Generic {
				il.Type += "<F>"
			}
			for _, weight := range weights {
				il.CallArgs = append(il.CallArgs, weight.Var)
			}
			if holder, ok := layer.(layers.BiasHolder); ok && !holder.HasBias() {
				il.CallArgs = append(il.CallArgs, "None")
			}
			il.CallArgs = append(il.CallArgs, il.Args...)

			im.Layers = append(im.Layers, il)
		}
		facts.Models = append(facts.Models, im)
	}
	return facts
}

// NewExportFacts projects models onto the export-key list.
func NewExportFacts(models []*model.Model, debug bool) ExportFacts {
	entries := exportkeys.Entries(models...)
	facts := ExportFacts{
		Debug:   debug,
		Modules: make([]string, 0, len(models)),
		Keys:    make([]ExportKey, 0, len(entries)),
	}
	for _, m := range models {
		facts.Modules = append(facts.Modules, m.ModuleName())
	}
	for _, entry := range entries {
		facts.Keys = append(facts.Keys, ExportKey{
			Key:          entry.Key,
			Module:       entry.Module,
			Layer:        entry.Layer,
			Weight:       entry.Weight,
			StateKey:     StateKey(entry.Layer, entry.Weight),
			ShapeLiteral: layers.TupleLiteral(entry.Shape...),
			Optional:     entry.Optional,
		})
	}
	return facts
}

// StateKey is where the training-side module stores a layer parameter.
func StateKey(layer, weight string) string {
	return StateContainer + "." + layer + "." + weight
}

// ArrayType names the inference-side array holding rank dimensions.
func ArrayType(rank int) string {
	return fmt.Sprintf("Array%d<F>", rank)
}

func weightFacts(module string, layer layers.Layer) []Weight {
	declared := layer.Weights()
	out := make([]Weight, 0, len(declared))
	for _, weight := range declared {
		shape := weight.Shape()
		out = append(out, Weight{
			Name:         weight.Name(),
			Key:          exportkeys.Key(module, layer.Name(), weight.Name()),
			Var:          layers.WeightVar(layer.Name(), weight),
			Shape:        shape,
			ShapeLiteral: weight.ShapeLiteral(),
			Rank:         len(shape),
			Type:         ArrayType(len(shape)),
			Optional:     weight.Optional(),
		})
	}
	return out
}
