package render

import (
	"github.com/goliatone/go-modelgen/pkg/model"
)

// Target names one generated artifact: the template that renders it, the file
// it is written to and the facts projected for it.
type Target interface {
	Name() string
	TemplateID() string
	Filename() string
	Facts(models []*model.Model, options Options) any
}

// Built-in target names.
const (
	TargetTraining   = "training"
	TargetInference  = "inference"
	TargetExportKeys = "export-keys"
)

// Template identifiers understood by the rendering engine.
const (
	TemplateTrainingSource  = "training-target-source"
	TemplateInferenceSource = "inference-target-source"
	TemplateExportKeyList   = "export-key-list"
)

type target struct {
	name       string
	templateID string
	filename   string
	project    func(models []*model.Model, debug bool) any
}

func (t target) Name() string       { return t.name }
func (t target) TemplateID() string { return t.templateID }
func (t target) Filename() string   { return t.filename }

func (t target) Facts(models []*model.Model, options Options) any {
	return t.project(models, options.Debug)
}

// NewTarget declares an additional target backed by a custom template.
func NewTarget(name, templateID, filename string, project func(models []*model.Model, debug bool) any) Target {
	return target{name: name, templateID: templateID, filename: filename, project: project}
}

// TrainingTarget renders the PyTorch module definitions.
func TrainingTarget() Target {
	return NewTarget(TargetTraining, TemplateTrainingSource, "models.py", func(models []*model.Model, debug bool) any {
		return NewTrainingFacts(models, debug)
	})
}

// InferenceTarget renders the Rust module definitions.
func InferenceTarget() Target {
	return NewTarget(TargetInference, TemplateInferenceSource, "models.rs", func(models []*model.Model, debug bool) any {
		return NewInferenceFacts(models, debug)
	})
}

// ExportKeysTarget renders the parameter extraction script.
func ExportKeysTarget() Target {
	return NewTarget(TargetExportKeys, TemplateExportKeyList, "export_weights.py", func(models []*model.Model, debug bool) any {
		return NewExportFacts(models, debug)
	})
}
