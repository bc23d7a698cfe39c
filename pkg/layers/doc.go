// Package layers is the closed catalog of layer kinds understood by the
// generator. Every layer derives, once at construction, the facts both targets
// need: the training-side constructor name and keyword arguments, the
// inference-side constructor name and positional arguments, the weights it owns
// and the tensor rank it consumes and produces.
//
// Layers are built from typed configs (Conv2dConfig, LinearConfig) or decoded
// straight from a loosely typed Record with the Decode* helpers. Any problem is
// reported as a *ConfigurationError naming the offending layer and field.
// Layers are immutable; accessors hand out copies.
package layers
