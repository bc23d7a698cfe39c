// Package model turns decoded model descriptions into validated, immutable
// Models. Each layer record is dispatched on its "type" discriminator into the
// typed layer catalog, then a single left-to-right pass checks that the rank
// produced by every layer is what the next one accepts.
//
// A Model is only ever returned after that pass succeeds; the first offending
// layer aborts the whole build with a *layers.ConfigurationError or a
// *ShapeMismatchError. When a model declares input_shape the pass also tracks
// concrete sizes and checks in_channels and in_features against them; the
// declared counts are never inferred.
package model
