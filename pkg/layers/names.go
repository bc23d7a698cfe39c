package layers

import "regexp"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keywords of either target language, strict and reserved.
var keywords = wordSet(
	// training target
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"class", "continue", "def", "del", "elif", "else", "except", "finally",
	"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
	"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
	// inference target
	"Self", "abstract", "become", "box", "const", "crate", "do", "dyn", "enum",
	"extern", "false", "final", "fn", "gen", "impl", "let", "loop", "macro",
	"match", "mod", "move", "mut", "override", "priv", "pub", "ref", "self",
	"static", "struct", "super", "trait", "true", "type", "typeof", "unsafe",
	"unsized", "use", "virtual", "where",
	"_",
)

// Locals and fields of the generated constructor a layer binding would shadow.
var reservedLayerNames = wordSet("loader", "_marker")

// Names the generated modules import or declare at file scope. A module
// named after one of them would shadow it.
var reservedModuleNames = wordSet(
	"nn", "OrderedDict",
	"F", "Layer", "WeightLoader", "FloatLikePrimitive",
	"Array0", "Array1", "Array2", "Array3", "Array4", "Array5", "Array6", "ArrayD",
	"ConvolutionLayer", "TransposedConvolutionLayer", "LinearLayer", "Flatten", "ReluLayer",
)

// IsIdentifier reports whether name is an identifier, and not a keyword, in
// both generated targets.
func IsIdentifier(name string) bool {
	if !identifierPattern.MatchString(name) {
		return false
	}
	_, keyword := keywords[name]
	return !keyword
}

// IsReservedLayerName reports whether a layer binding called name would clash
// with the generated constructor's own bindings.
func IsReservedLayerName(name string) bool {
	_, ok := reservedLayerNames[name]
	return ok
}

// IsReservedModuleName reports whether a module called name would shadow a
// file-scope name of the generated sources.
func IsReservedModuleName(name string) bool {
	_, ok := reservedModuleNames[name]
	return ok
}

// WeightVar is the local variable the inference constructor binds weight of
// layer to.
func WeightVar(layer string, weight Weight) string {
	return layer + "_" + weight.Name()
}

func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, word := range words {
		out[word] = struct{}{}
	}
	return out
}
