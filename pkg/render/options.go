package render

// Options describe per-invocation settings shared by every target.
type Options struct {
	// Debug makes the generated modules print the shape produced by every
	// layer during a forward pass.
	Debug bool
}
