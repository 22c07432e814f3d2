// Package world defines the per-test-case context object handed to step and
// hook implementations, and the constructor protocol the executor uses to
// build it.
package world

// AttachFunc attaches data (text, images, logs) to the running test case.
// The executor supplies it; media type is a MIME string such as "text/plain".
type AttachFunc func(data any, mediaType string) error

// Options is what the executor passes to a Constructor for every test case.
type Options struct {
	Attach     AttachFunc
	Parameters map[string]any
}

// Constructor builds a fresh world for one test case.
type Constructor func(opts Options) any

// World is the world built by Default.
type World struct {
	Attach     AttachFunc
	Parameters map[string]any
}

// Default is the constructor a freshly reset library uses.
func Default(opts Options) any {
	return &World{
		Attach:     opts.Attach,
		Parameters: opts.Parameters,
	}
}
