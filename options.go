package chanscope

import "io"

// Option configures a single instrumented channel or stream at wrap time.
type Option func(*options)

type options struct {
	label    string
	capacity int
	log      bool
}

func buildOptions(opts []Option) options {
	o := options{capacity: -1}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithLabel names the entity in snapshots and reports. Without it the
// entity is labeled by the file and line of the wrapping call.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithCapacity declares the buffer capacity recorded for the entity.
// It is required when wrapping a conduit that does not report its own
// capacity, and overrides the reported value when one does.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
	}
}

// WithLog records a rendering of every sent or yielded value in the
// entity's log ring, at the cost of formatting each value.
func WithLog() Option {
	return func(o *options) { o.log = true }
}

// Format selects how a Guard renders its final report.
type Format int

const (
	// FormatTable prints aligned human-readable tables.
	FormatTable Format = iota
	// FormatJSON prints the combined snapshot as a single JSON line.
	FormatJSON
	// FormatJSONPretty prints the combined snapshot as indented JSON.
	FormatJSONPretty
)

// GuardOption configures a Guard.
type GuardOption func(*guardOptions)

type guardOptions struct {
	format Format
	out    io.Writer
}

// WithFormat selects the report rendering. The default is FormatTable.
func WithFormat(f Format) GuardOption {
	return func(o *guardOptions) { o.format = f }
}

// WithOutput redirects the report. The default is standard output.
func WithOutput(w io.Writer) GuardOption {
	return func(o *guardOptions) { o.out = w }
}
