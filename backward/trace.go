package backward

import "github.com/aooxin/backward/types"

// Tracer receives one record per gradient leaf the Builder synthesizes from
// a forward leaf, fill-zeros-like leaves included. Accumulate leaves inserted
// for duplicate writers are not recorded. It is optional; a nil Tracer (the
// default) means Backward does no tracing.
type Tracer interface {
	Record(kind, forwardKind string, inputs, outputs []string) error
}

// Option configures a Builder.
type Option func(*Builder)

// WithTracer makes the Builder call t.Record for every gradient leaf it
// synthesizes from a forward leaf, in traversal order; accumulate leaves are
// not recorded.
func WithTracer(t Tracer) Option {
	return func(b *Builder) { b.tracer = t }
}

// WithGuardDepth overrides the default maximum Recurrent step-net nesting
// depth the cyclic-step-net guard allows.
func WithGuardDepth(max int) Option {
	return func(b *Builder) { b.guard = types.NewGuard(max) }
}
