package gradient

import (
	"fmt"

	"github.com/aooxin/backward/graph"
)

// Maker synthesizes the backward descriptor(s) for one forward operator
// invocation. It receives the forward OpDesc unchanged and returns the
// descriptors that compute the gradients of its inputs, in the order they
// should run.
type Maker func(fwd graph.OpDesc) ([]graph.OpDesc, error)

// registry maps a forward operator kind to the Maker that differentiates it.
// It is process-wide, populated once at startup (gradrules.RegisterAll
// registers the built-in recipes), and read-only thereafter; nothing here
// needs a lock.
var registry = make(map[string]Maker)

// Register adds maker to the registry under kind. It is called at startup,
// before the first Backward call. Calling it twice for the same kind
// overwrites the earlier recipe and prints a warning, matching how a
// duplicate registration here would otherwise be a silent footgun.
func Register(kind string, maker Maker) {
	if _, exists := registry[kind]; exists {
		fmt.Printf("Warning: overwriting existing gradient recipe for operator kind %q\n", kind)
	}
	registry[kind] = maker
}

// Lookup returns the Maker registered for kind, if any.
func Lookup(kind string) (Maker, bool) {
	maker, ok := registry[kind]
	return maker, ok
}

// MakeGradient differentiates fwd using its registered recipe.
func MakeGradient(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	maker, ok := registry[fwd.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredGradient, fwd.Kind)
	}

	return maker(fwd)
}
