package backward

import (
	"github.com/aooxin/backward/gradient"
	"github.com/aooxin/backward/graph"
	"github.com/aooxin/backward/types"
)

// Re-exported so callers never need to import gradient/graph/types directly
// just to compare against errors this package can return.
var (
	ErrUnregisteredGradient = gradient.ErrUnregisteredGradient
	ErrCyclicStepNet        = types.ErrCyclicStepNet
	ErrMalformedDescriptor  = graph.ErrMalformedDescriptor
)
