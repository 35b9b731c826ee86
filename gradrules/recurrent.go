package gradrules

import (
	"fmt"

	"github.com/aooxin/backward/graph"
)

// recurrentGrad produces the shell descriptor for a Recurrent operator's
// gradient. The Builder itself fills in the step-net by recursively
// differentiating the forward step-net and attaching it to the resulting
// leaf; this recipe only wires the outer input/output slots.
func recurrentGrad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if len(fwd.Inputs.Slots()) == 0 {
		return nil, fmt.Errorf("%w: %s has no input slots", graph.ErrMalformedDescriptor, fwd.Kind)
	}
	if len(fwd.Outputs.Slots()) == 0 {
		return nil, fmt.Errorf("%w: %s has no output slots", graph.ErrMalformedDescriptor, fwd.Kind)
	}

	grad := graph.NewOpDesc(graph.RecurrentGradKind)
	for _, slot := range fwd.Outputs.Slots() {
		grad.Inputs.Set(graph.GradName(slot), gradOfOutput(fwd, slot))
	}

	for _, slot := range fwd.Inputs.Slots() {
		grad.Outputs.Set(graph.GradName(slot), gradOfInput(fwd, slot))
	}

	return []graph.OpDesc{grad}, nil
}
