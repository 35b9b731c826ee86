package gradrules

import (
	"fmt"

	"github.com/aooxin/backward/graph"
)

// requireInputs reports ErrMalformedDescriptor if fwd is missing any of the
// named input slots, or a named slot is bound to no variables.
func requireInputs(fwd graph.OpDesc, slots ...string) error {
	return requireSlots(fwd.Kind, fwd.Inputs, "input", slots)
}

// requireOutputs reports ErrMalformedDescriptor if fwd is missing any of the
// named output slots, or a named slot is bound to no variables.
func requireOutputs(fwd graph.OpDesc, slots ...string) error {
	return requireSlots(fwd.Kind, fwd.Outputs, "output", slots)
}

func requireSlots(kind string, sm graph.SlotMap, side string, slots []string) error {
	for _, slot := range slots {
		if len(sm.Get(slot)) == 0 {
			return fmt.Errorf("%w: %s missing required %s slot %q", graph.ErrMalformedDescriptor, kind, side, slot)
		}
	}

	return nil
}

// passThroughInputs copies every input slot of fwd onto grad unchanged,
// for recipes whose gradient operator still needs the original forward
// operands (e.g. mul_grad needs both factors).
func passThroughInputs(fwd, grad graph.OpDesc) {
	for _, slot := range fwd.Inputs.Slots() {
		grad.Inputs.Set(slot, append([]string(nil), fwd.Inputs.Get(slot)...))
	}
}

// gradOfOutput returns GradName(v) for every variable bound to fwd's output
// slot, the values a gradient operator receives as the incoming gradient.
func gradOfOutput(fwd graph.OpDesc, outSlot string) []string {
	return gradNames(fwd.Outputs.Get(outSlot))
}

// gradOfInput returns GradName(v) for every variable bound to fwd's input
// slot, the values a gradient operator produces.
func gradOfInput(fwd graph.OpDesc, inSlot string) []string {
	return gradNames(fwd.Inputs.Get(inSlot))
}

func gradNames(vars []string) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = graph.GradName(v)
	}

	return out
}
