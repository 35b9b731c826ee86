// Package backward synthesizes a gradient computation graph from a forward
// operator graph: the Backward Builder, orchestrating the No-Grad
// Propagator and the Gradient Factory over a reverse traversal.
package backward

import (
	"github.com/aooxin/backward/graph"
	"github.com/aooxin/backward/types"
)

type decision int

const (
	decisionSkip decision = iota
	decisionSynthesize
)

// classify applies the No-Grad Propagator's rules to fwd against noGrad,
// mutating noGrad in place when rule 2 fires.
func classify(fwd graph.OpDesc, noGrad *types.NoGradSet) decision {
	inputGrads := gradNames(fwd.Inputs.Vars())
	if noGrad.ContainsAll(inputGrads) {
		return decisionSkip
	}

	outputGrads := gradNames(fwd.Outputs.Vars())
	if noGrad.ContainsAll(outputGrads) {
		for _, g := range inputGrads {
			noGrad.Insert(g)
		}

		return decisionSkip
	}

	return decisionSynthesize
}

func gradNames(vars []string) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = graph.GradName(v)
	}

	return out
}

// rewrite applies the Propagator's zero-fill and empty-name rewrites to the
// gradient descriptors a recipe produced, returning the fill-zeros-like
// leaves prepended ahead of the (possibly renamed) gradient descriptors.
func rewrite(grads []graph.OpDesc, noGrad *types.NoGradSet) []graph.OpDesc {
	var fills []graph.OpDesc

	out := make([]graph.OpDesc, len(grads))

	for i, d := range grads {
		d = d.Clone()

		for _, slot := range d.Inputs.Slots() {
			vars := d.Inputs.Get(slot)
			for j, v := range vars {
				if !noGrad.Contains(v) {
					continue
				}

				stripped := graph.StripGrad(v)
				zeroName := graph.ZeroName(stripped)

				fill := graph.NewOpDesc(graph.FillZerosLikeKind)
				fill.Inputs.Set("X", []string{stripped})
				fill.Outputs.Set("Y", []string{zeroName})
				fills = append(fills, fill)

				vars[j] = zeroName
			}

			d.Inputs.Set(slot, vars)
		}

		for _, slot := range d.Outputs.Slots() {
			vars := d.Outputs.Get(slot)
			for j, v := range vars {
				if noGrad.Contains(v) {
					vars[j] = graph.EmptyName
				}
			}

			d.Outputs.Set(slot, vars)
		}

		out[i] = d
	}

	return append(fills, out...)
}
