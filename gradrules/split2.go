package gradrules

import "github.com/aooxin/backward/graph"

// split2Grad differentiates a two-output split, A, B = split2(X):
// dL/dX = dL/dA + dL/dB (an implicit sum the execution layer performs when
// it reads both output slots). It is the cleanest built-in example of the
// zero-fill path: a caller that only needs gradients for A leaves B@GRAD
// in the no-grad set, and the Propagator fills B's slot with zeros before
// split2_grad ever runs.
func split2Grad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if err := requireInputs(fwd, "X"); err != nil {
		return nil, err
	}
	if err := requireOutputs(fwd, "A", "B"); err != nil {
		return nil, err
	}

	grad := graph.NewOpDesc("split2_grad")
	grad.Inputs.Set(graph.GradName("A"), gradOfOutput(fwd, "A"))
	grad.Inputs.Set(graph.GradName("B"), gradOfOutput(fwd, "B"))
	grad.Outputs.Set(graph.GradName("X"), gradOfInput(fwd, "X"))

	return []graph.OpDesc{grad}, nil
}
