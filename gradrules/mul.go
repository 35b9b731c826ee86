package gradrules

import "github.com/aooxin/backward/graph"

// mulGrad differentiates Out = X * Y: dL/dX = dL/dOut * Y, dL/dY = dL/dOut
// * X. The gradient operator still needs the original operands, so X and Y
// pass through as plain inputs alongside the incoming output gradient.
func mulGrad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if err := requireInputs(fwd, "X", "Y"); err != nil {
		return nil, err
	}
	if err := requireOutputs(fwd, "Out"); err != nil {
		return nil, err
	}

	grad := graph.NewOpDesc("mul_grad")
	passThroughInputs(fwd, grad)
	grad.Inputs.Set(graph.GradName("Out"), gradOfOutput(fwd, "Out"))
	grad.Outputs.Set(graph.GradName("X"), gradOfInput(fwd, "X"))
	grad.Outputs.Set(graph.GradName("Y"), gradOfInput(fwd, "Y"))

	return []graph.OpDesc{grad}, nil
}
