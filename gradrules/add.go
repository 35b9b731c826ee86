package gradrules

import "github.com/aooxin/backward/graph"

// addGrad differentiates Out = X + Y: dL/dX = dL/dOut, dL/dY = dL/dOut.
// Unlike mul, the gradient needs neither operand, only the incoming output
// gradient.
func addGrad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if err := requireInputs(fwd, "X", "Y"); err != nil {
		return nil, err
	}
	if err := requireOutputs(fwd, "Out"); err != nil {
		return nil, err
	}

	grad := graph.NewOpDesc("add_grad")
	grad.Inputs.Set(graph.GradName("Out"), gradOfOutput(fwd, "Out"))
	grad.Outputs.Set(graph.GradName("X"), gradOfInput(fwd, "X"))
	grad.Outputs.Set(graph.GradName("Y"), gradOfInput(fwd, "Y"))

	return []graph.OpDesc{grad}, nil
}
