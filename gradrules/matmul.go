package gradrules

import "github.com/aooxin/backward/graph"

// matmulGrad differentiates Out = X @ Y: dL/dX = dL/dOut @ Y^T, dL/dY =
// X^T @ dL/dOut. The transposes are the execution layer's concern; this
// recipe only wires which variables the gradient operator needs.
func matmulGrad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if err := requireInputs(fwd, "X", "Y"); err != nil {
		return nil, err
	}
	if err := requireOutputs(fwd, "Out"); err != nil {
		return nil, err
	}

	grad := graph.NewOpDesc("matmul_grad")
	passThroughInputs(fwd, grad)
	grad.Inputs.Set(graph.GradName("Out"), gradOfOutput(fwd, "Out"))
	grad.Outputs.Set(graph.GradName("X"), gradOfInput(fwd, "X"))
	grad.Outputs.Set(graph.GradName("Y"), gradOfInput(fwd, "Y"))

	return []graph.OpDesc{grad}, nil
}
