package gradrules

import "github.com/aooxin/backward/graph"

// tanhGrad differentiates Out = tanh(X): dL/dX = dL/dOut * (1 - Out^2). The
// recipe needs the forward output, not the forward input.
func tanhGrad(fwd graph.OpDesc) ([]graph.OpDesc, error) {
	if err := fwd.Validate(); err != nil {
		return nil, err
	}
	if err := requireInputs(fwd, "X"); err != nil {
		return nil, err
	}
	if err := requireOutputs(fwd, "Out"); err != nil {
		return nil, err
	}

	grad := graph.NewOpDesc("tanh_grad")
	grad.Inputs.Set("Out", append([]string(nil), fwd.Outputs.Get("Out")...))
	grad.Inputs.Set(graph.GradName("Out"), gradOfOutput(fwd, "Out"))
	grad.Outputs.Set(graph.GradName("X"), gradOfInput(fwd, "X"))

	return []graph.OpDesc{grad}, nil
}
