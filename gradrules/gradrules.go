// Package gradrules holds the built-in gradient recipes and registers them
// with the gradient factory.
package gradrules

import "github.com/aooxin/backward/gradient"

// RegisterAll registers every built-in gradient recipe. Callers that need a
// custom recipe set can skip this and call gradient.Register directly.
func RegisterAll() {
	gradient.Register("mul", mulGrad)
	gradient.Register("add", addGrad)
	gradient.Register("matmul", matmulGrad)
	gradient.Register("tanh", tanhGrad)
	gradient.Register("split2", split2Grad)
	gradient.Register("recurrent", recurrentGrad)
}
