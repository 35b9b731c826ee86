package gradrules

import (
	"testing"

	"github.com/aooxin/backward/gradient"
	"github.com/aooxin/backward/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulGrad(t *testing.T) {
	fwd := graph.NewOpDesc("mul")
	fwd.Inputs.Set("X", []string{"a"})
	fwd.Inputs.Set("Y", []string{"b"})
	fwd.Outputs.Set("Out", []string{"c"})

	grads, err := mulGrad(fwd)
	require.NoError(t, err)
	require.Len(t, grads, 1)

	g := grads[0]
	assert.Equal(t, "mul_grad", g.Kind)
	assert.Equal(t, []string{"a"}, g.Inputs.Get("X"))
	assert.Equal(t, []string{"b"}, g.Inputs.Get("Y"))
	assert.Equal(t, []string{"c@GRAD"}, g.Inputs.Get("Out@GRAD"))
	assert.Equal(t, []string{"a@GRAD"}, g.Outputs.Get("X@GRAD"))
	assert.Equal(t, []string{"b@GRAD"}, g.Outputs.Get("Y@GRAD"))
}

func TestSplit2GradWiresBothOutputs(t *testing.T) {
	fwd := graph.NewOpDesc("split2")
	fwd.Inputs.Set("X", []string{"x"})
	fwd.Outputs.Set("A", []string{"a"})
	fwd.Outputs.Set("B", []string{"b"})

	grads, err := split2Grad(fwd)
	require.NoError(t, err)
	require.Len(t, grads, 1)

	g := grads[0]
	assert.Equal(t, []string{"a@GRAD"}, g.Inputs.Get("A@GRAD"))
	assert.Equal(t, []string{"b@GRAD"}, g.Inputs.Get("B@GRAD"))
	assert.Equal(t, []string{"x@GRAD"}, g.Outputs.Get("X@GRAD"))
}

func TestRecurrentGradShellHasNoStepNet(t *testing.T) {
	fwd := graph.NewOpDesc("recurrent")
	fwd.Inputs.Set("X", []string{"x"})
	fwd.Outputs.Set("Out", []string{"y"})

	grads, err := recurrentGrad(fwd)
	require.NoError(t, err)
	require.Len(t, grads, 1)
	assert.Equal(t, graph.RecurrentGradKind, grads[0].Kind)
}

func TestRegisterAllPopulatesFactory(t *testing.T) {
	RegisterAll()

	for _, kind := range []string{"mul", "add", "matmul", "tanh", "split2", "recurrent"} {
		fwd := graph.NewOpDesc(kind)
		fwd.Inputs.Set("X", []string{"x"})
		fwd.Outputs.Set("Out", []string{"y"})

		switch kind {
		case "mul", "add", "matmul":
			fwd.Inputs.Set("Y", []string{"yvar"})
		case "split2":
			fwd.Outputs.Set("A", []string{"a"})
			fwd.Outputs.Set("B", []string{"b"})
		}

		_, err := gradient.MakeGradient(fwd)
		require.NoError(t, err, kind)
	}
}

func TestMulGradMissingInputSlotIsMalformed(t *testing.T) {
	fwd := graph.NewOpDesc("mul")
	fwd.Inputs.Set("X", []string{"a"})
	fwd.Outputs.Set("Out", []string{"c"})

	_, err := mulGrad(fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}

func TestMulGradMissingOutputSlotIsMalformed(t *testing.T) {
	fwd := graph.NewOpDesc("mul")
	fwd.Inputs.Set("X", []string{"a"})
	fwd.Inputs.Set("Y", []string{"b"})

	_, err := mulGrad(fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}

func TestTanhGradMissingInputSlotIsMalformed(t *testing.T) {
	fwd := graph.NewOpDesc("tanh")
	fwd.Outputs.Set("Out", []string{"y"})

	_, err := tanhGrad(fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}

func TestSplit2GradMissingOutputSlotIsMalformed(t *testing.T) {
	fwd := graph.NewOpDesc("split2")
	fwd.Inputs.Set("X", []string{"x"})
	fwd.Outputs.Set("A", []string{"a"})

	_, err := split2Grad(fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}

func TestRecurrentGradMissingSlotsIsMalformed(t *testing.T) {
	fwd := graph.NewOpDesc("recurrent")

	_, err := recurrentGrad(fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}
