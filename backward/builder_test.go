package backward

import (
	"sync"
	"testing"

	"github.com/aooxin/backward/gradient"
	"github.com/aooxin/backward/gradrules"
	"github.com/aooxin/backward/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registerOnce sync.Once

func registerBuiltins() {
	registerOnce.Do(gradrules.RegisterAll)
}

func mulLeaf(x, y, out string) *graph.Leaf {
	d := graph.NewOpDesc("mul")
	d.Inputs.Set("X", []string{x})
	d.Inputs.Set("Y", []string{y})
	d.Outputs.Set("Out", []string{out})

	return graph.NewLeaf(d)
}

func addLeaf(x, y, out string) *graph.Leaf {
	d := graph.NewOpDesc("add")
	d.Inputs.Set("X", []string{x})
	d.Inputs.Set("Y", []string{y})
	d.Outputs.Set("Out", []string{out})

	return graph.NewLeaf(d)
}

// Scenario 1: single leaf, no suppression.
func TestBackwardSingleLeafNoSuppression(t *testing.T) {
	registerBuiltins()

	result, err := Backward(mulLeaf("a", "b", "c"), nil)
	require.NoError(t, err)

	leaf, ok := result.(*graph.Leaf)
	require.True(t, ok, "expected a bare leaf, got %T", result)
	assert.Equal(t, "mul_grad", leaf.Desc.Kind)
	assert.Equal(t, []string{"a@GRAD"}, leaf.Desc.Outputs.Get("X@GRAD"))
	assert.Equal(t, []string{"b@GRAD"}, leaf.Desc.Outputs.Get("Y@GRAD"))
}

// Scenario 2: single leaf, input fully suppressed.
func TestBackwardInputFullySuppressed(t *testing.T) {
	registerBuiltins()

	result, err := Backward(mulLeaf("a", "b", "c"), []string{"a", "b"})
	require.NoError(t, err)

	c, ok := result.(*graph.Composite)
	require.True(t, ok)
	assert.Equal(t, graph.NOPKind, c.Kind())
}

// Scenario 3: single leaf, output fully suppressed.
func TestBackwardOutputFullySuppressed(t *testing.T) {
	registerBuiltins()

	noGrad := seedNoGrad(nil)
	noGrad.Insert(graph.GradName("c"))

	b := NewBuilder()
	result, err := b.backwardRecursive(mulLeaf("a", "b", "c"), noGrad)
	require.NoError(t, err)

	c, ok := result.(*graph.Composite)
	require.True(t, ok)
	assert.Equal(t, graph.NOPKind, c.Kind())
	assert.True(t, noGrad.Contains(graph.GradName("a")))
	assert.True(t, noGrad.Contains(graph.GradName("b")))
}

// Scenario 4: duplicate-writer composite.
func TestBackwardDuplicateWriterComposite(t *testing.T) {
	registerBuiltins()

	fwd := graph.NewComposite("program")
	fwd.Append(addLeaf("x", "p", "y"))
	fwd.Append(addLeaf("x", "q", "y"))

	result, err := Backward(fwd, nil)
	require.NoError(t, err)

	net, ok := result.(*graph.Composite)
	require.True(t, ok)

	var accumulate *graph.Leaf

	var aliases []string

	for _, child := range net.Children {
		leaf, ok := child.(*graph.Leaf)
		if !ok {
			continue
		}

		if leaf.Desc.Kind == graph.AccumulateKind {
			accumulate = leaf
		} else {
			aliases = append(aliases, leaf.Desc.Outputs.Get("X@GRAD")...)
		}
	}

	require.NotNil(t, accumulate, "expected an accumulate leaf for the duplicate writer")
	assert.ElementsMatch(t, aliases, accumulate.Desc.Inputs.Get("X"))
	assert.Equal(t, []string{"x@GRAD"}, accumulate.Desc.Outputs.Get("Out"))

	lastLeafIdx := len(net.Children) - 2
	accumulateIdx := len(net.Children) - 1
	assert.Equal(t, graph.AccumulateKind, net.Children[accumulateIdx].Kind())
	assert.NotEqual(t, graph.AccumulateKind, net.Children[lastLeafIdx].Kind())
}

// Scenario 5 (generalized with split2, per the Open Question resolution
// documented in SPEC_FULL.md): partial no-grad causing zero-fill.
func TestBackwardPartialNoGradZeroFill(t *testing.T) {
	registerBuiltins()

	d := graph.NewOpDesc("split2")
	d.Inputs.Set("X", []string{"x"})
	d.Outputs.Set("A", []string{"a"})
	d.Outputs.Set("B", []string{"b"})

	result, err := Backward(graph.NewLeaf(d), []string{"b"})
	require.NoError(t, err)

	net, ok := result.(*graph.Composite)
	require.True(t, ok)
	require.Len(t, net.Children, 2)

	fill, ok := net.Children[0].(*graph.Leaf)
	require.True(t, ok)
	assert.Equal(t, graph.FillZerosLikeKind, fill.Desc.Kind)
	assert.Equal(t, []string{"b"}, fill.Desc.Inputs.Get("X"))
	assert.Equal(t, []string{"b@ZERO"}, fill.Desc.Outputs.Get("Y"))

	grad, ok := net.Children[1].(*graph.Leaf)
	require.True(t, ok)
	assert.Equal(t, []string{"b@ZERO"}, grad.Desc.Inputs.Get("B@GRAD"))
}

// Scenario 6: recurrent.
func TestBackwardRecurrent(t *testing.T) {
	registerBuiltins()

	tanhDesc := graph.NewOpDesc("tanh")
	tanhDesc.Inputs.Set("X", []string{"h0"})
	tanhDesc.Outputs.Set("Out", []string{"h1"})

	recurrentDesc := graph.NewOpDesc(graph.RecurrentKind)
	recurrentDesc.Inputs.Set("X", []string{"h0"})
	recurrentDesc.Outputs.Set("Out", []string{"h1"})

	fwd := graph.NewLeaf(recurrentDesc)
	fwd.StepNet = graph.NewLeaf(tanhDesc)

	result, err := Backward(fwd, nil)
	require.NoError(t, err)

	leaf, ok := result.(*graph.Leaf)
	require.True(t, ok)
	assert.Equal(t, graph.RecurrentGradKind, leaf.Desc.Kind)
	require.NotNil(t, leaf.StepNet)

	stepGrad, ok := leaf.StepNet.(*graph.Leaf)
	require.True(t, ok)
	assert.Equal(t, "tanh_grad", stepGrad.Desc.Kind)
}

func TestBackwardUnregisteredGradient(t *testing.T) {
	gradient.Register("__unused_for_registration_side_effect__", func(graph.OpDesc) ([]graph.OpDesc, error) { return nil, nil })

	d := graph.NewOpDesc("definitely-not-registered")
	d.Inputs.Set("X", []string{"a"})
	d.Outputs.Set("Out", []string{"c"})

	_, err := Backward(graph.NewLeaf(d), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnregisteredGradient)
}

func TestBackwardMissingRequiredSlotIsMalformed(t *testing.T) {
	registerBuiltins()

	d := graph.NewOpDesc("mul")
	d.Inputs.Set("X", []string{"a"})
	d.Outputs.Set("Out", []string{"c"})

	_, err := Backward(graph.NewLeaf(d), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMalformedDescriptor)
}

func TestAppendBackwardAppendsToBlock(t *testing.T) {
	registerBuiltins()

	block := []graph.OpDesc{mulLeaf("a", "b", "c").Desc}

	out, err := AppendBackward(block, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "mul", out[0].Kind)
	assert.Equal(t, "mul_grad", out[1].Kind)
}
