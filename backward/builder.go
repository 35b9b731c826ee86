package backward

import (
	"sort"

	"github.com/aooxin/backward/gradient"
	"github.com/aooxin/backward/graph"
	"github.com/aooxin/backward/types"
)

// defaultMaxStepNetDepth bounds how many Recurrent step-nets may nest
// before construction gives up and reports a cyclic step-net.
const defaultMaxStepNetDepth = 64

// Builder is the orchestrator: it walks a forward graph in reverse,
// consulting the No-Grad Propagator and Gradient Factory, renaming
// duplicated gradient writers and inserting accumulation operators as it
// goes.
type Builder struct {
	uid    *types.UIDCounter
	guard  *types.Guard
	tracer Tracer
}

// NewBuilder returns a Builder ready for one Backward invocation. Builders
// are not safe to reuse across invocations: the uid counter and guard are
// scoped to a single call.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		uid:   types.NewUIDCounter(),
		guard: types.NewGuard(defaultMaxStepNetDepth),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Backward synthesizes the backward graph for root, treating every name in
// userNoGradVars as excluded from gradient computation.
func Backward(root graph.OpNode, userNoGradVars []string, opts ...Option) (graph.OpNode, error) {
	b := NewBuilder(opts...)
	noGrad := seedNoGrad(userNoGradVars)

	return b.backwardRecursive(root, noGrad)
}

func seedNoGrad(userNoGradVars []string) *types.NoGradSet {
	s := types.NewNoGradSet(graph.GradName(graph.EmptyName))
	for _, v := range userNoGradVars {
		s.Insert(graph.GradName(v))
	}

	return s
}

func (b *Builder) backwardRecursive(n graph.OpNode, noGrad *types.NoGradSet) (graph.OpNode, error) {
	switch t := n.(type) {
	case *graph.Leaf:
		return b.backwardLeaf(t, noGrad)
	case *graph.Composite:
		return b.backwardComposite(t, noGrad)
	default:
		return nil, graph.ErrMalformedDescriptor
	}
}

func (b *Builder) backwardLeaf(fwd *graph.Leaf, noGrad *types.NoGradSet) (graph.OpNode, error) {
	if err := fwd.Desc.Validate(); err != nil {
		return nil, err
	}

	if classify(fwd.Desc, noGrad) == decisionSkip {
		return graph.NOP(), nil
	}

	raw, err := gradient.MakeGradient(fwd.Desc)
	if err != nil {
		return nil, err
	}

	full := rewrite(raw, noGrad)

	leaves := make([]*graph.Leaf, len(full))
	for i, d := range full {
		leaves[i] = graph.NewLeaf(d)
	}

	if fwd.Desc.Kind == graph.RecurrentKind {
		if err := b.attachStepNet(fwd, leaves, noGrad); err != nil {
			return nil, err
		}
	}

	if err := b.trace(fwd.Desc.Kind, leaves); err != nil {
		return nil, err
	}

	if len(leaves) == 1 {
		return leaves[0], nil
	}

	generated := graph.NewComposite(graph.GeneratedBackwardKind)
	for _, l := range leaves {
		generated.Append(l)
	}

	return generated, nil
}

func (b *Builder) attachStepNet(fwd *graph.Leaf, leaves []*graph.Leaf, noGrad *types.NoGradSet) error {
	exit, err := b.guard.Enter(fwd.Desc.Kind)
	if err != nil {
		return err
	}
	defer exit()

	childStep, err := b.backwardRecursive(fwd.StepNet, noGrad)
	if err != nil {
		return err
	}

	for _, l := range leaves {
		if l.Desc.Kind == graph.RecurrentGradKind {
			l.StepNet = childStep
		}
	}

	return nil
}

func (b *Builder) trace(forwardKind string, leaves []*graph.Leaf) error {
	if b.tracer == nil {
		return nil
	}

	for _, l := range leaves {
		if err := b.tracer.Record(l.Desc.Kind, forwardKind, l.Desc.Inputs.Vars(), l.Desc.Outputs.Vars()); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) backwardComposite(fwd *graph.Composite, noGrad *types.NoGradSet) (*graph.Composite, error) {
	uid0 := b.uid.Next()
	net := graph.NewComposite(graph.GeneratedBackwardKind)
	dupOutputOps := make(map[string][]int)

	for i := len(fwd.Children) - 1; i >= 0; i-- {
		backNode, err := b.backwardRecursive(fwd.Children[i], noGrad)
		if err != nil {
			return nil, err
		}

		localOpID := len(net.Children)
		for _, name := range graph.CollectOutputVars(backNode) {
			dupOutputOps[name] = append(dupOutputOps[name], localOpID)
		}

		net.Append(backNode)
	}

	insertions := resolveDuplicateWriters(net, dupOutputOps, uid0)

	sort.Slice(insertions, func(i, j int) bool { return insertions[i].pos > insertions[j].pos })
	for _, ins := range insertions {
		net.Insert(ins.pos, ins.leaf)
	}

	return net, nil
}

type insertion struct {
	pos  int
	leaf *graph.Leaf
}

// resolveDuplicateWriters finds every variable name written by two or more
// children of net, renames each writer's occurrence to a disjoint alias,
// and schedules an accumulate leaf just after the last writer to sum them
// back into the original name.
func resolveDuplicateWriters(net *graph.Composite, dupOutputOps map[string][]int, uid0 int) []insertion {
	var insertions []insertion

	for name, positions := range dupOutputOps {
		if name == graph.EmptyName || len(positions) < 2 {
			continue
		}

		aliases := make([]string, len(positions))
		for p, pos := range positions {
			alias := graph.RenameAlias(name, uid0, p)
			aliases[p] = alias
			graph.RenameVar(net.Children[pos], name, alias)
		}

		accumulate := graph.NewOpDesc(graph.AccumulateKind)
		accumulate.Inputs.Set("X", aliases)
		accumulate.Outputs.Set("Out", []string{name})

		lastWriter := positions[len(positions)-1]
		insertions = append(insertions, insertion{pos: lastWriter + 1, leaf: graph.NewLeaf(accumulate)})
	}

	return insertions
}

// AppendBackward performs the same algorithm as Backward but on a flat
// ordered block of descriptors, appending the synthesized gradient
// descriptors to the block rather than returning a nested node.
func AppendBackward(block []graph.OpDesc, userNoGradVars []string, opts ...Option) ([]graph.OpDesc, error) {
	b := NewBuilder(opts...)
	noGrad := seedNoGrad(userNoGradVars)

	fwd := graph.NewComposite("")
	for _, d := range block {
		fwd.Append(graph.NewLeaf(d))
	}

	backNode, err := b.backwardComposite(fwd, noGrad)
	if err != nil {
		return nil, err
	}

	grads := graph.FlattenLeaves(backNode)

	out := make([]graph.OpDesc, 0, len(block)+len(grads))
	out = append(out, block...)
	out = append(out, grads...)

	return out, nil
}
