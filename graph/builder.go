package graph

// Builder provides a fluent API for assembling a forward OpNode tree one
// operator at a time, the way a tracer or a program loader would emit it.
type Builder struct {
	root *Composite
}

// NewBuilder returns a Builder whose root composite has the given kind
// marker (e.g. GeneratedBackwardKind when used internally, or a caller's own
// program-kind string).
func NewBuilder(kind string) *Builder {
	return &Builder{root: NewComposite(kind)}
}

// Leaf appends desc as a leaf operator invocation and returns the Leaf so
// callers can attach a step-net for Recurrent-kind descriptors.
func (b *Builder) Leaf(desc OpDesc) *Leaf {
	l := NewLeaf(desc)
	b.root.Append(l)

	return l
}

// Composite opens a nested composite of the given kind, appends it to the
// builder's current root, and returns a Builder scoped to it so the caller
// can keep chaining Leaf/Composite calls for the nested block.
func (b *Builder) Composite(kind string) *Builder {
	c := NewComposite(kind)
	b.root.Append(c)

	return &Builder{root: c}
}

// Build returns the assembled tree's root node.
func (b *Builder) Build() OpNode {
	return b.root
}
