package graph

// OpNode is either a Leaf carrying a single OpDesc, or a Composite ("net")
// holding an ordered sequence of child OpNodes. Composites may nest
// arbitrarily.
type OpNode interface {
	// Kind returns the leaf's descriptor kind, or the composite's kind
	// marker (NOPKind or GeneratedBackwardKind for nodes this package
	// produces).
	Kind() string
	// IsComposite reports whether this node is a Composite rather than a
	// Leaf.
	IsComposite() bool
}

// Leaf is a single operator invocation. StepNet is non-nil only when
// Desc.Kind is RecurrentKind (forward) or RecurrentGradKind (backward); it
// is owned exclusively by the Leaf and is itself transformed when the
// Recurrent operator is differentiated.
type Leaf struct {
	Desc    OpDesc
	StepNet OpNode
}

// NewLeaf wraps desc in a Leaf with no step-net.
func NewLeaf(desc OpDesc) *Leaf {
	return &Leaf{Desc: desc}
}

// Kind implements OpNode.
func (l *Leaf) Kind() string { return l.Desc.Kind }

// IsComposite implements OpNode.
func (l *Leaf) IsComposite() bool { return false }

// Composite is an ordered sequence of child OpNodes under one kind marker.
// A Composite with NodeKind == NOPKind is the canonical "does nothing"
// result and is distinguishable from an ordinary composite with zero
// children by its kind, not by Children being empty.
type Composite struct {
	NodeKind string
	Children []OpNode
}

// NewComposite returns an empty composite of the given kind.
func NewComposite(kind string) *Composite {
	return &Composite{NodeKind: kind}
}

// NOP returns the canonical empty composite signaling "no work".
func NOP() *Composite {
	return &Composite{NodeKind: NOPKind}
}

// Kind implements OpNode.
func (c *Composite) Kind() string { return c.NodeKind }

// IsComposite implements OpNode.
func (c *Composite) IsComposite() bool { return true }

// Append adds n as the last child.
func (c *Composite) Append(n OpNode) {
	c.Children = append(c.Children, n)
}

// Insert places n at position pos, shifting later children back by one. pos
// must be in [0, len(c.Children)].
func (c *Composite) Insert(pos int, n OpNode) {
	c.Children = append(c.Children, nil)
	copy(c.Children[pos+1:], c.Children[pos:])
	c.Children[pos] = n
}

var (
	_ OpNode = (*Leaf)(nil)
	_ OpNode = (*Composite)(nil)
)
