package graph

// CollectOutputVars returns, in order, every variable name written by any
// leaf inside n. It does not descend into a Recurrent leaf's step-net: a
// step-net's variables live in a separate scope from its parent's.
func CollectOutputVars(n OpNode) []string {
	var out []string
	walkLeaves(n, func(l *Leaf) {
		out = append(out, l.Desc.Outputs.Vars()...)
	})
	return out
}

// RenameVar rewrites every occurrence of oldName to newName across every
// leaf's input and output slot maps inside n, without descending into
// Recurrent step-nets.
func RenameVar(n OpNode, oldName, newName string) {
	walkLeaves(n, func(l *Leaf) {
		l.Desc.RenameVar(oldName, newName)
	})
}

// FlattenLeaves returns the OpDesc of every leaf inside n, in traversal
// order, or nil if n is the NOP composite. It does not descend into
// Recurrent step-nets.
func FlattenLeaves(n OpNode) []OpDesc {
	if c, ok := n.(*Composite); ok && c.NodeKind == NOPKind {
		return nil
	}
	var out []OpDesc
	walkLeaves(n, func(l *Leaf) {
		out = append(out, l.Desc)
	})
	return out
}

func walkLeaves(n OpNode, fn func(*Leaf)) {
	switch t := n.(type) {
	case *Leaf:
		fn(t)
	case *Composite:
		for _, child := range t.Children {
			walkLeaves(child, fn)
		}
	}
}
