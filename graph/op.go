package graph

// OpDesc is the atom the backward-graph transformation manipulates: one
// operator invocation, identified by kind, with ordered input and output
// slot maps and an opaque attribute bag that is passed through unchanged.
type OpDesc struct {
	Kind    string
	Inputs  SlotMap
	Outputs SlotMap
	Attrs   map[string]interface{}
}

// NewOpDesc returns an OpDesc of the given kind with empty slot maps.
func NewOpDesc(kind string) OpDesc {
	return OpDesc{
		Kind:    kind,
		Inputs:  NewSlotMap(),
		Outputs: NewSlotMap(),
		Attrs:   make(map[string]interface{}),
	}
}

// Clone returns a deep copy of the slot maps; Attrs is shared, since it is
// documented as opaque and passed through unchanged by every component that
// touches an OpDesc.
func (d OpDesc) Clone() OpDesc {
	return OpDesc{
		Kind:    d.Kind,
		Inputs:  d.Inputs.Clone(),
		Outputs: d.Outputs.Clone(),
		Attrs:   d.Attrs,
	}
}

// RenameVar rewrites oldName to newName across both slot maps, in place.
func (d *OpDesc) RenameVar(oldName, newName string) {
	d.Inputs.RenameVar(oldName, newName)
	d.Outputs.RenameVar(oldName, newName)
}

// Validate reports ErrMalformedDescriptor if d cannot possibly be a valid
// operator invocation. It does not know about kind-specific slot
// requirements; those are enforced by the registered gradient recipe.
func (d OpDesc) Validate() error {
	if d.Kind == "" {
		return ErrMalformedDescriptor
	}
	return nil
}
