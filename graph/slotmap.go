package graph

// SlotMap is an ordered mapping from a named slot to the list of variable
// names bound to it. Order follows first insertion, not sorted key order,
// so iteration reflects the sequence a forward program declared its slots
// in rather than an incidental map ordering.
type SlotMap struct {
	order []string
	vars  map[string][]string
}

// NewSlotMap returns an empty SlotMap ready to use.
func NewSlotMap() SlotMap {
	return SlotMap{vars: make(map[string][]string)}
}

// Set binds vars to slot, preserving the position of the first Set call for
// that slot if it is called again.
func (m *SlotMap) Set(slot string, vars []string) {
	if m.vars == nil {
		m.vars = make(map[string][]string)
	}
	if _, exists := m.vars[slot]; !exists {
		m.order = append(m.order, slot)
	}
	m.vars[slot] = vars
}

// Get returns the variable names bound to slot, or nil if slot is unset.
func (m SlotMap) Get(slot string) []string {
	return m.vars[slot]
}

// Slots returns the slot names in insertion order.
func (m SlotMap) Slots() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Vars flattens every slot's variable names, in slot order, into one slice.
func (m SlotMap) Vars() []string {
	var out []string
	for _, slot := range m.order {
		out = append(out, m.vars[slot]...)
	}
	return out
}

// Clone returns a deep copy whose slices do not alias m's.
func (m SlotMap) Clone() SlotMap {
	cp := NewSlotMap()
	for _, slot := range m.order {
		vars := append([]string(nil), m.vars[slot]...)
		cp.Set(slot, vars)
	}
	return cp
}

// RenameVar rewrites every occurrence of oldName to newName across all
// slots, in place.
func (m SlotMap) RenameVar(oldName, newName string) {
	for _, slot := range m.order {
		vars := m.vars[slot]
		for i, v := range vars {
			if v == oldName {
				vars[i] = newName
			}
		}
	}
}
