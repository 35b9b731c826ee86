// Package serialize converts between the in-memory OpNode/OpDesc graph and
// a JSON wire representation, validating attribute bags through
// protobuf's structpb along the way so a malformed attrs map is rejected
// at the boundary instead of surfacing as a mysterious failure deep inside
// a gradient recipe.
package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/aooxin/backward/graph"
)

// WireSlot is one slot to variable-list binding, ordered.
type WireSlot struct {
	Slot string   `json:"slot"`
	Vars []string `json:"vars"`
}

// WireOpDesc is the JSON form of graph.OpDesc.
type WireOpDesc struct {
	Kind    string                 `json:"kind"`
	Inputs  []WireSlot             `json:"inputs"`
	Outputs []WireSlot             `json:"outputs"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
}

// WireNode is the JSON form of graph.OpNode: a leaf has Desc set, a
// composite has Composite=true and Children set. StepNet is set only for
// a Recurrent leaf.
type WireNode struct {
	Composite bool        `json:"composite"`
	Kind      string      `json:"kind,omitempty"`
	Desc      *WireOpDesc `json:"desc,omitempty"`
	StepNet   *WireNode   `json:"step_net,omitempty"`
	Children  []*WireNode `json:"children,omitempty"`
}

// ToWire converts an in-memory OpNode into its wire form.
func ToWire(n graph.OpNode) (*WireNode, error) {
	switch t := n.(type) {
	case *graph.Leaf:
		return leafToWire(t)
	case *graph.Composite:
		return compositeToWire(t)
	default:
		return nil, fmt.Errorf("serialize: unknown OpNode implementation %T", n)
	}
}

func leafToWire(l *graph.Leaf) (*WireNode, error) {
	desc, err := toWireOpDesc(l.Desc)
	if err != nil {
		return nil, err
	}

	w := &WireNode{Kind: l.Desc.Kind, Desc: desc}

	if l.StepNet != nil {
		step, err := ToWire(l.StepNet)
		if err != nil {
			return nil, err
		}

		w.StepNet = step
	}

	return w, nil
}

func compositeToWire(c *graph.Composite) (*WireNode, error) {
	w := &WireNode{Composite: true, Kind: c.NodeKind}

	for _, child := range c.Children {
		cw, err := ToWire(child)
		if err != nil {
			return nil, err
		}

		w.Children = append(w.Children, cw)
	}

	return w, nil
}

// FromWire reconstructs an in-memory OpNode from its wire form.
func FromWire(w *WireNode) (graph.OpNode, error) {
	if w.Composite {
		c := graph.NewComposite(w.Kind)

		for _, cw := range w.Children {
			child, err := FromWire(cw)
			if err != nil {
				return nil, err
			}

			c.Append(child)
		}

		return c, nil
	}

	if w.Desc == nil {
		return nil, fmt.Errorf("serialize: leaf node %q missing desc", w.Kind)
	}

	desc, err := fromWireOpDesc(*w.Desc)
	if err != nil {
		return nil, err
	}

	leaf := graph.NewLeaf(desc)

	if w.StepNet != nil {
		step, err := FromWire(w.StepNet)
		if err != nil {
			return nil, err
		}

		leaf.StepNet = step
	}

	return leaf, nil
}

func toWireOpDesc(d graph.OpDesc) (*WireOpDesc, error) {
	attrs, err := ValidateAttrs(d.Attrs)
	if err != nil {
		return nil, err
	}

	return &WireOpDesc{
		Kind:    d.Kind,
		Inputs:  toWireSlots(d.Inputs),
		Outputs: toWireSlots(d.Outputs),
		Attrs:   attrs,
	}, nil
}

func fromWireOpDesc(w WireOpDesc) (graph.OpDesc, error) {
	attrs, err := ValidateAttrs(w.Attrs)
	if err != nil {
		return graph.OpDesc{}, err
	}

	d := graph.NewOpDesc(w.Kind)
	d.Attrs = attrs

	fromWireSlots(&d.Inputs, w.Inputs)
	fromWireSlots(&d.Outputs, w.Outputs)

	if err := d.Validate(); err != nil {
		return graph.OpDesc{}, err
	}

	return d, nil
}

func toWireSlots(m graph.SlotMap) []WireSlot {
	slots := m.Slots()
	out := make([]WireSlot, len(slots))

	for i, slot := range slots {
		out[i] = WireSlot{Slot: slot, Vars: m.Get(slot)}
	}

	return out
}

func fromWireSlots(m *graph.SlotMap, wire []WireSlot) {
	for _, s := range wire {
		m.Set(s.Slot, s.Vars)
	}
}

// MarshalJSON encodes n as indented JSON.
func MarshalJSON(n graph.OpNode) ([]byte, error) {
	w, err := ToWire(n)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalJSON decodes a JSON-encoded forward or backward graph.
func UnmarshalJSON(data []byte) (graph.OpNode, error) {
	var w WireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	return FromWire(&w)
}
