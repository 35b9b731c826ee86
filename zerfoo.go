// Package zerfoo provides a prelude of commonly used types for the
// backward-graph construction subsystem, so callers can write
// zerfoo.OpDesc instead of graph.OpDesc.
package zerfoo

import (
	"github.com/aooxin/backward/backward"
	"github.com/aooxin/backward/graph"
)

type (
	// OpDesc is one operator invocation: a kind plus input/output slot maps.
	OpDesc = graph.OpDesc

	// OpNode is either a Leaf or a Composite; see the graph package.
	OpNode = graph.OpNode

	// Leaf is a single operator invocation node.
	Leaf = graph.Leaf

	// Composite is an ordered sequence of child OpNodes.
	Composite = graph.Composite

	// Option configures a Backward invocation.
	Option = backward.Option
)

// Backward synthesizes the backward graph for root, treating every name in
// userNoGradVars as excluded from gradient computation.
func Backward(root OpNode, userNoGradVars []string, opts ...Option) (OpNode, error) {
	return backward.Backward(root, userNoGradVars, opts...)
}

// AppendBackward performs the same synthesis on a flat descriptor block,
// appending the resulting gradient descriptors to it.
func AppendBackward(block []OpDesc, userNoGradVars []string, opts ...Option) ([]OpDesc, error) {
	return backward.AppendBackward(block, userNoGradVars, opts...)
}
