// Package types holds the small pieces of mutable state threaded through a
// single backward-construction pass: the no-grad set, the unique-id
// counter, and the recursion-depth guard.
package types

import "errors"

// ErrCyclicStepNet is returned when a Recurrent operator's step-net nests
// Recurrent operators past the configured depth guard, the symptom of a
// step-net that (directly or indirectly) contains itself.
var ErrCyclicStepNet = errors.New("step-net recursion exceeded maximum depth")
