// Package gradient holds the process-wide registry of gradient recipes: the
// mapping from a forward operator kind to the function that synthesizes its
// backward descriptors.
package gradient

import "errors"

// ErrUnregisteredGradient is returned when MakeGradient is asked to
// differentiate an operator kind no recipe has registered.
var ErrUnregisteredGradient = errors.New("no gradient recipe registered for operator kind")
