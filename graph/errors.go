package graph

import "errors"

// ErrMalformedDescriptor is returned when an operator descriptor is missing
// a required slot or otherwise fails to satisfy the shape a gradient recipe
// expects of it.
var ErrMalformedDescriptor = errors.New("malformed operator descriptor")
