package serialize

import "google.golang.org/protobuf/types/known/structpb"

// ValidateAttrs round-trips attrs through a protobuf Struct, rejecting any
// value the wire format cannot represent (e.g. channels, funcs) before it
// ever reaches a gradient recipe. A nil or empty map
// passes through as nil.
func ValidateAttrs(attrs map[string]interface{}) (map[string]interface{}, error) {
	if len(attrs) == 0 {
		return nil, nil
	}

	s, err := structpb.NewStruct(attrs)
	if err != nil {
		return nil, err
	}

	return s.AsMap(), nil
}
