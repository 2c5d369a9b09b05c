// Package codec renders entities and report rows for anything outside the process:
// field-named JSON objects, enums as their labels, timestamps in RFC 3339.
package codec

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

func Encode(w io.Writer, v any) error {
	enc := api.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToRecord flattens v into a field-named map.
func ToRecord(v any) (map[string]any, error) {
	b, err := api.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := api.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
