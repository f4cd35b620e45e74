// Package multiselect is the single serialization boundary between the
// multi-value "improvement items" form field and the scalar text column it is
// stored in.
package multiselect

import "encoding/json"

// Encode produces the JSON array text stored in the improvement_items column.
// An empty or nil input encodes to "[]", never to an empty string, so the
// column is always valid JSON array text at rest.
func Encode(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		// A []string cannot fail to marshal; keep the at-rest invariant anyway.
		return "[]"
	}
	return string(data)
}

// Decode parses stored improvement_items text back into a slice. Absent,
// empty, or malformed input yields an empty slice. Decode never returns an
// error: historical rows written by older encoders must degrade to "no items"
// instead of breaking an entire view.
func Decode(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
