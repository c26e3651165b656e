package geojson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// describe names the kind of a JSON tree node for error messages. Scalars
// include their value.
func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool " + strconv.FormatBool(val)
	case string:
		return "string " + strconv.Quote(val)
	case []any:
		return fmt.Sprintf("array of length %d", len(val))
	case map[string]any:
		return "object"
	}
	if f, ok := Number(v); ok {
		return "number " + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("unsupported %T", v)
}

// missing is the Found text for an absent object member.
const missing = "nothing"

// Number extracts a number from a JSON tree node. Besides float64 it accepts
// float32, json.Number and Go integer kinds, which YAML decoders and
// hand-built trees produce.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// toObject extracts an object node. YAML decoders may hand back
// map[any]any for documents with non-string keys; those are rejected.
func toObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func toArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// field looks up key in obj. present is false when the key is absent.
func field(obj map[string]any, key string) (v any, present bool) {
	v, present = obj[key]
	return v, present
}

// copyTree returns a deep copy of a JSON tree node. Objects and arrays are
// reallocated; scalars are immutable and shared.
func copyTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyObject(val)
	case Properties:
		return copyObject(val)
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = copyTree(el)
		}
		return out
	default:
		return v
	}
}

func copyObject(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = copyTree(v)
	}
	return out
}
