package geojson

import (
	"fmt"

	json "github.com/goccy/go-json"
	orbgeojson "github.com/paulmach/orb/geojson"
)

// NoProperties is the properties type for geometry-only or property-less data.
type NoProperties struct{}

// EncodeNoProperties always produces JSON null.
func EncodeNoProperties(NoProperties) any {
	return nil
}

// DecodeNoProperties ignores its input and always succeeds.
func DecodeNoProperties(any) (NoProperties, error) {
	return NoProperties{}, nil
}

// Properties is a schema-free properties object.
type Properties = orbgeojson.Properties

// EncodeMapProperties produces a copy of p as a JSON object. A nil map
// encodes as an empty object.
func EncodeMapProperties(p Properties) any {
	return copyObject(p)
}

// DecodeMapProperties accepts any JSON object and copies it, so the result
// shares no maps or slices with v.
func DecodeMapProperties(v any) (Properties, error) {
	obj, ok := toObject(v)
	if !ok {
		return nil, NewDecodeError("object", v)
	}
	return Properties(copyObject(obj)), nil
}

// StructProperties returns a codec pair that maps P to and from JSON through
// its json struct tags. A value json cannot marshal encodes as null.
func StructProperties[P any]() (PropertiesEncoder[P], PropertiesDecoder[P]) {
	enc := func(p P) any {
		data, err := json.Marshal(p)
		if err != nil {
			return nil
		}
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil
		}
		return tree
	}

	dec := func(v any) (P, error) {
		var p P
		data, err := json.Marshal(v)
		if err != nil {
			return p, &DecodeError{Expected: "JSON value", Found: describe(v), Cause: err}
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return p, &DecodeError{Expected: fmt.Sprintf("value decodable into %T", p), Found: describe(v), Cause: err}
		}
		return p, nil
	}

	return enc, dec
}
