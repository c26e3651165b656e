package geojson

import (
	"cmp"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// Marshal encodes g and serializes it to JSON text. GeoJSON members are
// written as type, then coordinates, geometries or features, then properties
// and id. Property objects keep sorted key order.
func Marshal[P any](g GeoJSON[P], enc PropertiesEncoder[P]) ([]byte, error) {
	return json.Marshal(ordered(Encode(g, enc)))
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent[P any](g GeoJSON[P], enc PropertiesEncoder[P], prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(ordered(Encode(g, enc)), prefix, indent)
}

type member struct {
	key   string
	value any
}

// orderedObject is a JSON object that serializes its members in slice order.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}

func memberRank(key string) int {
	switch key {
	case "type":
		return 0
	case "coordinates", "geometries", "geometry", "features":
		return 1
	case "properties":
		return 2
	case "id":
		return 3
	}
	return 4
}

// ordered rewrites the GeoJSON objects of an encoded tree as orderedObjects.
// Properties are left untouched.
func ordered(v any) any {
	switch val := v.(type) {
	case map[string]any:
		obj := make(orderedObject, 0, len(val))
		for k, el := range val {
			switch k {
			case "geometry":
				el = ordered(el)
			case "geometries", "features":
				if list, ok := el.([]any); ok {
					out := make([]any, len(list))
					for i, item := range list {
						out[i] = ordered(item)
					}
					el = out
				}
			}
			obj = append(obj, member{key: k, value: el})
		}
		slices.SortFunc(obj, func(a, b member) int {
			if c := cmp.Compare(memberRank(a.key), memberRank(b.key)); c != 0 {
				return c
			}
			return strings.Compare(a.key, b.key)
		})
		return obj
	default:
		return v
	}
}

// Unmarshal parses JSON text and decodes it. Text that is not JSON yields a
// *SyntaxError; text that is JSON but not GeoJSON yields a *DecodeError.
func Unmarshal[P any](data []byte, dec PropertiesDecoder[P]) (GeoJSON[P], error) {
	tree, err := ParseJSON(data)
	if err != nil {
		return GeoJSON[P]{}, err
	}
	return Decode(tree, dec)
}

// ParseJSON parses JSON text into the generic tree Decode consumes.
func ParseJSON(data []byte) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return tree, nil
}

// Codec bundles a properties encoder and decoder so callers do not have to
// pass them on every call.
type Codec[P any] struct {
	EncodeProperties PropertiesEncoder[P]
	DecodeProperties PropertiesDecoder[P]
}

// NewCodec returns a codec using the given properties functions.
func NewCodec[P any](enc PropertiesEncoder[P], dec PropertiesDecoder[P]) Codec[P] {
	return Codec[P]{EncodeProperties: enc, DecodeProperties: dec}
}

// GeometryCodec is the codec for data without properties.
func GeometryCodec() Codec[NoProperties] {
	return NewCodec[NoProperties](EncodeNoProperties, DecodeNoProperties)
}

// MapCodec is the codec for schema-free property objects.
func MapCodec() Codec[Properties] {
	return NewCodec[Properties](EncodeMapProperties, DecodeMapProperties)
}

// StructCodec is the codec for properties described by json struct tags.
func StructCodec[P any]() Codec[P] {
	enc, dec := StructProperties[P]()
	return NewCodec(enc, dec)
}

func (c Codec[P]) Encode(g GeoJSON[P]) any {
	return Encode(g, c.EncodeProperties)
}

func (c Codec[P]) Decode(v any) (GeoJSON[P], error) {
	return Decode(v, c.DecodeProperties)
}

func (c Codec[P]) Marshal(g GeoJSON[P]) ([]byte, error) {
	return Marshal(g, c.EncodeProperties)
}

func (c Codec[P]) MarshalIndent(g GeoJSON[P], prefix, indent string) ([]byte, error) {
	return MarshalIndent(g, c.EncodeProperties, prefix, indent)
}

func (c Codec[P]) Unmarshal(data []byte) (GeoJSON[P], error) {
	return Unmarshal(data, c.DecodeProperties)
}
