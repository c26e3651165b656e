package geojson

import (
	"strings"
)

// PropertiesDecoder reconstructs a properties value from the JSON tree found
// under a feature's "properties" member. It is never called for an absent or
// null member. Errors it returns are reported at the "properties" path; a
// returned *DecodeError keeps its own path below that point.
type PropertiesDecoder[P any] func(any) (P, error)

// Decode reconstructs a GeoJSON object from a JSON tree. Decoding is strict
// and stops at the first mismatch; the returned error is a *DecodeError.
func Decode[P any](v any, dec PropertiesDecoder[P]) (GeoJSON[P], error) {
	obj, t, err := readType(v)
	if err != nil {
		return GeoJSON[P]{}, err
	}

	switch {
	case t.IsGeometry():
		g, err := decodeGeometryObject(obj, t)
		if err != nil {
			return GeoJSON[P]{}, err
		}
		return FromGeometry[P](g), nil
	case t == TypeFeature:
		f, err := decodeFeatureObject(obj, dec)
		if err != nil {
			return GeoJSON[P]{}, err
		}
		return FromFeature(f), nil
	case t == TypeFeatureCollection:
		fc, err := decodeFeatureCollectionObject(obj, dec)
		if err != nil {
			return GeoJSON[P]{}, err
		}
		return FromFeatureCollection(fc), nil
	}
	return GeoJSON[P]{}, unknownType(objectTypes, obj["type"])
}

// DecodeGeometry reconstructs a geometry. Feature and FeatureCollection are
// rejected.
func DecodeGeometry(v any) (Geometry, error) {
	obj, t, err := readType(v)
	if err != nil {
		return nil, err
	}
	if !t.IsGeometry() {
		return nil, unknownType(geometryTypes, obj["type"])
	}
	return decodeGeometryObject(obj, t)
}

// DecodeFeature reconstructs a feature.
func DecodeFeature[P any](v any, dec PropertiesDecoder[P]) (Feature[P], error) {
	obj, t, err := readType(v)
	if err != nil {
		return Feature[P]{}, err
	}
	if t != TypeFeature {
		return Feature[P]{}, unknownType([]Type{TypeFeature}, obj["type"])
	}
	return decodeFeatureObject(obj, dec)
}

// DecodeFeatureCollection reconstructs a feature collection.
func DecodeFeatureCollection[P any](v any, dec PropertiesDecoder[P]) (FeatureCollection[P], error) {
	obj, t, err := readType(v)
	if err != nil {
		return FeatureCollection[P]{}, err
	}
	if t != TypeFeatureCollection {
		return FeatureCollection[P]{}, unknownType([]Type{TypeFeatureCollection}, obj["type"])
	}
	return decodeFeatureCollectionObject(obj, dec)
}

// readType checks that v is an object and returns its "type" member.
func readType(v any) (map[string]any, Type, error) {
	obj, ok := toObject(v)
	if !ok {
		return nil, "", &DecodeError{Expected: "object", Found: describe(v)}
	}
	tv, present := field(obj, "type")
	if !present {
		return nil, "", &DecodeError{Expected: "type field", Found: missing}
	}
	s, ok := tv.(string)
	if !ok {
		return nil, "", &DecodeError{Expected: "type field", Found: describe(tv)}
	}
	return obj, Type(s), nil
}

func unknownType(accepted []Type, found any) *DecodeError {
	names := make([]string, len(accepted))
	for i, t := range accepted {
		names[i] = string(t)
	}
	expected := names[0]
	if len(names) > 1 {
		expected = "one of " + strings.Join(names, ", ")
	}
	return &DecodeError{Expected: expected, Found: describe(found), Path: Path{"type"}}
}

func decodeGeometryObject(obj map[string]any, t Type) (Geometry, error) {
	if t == TypeGeometryCollection {
		return decodeGeometryCollection(obj)
	}

	coords, present := field(obj, "coordinates")
	if !present {
		return nil, &DecodeError{Expected: "coordinates field", Found: missing, Path: Path{"coordinates"}}
	}

	var (
		g   Geometry
		err error
	)
	switch t {
	case TypePoint:
		var p Position
		p, err = decodePosition(coords)
		g = Point(p)
	case TypeMultiPoint:
		var ps []Position
		ps, err = decodePositions(coords)
		g = MultiPoint(ps)
	case TypeLineString:
		var ps []Position
		ps, err = decodePositions(coords)
		g = LineString(ps)
	case TypeMultiLineString:
		var ps [][]Position
		ps, err = decodePositions2(coords)
		g = MultiLineString(ps)
	case TypePolygon:
		var ps [][]Position
		ps, err = decodePositions2(coords)
		g = Polygon(ps)
	case TypeMultiPolygon:
		var ps [][][]Position
		ps, err = decodePositions3(coords)
		g = MultiPolygon(ps)
	default:
		return nil, unknownType(geometryTypes, string(t))
	}
	if err != nil {
		return nil, at(err, "coordinates")
	}
	return g, nil
}

func decodeGeometryCollection(obj map[string]any) (Geometry, error) {
	gv, present := field(obj, "geometries")
	if !present {
		return nil, &DecodeError{Expected: "geometries field", Found: missing, Path: Path{"geometries"}}
	}
	arr, ok := toArray(gv)
	if !ok {
		return nil, &DecodeError{Expected: "array of geometries", Found: describe(gv), Path: Path{"geometries"}}
	}

	coll := make(GeometryCollection, len(arr))
	for i, el := range arr {
		g, err := DecodeGeometry(el)
		if err != nil {
			return nil, at(err, "geometries", i)
		}
		coll[i] = g
	}
	return coll, nil
}

func decodeFeatureObject[P any](obj map[string]any, dec PropertiesDecoder[P]) (Feature[P], error) {
	var f Feature[P]

	if gv := obj["geometry"]; gv != nil {
		g, err := DecodeGeometry(gv)
		if err != nil {
			return Feature[P]{}, at(err, "geometry")
		}
		f.Geometry = g
	}

	if pv := obj["properties"]; pv != nil && dec != nil {
		p, err := dec(pv)
		if err != nil {
			if _, ok := err.(*DecodeError); ok {
				return Feature[P]{}, at(err, "properties")
			}
			return Feature[P]{}, &DecodeError{
				Expected: "properties",
				Found:    describe(pv),
				Path:     Path{"properties"},
				Cause:    err,
			}
		}
		f.Properties = &p
	}

	if iv := obj["id"]; iv != nil {
		id, err := decodeID(iv)
		if err != nil {
			return Feature[P]{}, at(err, "id")
		}
		f.ID = &id
	}

	return f, nil
}

// decodeID tries a string first, then a number.
func decodeID(v any) (FeatureID, error) {
	if s, ok := v.(string); ok {
		return StringID(s), nil
	}
	if n, ok := Number(v); ok {
		return NumberID(n), nil
	}
	return FeatureID{}, &DecodeError{Expected: "string or number", Found: describe(v)}
}

func decodeFeatureCollectionObject[P any](obj map[string]any, dec PropertiesDecoder[P]) (FeatureCollection[P], error) {
	fv, present := field(obj, "features")
	if !present {
		return FeatureCollection[P]{}, &DecodeError{Expected: "features field", Found: missing, Path: Path{"features"}}
	}
	arr, ok := toArray(fv)
	if !ok {
		return FeatureCollection[P]{}, &DecodeError{Expected: "array of features", Found: describe(fv), Path: Path{"features"}}
	}

	features := make([]Feature[P], len(arr))
	for i, el := range arr {
		f, err := DecodeFeature(el, dec)
		if err != nil {
			return FeatureCollection[P]{}, at(err, "features", i)
		}
		features[i] = f
	}
	return FeatureCollection[P]{Features: features}, nil
}

func decodePosition(v any) (Position, error) {
	arr, ok := toArray(v)
	if !ok {
		return nil, &DecodeError{Expected: "position", Found: describe(v)}
	}
	if len(arr) != 2 && len(arr) != 3 {
		return nil, &DecodeError{Expected: "position of 2 or 3 numbers", Found: describe(v)}
	}

	p := make(Position, len(arr))
	for i, el := range arr {
		f, ok := Number(el)
		if !ok {
			return nil, &DecodeError{Expected: "number", Found: describe(el), Path: Path{i}}
		}
		p[i] = f
	}
	return p, nil
}

func decodePositions(v any) ([]Position, error) {
	arr, ok := toArray(v)
	if !ok {
		return nil, &DecodeError{Expected: "array of positions", Found: describe(v)}
	}

	out := make([]Position, len(arr))
	for i, el := range arr {
		p, err := decodePosition(el)
		if err != nil {
			return nil, at(err, i)
		}
		out[i] = p
	}
	return out, nil
}

func decodePositions2(v any) ([][]Position, error) {
	arr, ok := toArray(v)
	if !ok {
		return nil, &DecodeError{Expected: "array of position arrays", Found: describe(v)}
	}

	out := make([][]Position, len(arr))
	for i, el := range arr {
		ps, err := decodePositions(el)
		if err != nil {
			return nil, at(err, i)
		}
		out[i] = ps
	}
	return out, nil
}

func decodePositions3(v any) ([][][]Position, error) {
	arr, ok := toArray(v)
	if !ok {
		return nil, &DecodeError{Expected: "array of polygons", Found: describe(v)}
	}

	out := make([][][]Position, len(arr))
	for i, el := range arr {
		ps, err := decodePositions2(el)
		if err != nil {
			return nil, at(err, i)
		}
		out[i] = ps
	}
	return out, nil
}
