// Package geojson provides a typed RFC 7946 GeoJSON data model and a strict
// bidirectional codec between that model and a generic JSON value tree.
//
// The properties payload of a Feature is generic: Feature, FeatureCollection
// and GeoJSON are parameterized by a properties type P, and every encode or
// decode call takes the functions that map P to and from JSON.
//
// The JSON tree is the one produced by encoding/json when unmarshaling into
// an interface value: nil, bool, float64, string, []any and map[string]any.
package geojson

import (
	"errors"
)

// Common errors returned by this package.
var (
	ErrDecode = errors.New("geojson: decode error")
	ErrSyntax = errors.New("geojson: invalid JSON text")
)

// Type is a GeoJSON "type" discriminator.
type Type string

// The nine discriminators defined by RFC 7946.
const (
	TypePoint              Type = "Point"
	TypeMultiPoint         Type = "MultiPoint"
	TypeLineString         Type = "LineString"
	TypeMultiLineString    Type = "MultiLineString"
	TypePolygon            Type = "Polygon"
	TypeMultiPolygon       Type = "MultiPolygon"
	TypeGeometryCollection Type = "GeometryCollection"
	TypeFeature            Type = "Feature"
	TypeFeatureCollection  Type = "FeatureCollection"
)

// geometryTypes lists the discriminators accepted where a geometry is expected.
var geometryTypes = []Type{
	TypePoint,
	TypeMultiPoint,
	TypeLineString,
	TypeMultiLineString,
	TypePolygon,
	TypeMultiPolygon,
	TypeGeometryCollection,
}

// objectTypes lists the discriminators accepted at the top level.
var objectTypes = append(append([]Type{}, geometryTypes...), TypeFeature, TypeFeatureCollection)

// IsGeometry reports whether t names one of the seven geometry kinds.
func (t Type) IsGeometry() bool {
	for _, g := range geometryTypes {
		if g == t {
			return true
		}
	}
	return false
}
