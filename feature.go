package geojson

import (
	"strconv"
)

// FeatureID is the optional identifier of a Feature: either a string or a
// number. The zero value is the empty string id.
type FeatureID struct {
	str    string
	num    float64
	number bool
}

// StringID returns a string identifier.
func StringID(s string) FeatureID {
	return FeatureID{str: s}
}

// NumberID returns a numeric identifier.
func NumberID(n float64) FeatureID {
	return FeatureID{num: n, number: true}
}

// IsNumber reports whether the id was built by NumberID.
func (id FeatureID) IsNumber() bool {
	return id.number
}

// Str returns the string value of a string id.
func (id FeatureID) Str() (string, bool) {
	return id.str, !id.number
}

// Number returns the value of a numeric id.
func (id FeatureID) Number() (float64, bool) {
	return id.num, id.number
}

// String formats the id for display.
func (id FeatureID) String() string {
	if id.number {
		return strconv.FormatFloat(id.num, 'g', -1, 64)
	}
	return strconv.Quote(id.str)
}

// Feature is a geometry with a properties payload of type P and an optional
// identifier. A nil Geometry or Properties is encoded as JSON null; a nil ID
// is omitted.
type Feature[P any] struct {
	Geometry   Geometry
	Properties *P
	ID         *FeatureID
}

// NewFeature returns a feature with the given geometry and no properties.
func NewFeature[P any](g Geometry) Feature[P] {
	return Feature[P]{Geometry: g}
}

// WithProperties returns a copy of f carrying p.
func (f Feature[P]) WithProperties(p P) Feature[P] {
	f.Properties = &p
	return f
}

// WithID returns a copy of f carrying id.
func (f Feature[P]) WithID(id FeatureID) Feature[P] {
	f.ID = &id
	return f
}

// FeatureCollection is an ordered list of features.
type FeatureCollection[P any] struct {
	Features []Feature[P]
}

// NewFeatureCollection returns a collection of the given features.
func NewFeatureCollection[P any](features ...Feature[P]) FeatureCollection[P] {
	return FeatureCollection[P]{Features: features}
}

// Append adds a feature to the end of the collection.
func (fc *FeatureCollection[P]) Append(f Feature[P]) {
	fc.Features = append(fc.Features, f)
}

// Kind identifies which variant a GeoJSON value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindGeometry
	KindFeature
	KindFeatureCollection
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "Geometry"
	case KindFeature:
		return "Feature"
	case KindFeatureCollection:
		return "FeatureCollection"
	default:
		return "Invalid"
	}
}

// GeoJSON is a top level GeoJSON object: exactly one of a geometry, a feature
// or a feature collection. Build it with FromGeometry, FromFeature or
// FromFeatureCollection; the zero value is invalid.
type GeoJSON[P any] struct {
	kind       Kind
	geometry   Geometry
	feature    Feature[P]
	collection FeatureCollection[P]
}

// FromGeometry wraps a geometry.
func FromGeometry[P any](g Geometry) GeoJSON[P] {
	return GeoJSON[P]{kind: KindGeometry, geometry: g}
}

// FromFeature wraps a feature.
func FromFeature[P any](f Feature[P]) GeoJSON[P] {
	return GeoJSON[P]{kind: KindFeature, feature: f}
}

// FromFeatureCollection wraps a feature collection.
func FromFeatureCollection[P any](fc FeatureCollection[P]) GeoJSON[P] {
	return GeoJSON[P]{kind: KindFeatureCollection, collection: fc}
}

// Kind reports which variant g holds.
func (g GeoJSON[P]) Kind() Kind {
	return g.kind
}

// Type returns the discriminator g encodes to.
func (g GeoJSON[P]) Type() Type {
	switch g.kind {
	case KindGeometry:
		if g.geometry == nil {
			return ""
		}
		return g.geometry.GeoJSONType()
	case KindFeature:
		return TypeFeature
	case KindFeatureCollection:
		return TypeFeatureCollection
	}
	return ""
}

// Geometry returns the wrapped geometry.
func (g GeoJSON[P]) Geometry() (Geometry, bool) {
	return g.geometry, g.kind == KindGeometry
}

// Feature returns the wrapped feature.
func (g GeoJSON[P]) Feature() (Feature[P], bool) {
	return g.feature, g.kind == KindFeature
}

// FeatureCollection returns the wrapped feature collection.
func (g GeoJSON[P]) FeatureCollection() (FeatureCollection[P], bool) {
	return g.collection, g.kind == KindFeatureCollection
}

// Match calls the function matching the variant g holds and returns its
// result. It panics on the zero GeoJSON value.
func Match[P, R any](
	g GeoJSON[P],
	onGeometry func(Geometry) R,
	onFeature func(Feature[P]) R,
	onCollection func(FeatureCollection[P]) R,
) R {
	switch g.kind {
	case KindGeometry:
		return onGeometry(g.geometry)
	case KindFeature:
		return onFeature(g.feature)
	case KindFeatureCollection:
		return onCollection(g.collection)
	}
	panic("geojson: match on invalid GeoJSON value")
}
