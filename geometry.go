package geojson

// Position is a longitude, latitude and optional altitude. Decoding enforces
// a length of 2 or 3; construction does not.
type Position []float64

// Pos returns a two dimensional position.
func Pos(lon, lat float64) Position {
	return Position{lon, lat}
}

// PosZ returns a position carrying an altitude.
func PosZ(lon, lat, alt float64) Position {
	return Position{lon, lat, alt}
}

// Lon returns the longitude, or 0 for a malformed position.
func (p Position) Lon() float64 {
	if len(p) < 1 {
		return 0
	}
	return p[0]
}

// Lat returns the latitude, or 0 for a malformed position.
func (p Position) Lat() float64 {
	if len(p) < 2 {
		return 0
	}
	return p[1]
}

// Alt returns the altitude and whether the position has one.
func (p Position) Alt() (float64, bool) {
	if len(p) < 3 {
		return 0, false
	}
	return p[2], true
}

// HasAlt reports whether the position carries an altitude.
func (p Position) HasAlt() bool {
	return len(p) >= 3
}

// Equal reports whether both positions hold the same values in the same order.
func (p Position) Equal(o Position) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Geometry is one of the seven RFC 7946 geometry kinds. The set is closed:
// only the types declared in this package implement it.
type Geometry interface {
	GeoJSONType() Type
	isGeometry()
}

// Point is a single position.
type Point Position

// MultiPoint is a list of positions.
type MultiPoint []Position

// LineString is a list of positions. RFC 7946 asks for at least two; that
// is not checked.
type LineString []Position

// MultiLineString is a list of line strings.
type MultiLineString [][]Position

// Polygon is a list of linear rings: the exterior ring followed by holes.
// Ring closure and winding order are not checked.
type Polygon [][]Position

// MultiPolygon is a list of polygons.
type MultiPolygon [][][]Position

// GeometryCollection holds geometries of any kind, including other
// collections.
type GeometryCollection []Geometry

func (Point) GeoJSONType() Type              { return TypePoint }
func (MultiPoint) GeoJSONType() Type         { return TypeMultiPoint }
func (LineString) GeoJSONType() Type         { return TypeLineString }
func (MultiLineString) GeoJSONType() Type    { return TypeMultiLineString }
func (Polygon) GeoJSONType() Type            { return TypePolygon }
func (MultiPolygon) GeoJSONType() Type       { return TypeMultiPolygon }
func (GeometryCollection) GeoJSONType() Type { return TypeGeometryCollection }

func (Point) isGeometry()              {}
func (MultiPoint) isGeometry()         {}
func (LineString) isGeometry()         {}
func (MultiLineString) isGeometry()    {}
func (Polygon) isGeometry()            {}
func (MultiPolygon) isGeometry()       {}
func (GeometryCollection) isGeometry() {}

// Equal reports whether two geometries are structurally identical: same kind,
// same nesting and the same coordinate values in the same order.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.GeoJSONType() != b.GeoJSONType() {
		return false
	}

	switch av := a.(type) {
	case Point:
		return Position(av).Equal(Position(b.(Point)))
	case MultiPoint:
		return positionsEqual(av, b.(MultiPoint))
	case LineString:
		return positionsEqual(av, b.(LineString))
	case MultiLineString:
		return positions2Equal(av, b.(MultiLineString))
	case Polygon:
		return positions2Equal(av, b.(Polygon))
	case MultiPolygon:
		bv := b.(MultiPolygon)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !positions2Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case GeometryCollection:
		bv := b.(GeometryCollection)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func positionsEqual(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func positions2Equal(a, b [][]Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !positionsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
