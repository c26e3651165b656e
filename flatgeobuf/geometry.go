package flatgeobuf

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"

	geojson "github.com/tingold/typed-geojson"
)

// fgbGeometryType maps a GeoJSON discriminator to its FlatGeobuf type.
func fgbGeometryType(g geojson.Geometry) flattypes.GeometryType {
	if g == nil {
		return flattypes.GeometryTypeUnknown
	}

	switch g.GeoJSONType() {
	case geojson.TypePoint:
		return flattypes.GeometryTypePoint
	case geojson.TypeMultiPoint:
		return flattypes.GeometryTypeMultiPoint
	case geojson.TypeLineString:
		return flattypes.GeometryTypeLineString
	case geojson.TypeMultiLineString:
		return flattypes.GeometryTypeMultiLineString
	case geojson.TypePolygon:
		return flattypes.GeometryTypePolygon
	case geojson.TypeMultiPolygon:
		return flattypes.GeometryTypeMultiPolygon
	case geojson.TypeGeometryCollection:
		return flattypes.GeometryTypeGeometryCollection
	default:
		return flattypes.GeometryTypeUnknown
	}
}

// commonGeometryType returns the type shared by all geometries, or Unknown
// when they differ. Nil geometries are skipped.
func commonGeometryType(geoms []geojson.Geometry) flattypes.GeometryType {
	common := flattypes.GeometryTypeUnknown
	for _, g := range geoms {
		if g == nil {
			continue
		}
		t := fgbGeometryType(g)
		if common == flattypes.GeometryTypeUnknown {
			common = t
		} else if t != common {
			return flattypes.GeometryTypeUnknown
		}
	}
	return common
}

// encodeGeometry builds the FlatGeobuf form of a geometry.
func encodeGeometry(g geojson.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	if g == nil {
		return nil
	}

	fg := writer.NewGeometry(builder)
	fg.SetType(fgbGeometryType(g))

	switch v := g.(type) {
	case geojson.Point:
		fg.SetXY(flattenXY([]geojson.Position{geojson.Position(v)}))

	case geojson.MultiPoint:
		fg.SetXY(flattenXY(v))

	case geojson.LineString:
		fg.SetXY(flattenXY(v))

	case geojson.MultiLineString:
		xy, ends := flattenXYEnds(v)
		fg.SetXY(xy)
		fg.SetEnds(ends)

	case geojson.Polygon:
		xy, ends := flattenXYEnds(v)
		fg.SetXY(xy)
		fg.SetEnds(ends)

	case geojson.MultiPolygon:
		parts := make([]writer.Geometry, 0, len(v))
		for _, poly := range v {
			if part := encodeGeometry(geojson.Polygon(poly), builder); part != nil {
				parts = append(parts, *part)
			}
		}
		fg.SetParts(parts)

	case geojson.GeometryCollection:
		parts := make([]writer.Geometry, 0, len(v))
		for _, child := range v {
			if part := encodeGeometry(child, builder); part != nil {
				parts = append(parts, *part)
			}
		}
		fg.SetParts(parts)

	default:
		return nil
	}

	return fg
}

// decodeGeometry rebuilds a geometry from its FlatGeobuf form.
func decodeGeometry(fg *flattypes.Geometry) (geojson.Geometry, error) {
	if fg == nil {
		return nil, ErrNilGeometry
	}

	switch fg.Type() {
	case flattypes.GeometryTypePoint:
		ps := readXY(fg, 0, fg.XyLength()/2)
		if len(ps) == 0 {
			return nil, ErrInvalidData
		}
		return geojson.Point(ps[0]), nil

	case flattypes.GeometryTypeMultiPoint:
		return geojson.MultiPoint(readXY(fg, 0, fg.XyLength()/2)), nil

	case flattypes.GeometryTypeLineString:
		return geojson.LineString(readXY(fg, 0, fg.XyLength()/2)), nil

	case flattypes.GeometryTypeMultiLineString:
		return geojson.MultiLineString(readXYEnds(fg)), nil

	case flattypes.GeometryTypePolygon:
		return geojson.Polygon(readXYEnds(fg)), nil

	case flattypes.GeometryTypeMultiPolygon:
		// A multipolygon with a single polygon may be stored without parts.
		if fg.PartsLength() == 0 {
			if fg.XyLength() == 0 {
				return geojson.MultiPolygon{}, nil
			}
			return geojson.MultiPolygon{readXYEnds(fg)}, nil
		}
		mp := make(geojson.MultiPolygon, 0, fg.PartsLength())
		for i := 0; i < fg.PartsLength(); i++ {
			var part flattypes.Geometry
			if !fg.Parts(&part, i) {
				return nil, ErrInvalidData
			}
			mp = append(mp, readXYEnds(&part))
		}
		return mp, nil

	case flattypes.GeometryTypeGeometryCollection:
		coll := make(geojson.GeometryCollection, 0, fg.PartsLength())
		for i := 0; i < fg.PartsLength(); i++ {
			var part flattypes.Geometry
			if !fg.Parts(&part, i) {
				return nil, ErrInvalidData
			}
			child, err := decodeGeometry(&part)
			if err != nil {
				return nil, err
			}
			coll = append(coll, child)
		}
		return coll, nil

	default:
		return nil, ErrUnsupportedType
	}
}

// flattenXY interleaves longitude and latitude. Altitudes are dropped.
func flattenXY(ps []geojson.Position) []float64 {
	xy := make([]float64, 0, len(ps)*2)
	for _, p := range ps {
		xy = append(xy, p.Lon(), p.Lat())
	}
	return xy
}

// flattenXYEnds flattens a list of rings or lines, recording the cumulative
// position count at the end of each one.
func flattenXYEnds(parts [][]geojson.Position) ([]float64, []uint32) {
	total := 0
	for _, part := range parts {
		total += len(part)
	}

	xy := make([]float64, 0, total*2)
	ends := make([]uint32, 0, len(parts))

	cumulative := uint32(0)
	for _, part := range parts {
		xy = append(xy, flattenXY(part)...)
		cumulative += uint32(len(part))
		ends = append(ends, cumulative)
	}

	return xy, ends
}

// readXY reads positions [start, end) from the xy array.
func readXY(fg *flattypes.Geometry, start, end int) []geojson.Position {
	if n := fg.XyLength() / 2; end > n {
		end = n
	}
	if start >= end {
		return []geojson.Position{}
	}

	ps := make([]geojson.Position, 0, end-start)
	for i := start; i < end; i++ {
		ps = append(ps, geojson.Pos(fg.Xy(i*2), fg.Xy(i*2+1)))
	}
	return ps
}

// readXYEnds splits the xy array at the recorded ends. Without ends the
// whole array is one part.
func readXYEnds(fg *flattypes.Geometry) [][]geojson.Position {
	n := fg.XyLength() / 2
	if fg.EndsLength() == 0 {
		if n == 0 {
			return [][]geojson.Position{}
		}
		return [][]geojson.Position{readXY(fg, 0, n)}
	}

	parts := make([][]geojson.Position, 0, fg.EndsLength())
	start := 0
	for i := 0; i < fg.EndsLength(); i++ {
		end := int(fg.Ends(i))
		parts = append(parts, readXY(fg, start, end))
		start = end
	}
	return parts
}
