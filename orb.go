package geojson

import (
	"github.com/paulmach/orb"
)

// ToOrb converts a geometry to its orb equivalent. orb is two dimensional,
// so altitudes are dropped. Polygons map to orb.Polygon and never orb.Ring.
func ToOrb(g Geometry) orb.Geometry {
	if g == nil {
		return nil
	}

	switch v := g.(type) {
	case Point:
		return toOrbPoint(Position(v))
	case MultiPoint:
		mp := make(orb.MultiPoint, len(v))
		for i, p := range v {
			mp[i] = toOrbPoint(p)
		}
		return mp
	case LineString:
		return toOrbLineString(v)
	case MultiLineString:
		mls := make(orb.MultiLineString, len(v))
		for i, ls := range v {
			mls[i] = toOrbLineString(ls)
		}
		return mls
	case Polygon:
		return toOrbPolygon(v)
	case MultiPolygon:
		mp := make(orb.MultiPolygon, len(v))
		for i, poly := range v {
			mp[i] = toOrbPolygon(poly)
		}
		return mp
	case GeometryCollection:
		coll := make(orb.Collection, 0, len(v))
		for _, child := range v {
			if og := ToOrb(child); og != nil {
				coll = append(coll, og)
			}
		}
		return coll
	default:
		return nil
	}
}

// FromOrb converts an orb geometry. Rings become single-ring polygons and
// bounds become rectangular polygons.
func FromOrb(g orb.Geometry) Geometry {
	if g == nil {
		return nil
	}

	switch v := g.(type) {
	case orb.Point:
		return Point(fromOrbPoint(v))
	case orb.MultiPoint:
		mp := make(MultiPoint, len(v))
		for i, p := range v {
			mp[i] = fromOrbPoint(p)
		}
		return mp
	case orb.LineString:
		return LineString(fromOrbPoints(v))
	case orb.MultiLineString:
		mls := make(MultiLineString, len(v))
		for i, ls := range v {
			mls[i] = fromOrbPoints(ls)
		}
		return mls
	case orb.Ring:
		return Polygon{fromOrbPoints(v)}
	case orb.Polygon:
		return fromOrbPolygon(v)
	case orb.MultiPolygon:
		mp := make(MultiPolygon, len(v))
		for i, poly := range v {
			mp[i] = fromOrbPolygon(poly)
		}
		return mp
	case orb.Collection:
		coll := make(GeometryCollection, 0, len(v))
		for _, child := range v {
			if cg := FromOrb(child); cg != nil {
				coll = append(coll, cg)
			}
		}
		return coll
	case orb.Bound:
		return fromOrbPolygon(v.ToPolygon())
	default:
		return nil
	}
}

// Bound returns the bounding box of g, or an empty bound for nil.
func Bound(g Geometry) orb.Bound {
	og := ToOrb(g)
	if og == nil {
		return orb.Bound{}
	}
	return og.Bound()
}

func toOrbPoint(p Position) orb.Point {
	return orb.Point{p.Lon(), p.Lat()}
}

func toOrbLineString(ps []Position) orb.LineString {
	ls := make(orb.LineString, len(ps))
	for i, p := range ps {
		ls[i] = toOrbPoint(p)
	}
	return ls
}

func toOrbPolygon(rings [][]Position) orb.Polygon {
	poly := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		poly[i] = orb.Ring(toOrbLineString(ring))
	}
	return poly
}

func fromOrbPoint(p orb.Point) Position {
	return Position{p[0], p[1]}
}

func fromOrbPoints(ps []orb.Point) []Position {
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = fromOrbPoint(p)
	}
	return out
}

func fromOrbPolygon(poly orb.Polygon) Polygon {
	out := make(Polygon, len(poly))
	for i, ring := range poly {
		out[i] = fromOrbPoints(ring)
	}
	return out
}
