package geojson

import (
	"testing"
)

func TestPosition_Accessors(t *testing.T) {
	p := Pos(100, 0.5)
	if p.Lon() != 100 || p.Lat() != 0.5 {
		t.Errorf("expected (100, 0.5), got (%v, %v)", p.Lon(), p.Lat())
	}
	if p.HasAlt() {
		t.Error("expected no altitude for 2D position")
	}

	pz := PosZ(1, 2, 30)
	alt, ok := pz.Alt()
	if !ok || alt != 30 {
		t.Errorf("expected altitude 30, got %v (ok=%v)", alt, ok)
	}
}

func TestPosition_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		expected bool
	}{
		{"same 2D", Pos(1, 2), Pos(1, 2), true},
		{"same 3D", PosZ(1, 2, 3), PosZ(1, 2, 3), true},
		{"different value", Pos(1, 2), Pos(1, 3), false},
		{"2D vs 3D", Pos(1, 2), PosZ(1, 2, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.a.Equal(tt.b); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestGeoJSONType(t *testing.T) {
	tests := []struct {
		geom     Geometry
		expected Type
	}{
		{Point(Pos(1, 2)), TypePoint},
		{MultiPoint{Pos(1, 2)}, TypeMultiPoint},
		{LineString{Pos(0, 0), Pos(1, 1)}, TypeLineString},
		{MultiLineString{{Pos(0, 0), Pos(1, 1)}}, TypeMultiLineString},
		{Polygon{{Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0)}}, TypePolygon},
		{MultiPolygon{{{Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0)}}}, TypeMultiPolygon},
		{GeometryCollection{Point(Pos(1, 2))}, TypeGeometryCollection},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			if result := tt.geom.GeoJSONType(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
			if !tt.expected.IsGeometry() {
				t.Errorf("expected %v to be a geometry type", tt.expected)
			}
		})
	}
}

func TestType_IsGeometry(t *testing.T) {
	for _, typ := range []Type{TypeFeature, TypeFeatureCollection, "point", ""} {
		if typ.IsGeometry() {
			t.Errorf("expected %q not to be a geometry type", typ)
		}
	}
}

func TestEqual(t *testing.T) {
	square := Polygon{{Pos(0, 0), Pos(10, 0), Pos(10, 10), Pos(0, 10), Pos(0, 0)}}

	tests := []struct {
		name     string
		a, b     Geometry
		expected bool
	}{
		{"nil nil", nil, nil, true},
		{"nil point", nil, Point(Pos(1, 2)), false},
		{"points", Point(Pos(1, 2)), Point(Pos(1, 2)), true},
		{"point vs multipoint", Point(Pos(1, 2)), MultiPoint{Pos(1, 2)}, false},
		{"linestring vs multipoint", LineString{Pos(1, 2)}, MultiPoint{Pos(1, 2)}, false},
		{"polygons", square, square, true},
		{"polygon hole count", square, append(Polygon{}, square[0], square[0]), false},
		{
			"nested collections",
			GeometryCollection{GeometryCollection{Point(Pos(1, 2))}},
			GeometryCollection{GeometryCollection{Point(Pos(1, 2))}},
			true,
		},
		{
			"nested collections differ",
			GeometryCollection{GeometryCollection{Point(Pos(1, 2))}},
			GeometryCollection{GeometryCollection{Point(Pos(1, 3))}},
			false,
		},
		{"multipolygons", MultiPolygon{square}, MultiPolygon{square}, true},
		{"multipolygon length", MultiPolygon{square}, MultiPolygon{square, square}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Equal(tt.a, tt.b); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFeatureID(t *testing.T) {
	s := StringID("42")
	if s.IsNumber() {
		t.Error("expected string id")
	}
	if v, ok := s.Str(); !ok || v != "42" {
		t.Errorf("expected \"42\", got %q (ok=%v)", v, ok)
	}
	if s.String() != `"42"` {
		t.Errorf("expected quoted display, got %s", s.String())
	}

	n := NumberID(42)
	if v, ok := n.Number(); !ok || v != 42 {
		t.Errorf("expected 42, got %v (ok=%v)", v, ok)
	}
	if _, ok := n.Str(); ok {
		t.Error("expected numeric id not to report a string")
	}
	if n.String() != "42" {
		t.Errorf("expected 42, got %s", n.String())
	}

	if StringID("1") == NumberID(1) {
		t.Error("expected string and number ids to differ")
	}
}

func TestGeoJSON_Variants(t *testing.T) {
	g := FromGeometry[NoProperties](Point(Pos(1, 2)))
	if g.Kind() != KindGeometry || g.Type() != TypePoint {
		t.Errorf("expected Geometry/Point, got %v/%v", g.Kind(), g.Type())
	}
	if _, ok := g.Feature(); ok {
		t.Error("expected geometry variant not to hold a feature")
	}

	f := FromFeature(NewFeature[NoProperties](nil))
	if f.Kind() != KindFeature || f.Type() != TypeFeature {
		t.Errorf("expected Feature, got %v/%v", f.Kind(), f.Type())
	}

	fc := FromFeatureCollection(NewFeatureCollection[NoProperties]())
	if fc.Kind() != KindFeatureCollection || fc.Type() != TypeFeatureCollection {
		t.Errorf("expected FeatureCollection, got %v/%v", fc.Kind(), fc.Type())
	}

	var zero GeoJSON[NoProperties]
	if zero.Kind() != KindInvalid || zero.Kind().String() != "Invalid" {
		t.Errorf("expected invalid zero value, got %v", zero.Kind())
	}
}

func TestMatch(t *testing.T) {
	name := func(g GeoJSON[NoProperties]) string {
		return Match(g,
			func(Geometry) string { return "geometry" },
			func(Feature[NoProperties]) string { return "feature" },
			func(FeatureCollection[NoProperties]) string { return "collection" },
		)
	}

	if r := name(FromGeometry[NoProperties](Point(Pos(0, 0)))); r != "geometry" {
		t.Errorf("expected geometry, got %s", r)
	}
	if r := name(FromFeature(NewFeature[NoProperties](nil))); r != "feature" {
		t.Errorf("expected feature, got %s", r)
	}
	if r := name(FromFeatureCollection(NewFeatureCollection[NoProperties]())); r != "collection" {
		t.Errorf("expected collection, got %s", r)
	}
}

func TestFeature_Builders(t *testing.T) {
	f := NewFeature[string](Point(Pos(1, 2))).WithProperties("x").WithID(NumberID(7))
	if f.Properties == nil || *f.Properties != "x" {
		t.Errorf("expected properties \"x\", got %v", f.Properties)
	}
	if f.ID == nil || *f.ID != NumberID(7) {
		t.Errorf("expected id 7, got %v", f.ID)
	}

	var fc FeatureCollection[string]
	fc.Append(f)
	fc.Append(NewFeature[string](nil))
	if len(fc.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(fc.Features))
	}
}
