package flatgeobuf

import (
	"bytes"
	"testing"

	geojson "github.com/tingold/typed-geojson"
)

func TestWrite_Points(t *testing.T) {
	geometries := []geojson.Geometry{
		geojson.Point(geojson.Pos(1, 2)),
		geojson.Point(geojson.Pos(3, 4)),
		geojson.Point(geojson.Pos(5, 6)),
	}

	var buf bytes.Buffer
	if err := Write(&buf, geometries, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data := buf.Bytes()
	if len(data) < 8 {
		t.Fatal("output too short")
	}

	expectedMagic := []byte{0x66, 0x67, 0x62, 0x03, 0x66, 0x67, 0x62, 0x00}
	for i, b := range expectedMagic {
		if data[i] != b {
			t.Errorf("magic byte %d: expected 0x%02x, got 0x%02x", i, b, data[i])
		}
	}
}

func TestWrite_Geometries(t *testing.T) {
	tests := []struct {
		name  string
		geoms []geojson.Geometry
	}{
		{"LineStrings", []geojson.Geometry{
			geojson.LineString{geojson.Pos(0, 0), geojson.Pos(1, 1), geojson.Pos(2, 2)},
			geojson.LineString{geojson.Pos(5, 5), geojson.Pos(6, 6)},
		}},
		{"Polygons", []geojson.Geometry{geojson.Polygon{square}, geojson.Polygon{square}}},
		{"Mixed", []geojson.Geometry{geojson.Point(geojson.Pos(1, 2)), geojson.LineString{geojson.Pos(0, 0), geojson.Pos(1, 1)}}},
		{"With nil", []geojson.Geometry{nil, geojson.Point(geojson.Pos(1, 2))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.geoms, nil); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("expected non-empty output")
			}
		})
	}
}

func TestWrite_EmptyGeometries(t *testing.T) {
	if err := Write(&bytes.Buffer{}, []geojson.Geometry{}, nil); err != ErrNilGeometry {
		t.Errorf("expected ErrNilGeometry, got %v", err)
	}
}

func TestWrite_WithOptions(t *testing.T) {
	opts := &Options{
		Name:         "test_layer",
		Description:  "A test layer",
		IncludeIndex: false,
		CRS:          &CRS{Code: 3857, WKT: "PROJCS[...]"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, []geojson.Geometry{geojson.Point(geojson.Pos(1, 2))}, opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestWriteFeatures_WithProperties(t *testing.T) {
	fc := geojson.NewFeatureCollection(
		geojson.NewFeature[geojson.Properties](geojson.Point(geojson.Pos(1, 2))).
			WithProperties(geojson.Properties{"name": "Point A", "value": 42, "active": true}),
		geojson.NewFeature[geojson.Properties](geojson.Point(geojson.Pos(3, 4))).
			WithProperties(geojson.Properties{"name": "Point B", "value": 100, "active": false}),
	)

	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, geojson.EncodeMapProperties, nil); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestWriteFeatures_Empty(t *testing.T) {
	tests := []struct {
		name string
		fc   geojson.FeatureCollection[geojson.Properties]
	}{
		{"no features", geojson.NewFeatureCollection[geojson.Properties]()},
		{"only null geometries", geojson.NewFeatureCollection(geojson.NewFeature[geojson.Properties](nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteFeatures(&bytes.Buffer{}, tt.fc, geojson.EncodeMapProperties, nil)
			if err != ErrNilGeometry {
				t.Errorf("expected ErrNilGeometry, got %v", err)
			}
		})
	}
}

func TestWriteFeatures_NonObjectProperties(t *testing.T) {
	type label string
	enc := func(l label) any { return string(l) }

	fc := geojson.NewFeatureCollection(
		geojson.NewFeature[label](geojson.Point(geojson.Pos(1, 2))).WithProperties("scalar"),
	)

	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, enc, nil); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}

	reader, err := NewReaderFromData(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromData failed: %v", err)
	}
	if cols := reader.Header().Columns; len(cols) != 0 {
		t.Errorf("expected no columns, got %v", cols)
	}
}

func TestWriteFeature_Single(t *testing.T) {
	f := geojson.NewFeature[geojson.Properties](geojson.Point(geojson.Pos(1, 2))).
		WithProperties(geojson.Properties{"name": "test"})

	var buf bytes.Buffer
	if err := WriteFeature(&buf, f, geojson.EncodeMapProperties, nil); err != nil {
		t.Fatalf("WriteFeature failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestWriteFeatures_ComplexGeometries(t *testing.T) {
	hole := []geojson.Position{geojson.Pos(2, 2), geojson.Pos(8, 2), geojson.Pos(8, 8), geojson.Pos(2, 8), geojson.Pos(2, 2)}

	fc := geojson.NewFeatureCollection(
		geojson.NewFeature[geojson.Properties](geojson.Polygon{square, hole}).
			WithProperties(geojson.Properties{"type": "polygon_with_hole"}),
		geojson.NewFeature[geojson.Properties](geojson.MultiPolygon{{square}, {hole}}).
			WithProperties(geojson.Properties{"type": "multipolygon"}),
	)

	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, geojson.EncodeMapProperties, nil); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts == nil {
		t.Fatal("expected non-nil options")
	}
	if !opts.IncludeIndex {
		t.Error("expected IncludeIndex to be true by default")
	}
	if opts.CRS == nil || opts.CRS.Code != 4326 {
		t.Errorf("expected WGS84 CRS by default, got %+v", opts.CRS)
	}
}

func TestWGS84(t *testing.T) {
	crs := WGS84()
	if crs.Code != 4326 {
		t.Errorf("expected code 4326, got %d", crs.Code)
	}
	if crs.Name != "WGS 84" {
		t.Errorf("expected name 'WGS 84', got %q", crs.Name)
	}
}
