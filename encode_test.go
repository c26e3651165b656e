package geojson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeGeometry(t *testing.T) {
	tests := []struct {
		name     string
		geom     Geometry
		expected any
	}{
		{
			"Point",
			Point(Pos(100, 0)),
			map[string]any{"type": "Point", "coordinates": []any{100.0, 0.0}},
		},
		{
			"Point with altitude",
			Point(PosZ(100, 0, 12.5)),
			map[string]any{"type": "Point", "coordinates": []any{100.0, 0.0, 12.5}},
		},
		{
			"MultiPoint",
			MultiPoint{Pos(1, 2), Pos(3, 4)},
			map[string]any{"type": "MultiPoint", "coordinates": []any{
				[]any{1.0, 2.0}, []any{3.0, 4.0},
			}},
		},
		{
			"LineString keeps order and duplicates",
			LineString{Pos(3, 4), Pos(1, 2), Pos(1, 2)},
			map[string]any{"type": "LineString", "coordinates": []any{
				[]any{3.0, 4.0}, []any{1.0, 2.0}, []any{1.0, 2.0},
			}},
		},
		{
			"MultiLineString",
			MultiLineString{{Pos(0, 0), Pos(1, 1)}, {Pos(2, 2), Pos(3, 3)}},
			map[string]any{"type": "MultiLineString", "coordinates": []any{
				[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}},
				[]any{[]any{2.0, 2.0}, []any{3.0, 3.0}},
			}},
		},
		{
			"Polygon",
			Polygon{{Pos(0, 0), Pos(1, 0), Pos(1, 1), Pos(0, 0)}},
			map[string]any{"type": "Polygon", "coordinates": []any{
				[]any{[]any{0.0, 0.0}, []any{1.0, 0.0}, []any{1.0, 1.0}, []any{0.0, 0.0}},
			}},
		},
		{
			"MultiPolygon",
			MultiPolygon{{{Pos(0, 0), Pos(1, 0), Pos(0, 0)}}},
			map[string]any{"type": "MultiPolygon", "coordinates": []any{
				[]any{[]any{[]any{0.0, 0.0}, []any{1.0, 0.0}, []any{0.0, 0.0}}},
			}},
		},
		{
			"GeometryCollection",
			GeometryCollection{Point(Pos(1, 2)), LineString{Pos(0, 0), Pos(1, 1)}},
			map[string]any{"type": "GeometryCollection", "geometries": []any{
				map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}},
				map[string]any{"type": "LineString", "coordinates": []any{
					[]any{0.0, 0.0}, []any{1.0, 1.0},
				}},
			}},
		},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EncodeGeometry(tt.geom)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("unexpected encoding (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeFeature_NullVsOmitted(t *testing.T) {
	f := NewFeature[Properties](nil)

	obj, ok := EncodeFeature(f, EncodeMapProperties).(map[string]any)
	if !ok {
		t.Fatal("expected an object")
	}

	if _, present := obj["id"]; present {
		t.Error("expected id to be omitted when absent")
	}

	geom, present := obj["geometry"]
	if !present || geom != nil {
		t.Errorf("expected geometry key with null value, got %v (present=%v)", geom, present)
	}

	props, present := obj["properties"]
	if !present || props != nil {
		t.Errorf("expected properties key with null value, got %v (present=%v)", props, present)
	}

	if obj["type"] != "Feature" {
		t.Errorf("expected type Feature, got %v", obj["type"])
	}
}

func TestEncodeFeature_WithIDAndProperties(t *testing.T) {
	tests := []struct {
		name       string
		id         FeatureID
		expectedID any
	}{
		{"string id", StringID("abc"), "abc"},
		{"number id", NumberID(42), 42.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFeature[Properties](Point(Pos(1, 2))).
				WithProperties(Properties{"name": "a"}).
				WithID(tt.id)

			expected := map[string]any{
				"type":       "Feature",
				"geometry":   map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}},
				"properties": map[string]any{"name": "a"},
				"id":         tt.expectedID,
			}

			result := EncodeFeature(f, EncodeMapProperties)
			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("unexpected encoding (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeFeatureCollection(t *testing.T) {
	fc := NewFeatureCollection(
		NewFeature[NoProperties](Point(Pos(1, 2))).WithProperties(NoProperties{}),
		NewFeature[NoProperties](nil),
	)

	expected := map[string]any{
		"type": "FeatureCollection",
		"features": []any{
			map[string]any{
				"type":       "Feature",
				"geometry":   map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}},
				"properties": nil,
			},
			map[string]any{
				"type":       "Feature",
				"geometry":   nil,
				"properties": nil,
			},
		},
	}

	result := EncodeFeatureCollection(fc, EncodeNoProperties)
	if diff := cmp.Diff(expected, result); diff != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", diff)
	}
}

func TestEncode_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		value    GeoJSON[NoProperties]
		expected string
	}{
		{"geometry", FromGeometry[NoProperties](Polygon{}), "Polygon"},
		{"feature", FromFeature(NewFeature[NoProperties](nil)), "Feature"},
		{"collection", FromFeatureCollection(NewFeatureCollection[NoProperties]()), "FeatureCollection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := Encode(tt.value, EncodeNoProperties).(map[string]any)
			if !ok {
				t.Fatal("expected an object")
			}
			if obj["type"] != tt.expected {
				t.Errorf("expected type %s, got %v", tt.expected, obj["type"])
			}
		})
	}

	if result := Encode(GeoJSON[NoProperties]{}, EncodeNoProperties); result != nil {
		t.Errorf("expected nil for the zero value, got %v", result)
	}
}

func TestEncodeFeatureCollection_EmptyIsArray(t *testing.T) {
	obj := EncodeFeatureCollection(FeatureCollection[NoProperties]{}, EncodeNoProperties).(map[string]any)
	features, ok := obj["features"].([]any)
	if !ok || features == nil || len(features) != 0 {
		t.Errorf("expected an empty features array, got %#v", obj["features"])
	}
}
