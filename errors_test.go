package geojson

import (
	"errors"
	"testing"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name     string
		path     Path
		expected string
		pointer  string
	}{
		{"empty", nil, "", ""},
		{"single key", Path{"type"}, "type", "/type"},
		{"nested", Path{"features", 2, "geometry", "coordinates"}, "features[2].geometry.coordinates", "/features/2/geometry/coordinates"},
		{"leading index", Path{0, 1}, "[0][1]", "/0/1"},
		{"escaped pointer", Path{"properties", "a/b~c"}, "properties.a/b~c", "/properties/a~1b~0c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.path.String(); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
			if result := tt.path.Pointer(); result != tt.pointer {
				t.Errorf("expected pointer %q, got %q", tt.pointer, result)
			}
		})
	}
}

func TestDecodeError_Error(t *testing.T) {
	err := &DecodeError{Expected: "number", Found: `string "2"`, Path: Path{"coordinates", 1}}
	expected := `geojson: expected number, found string "2" at coordinates[1]`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	cause := errors.New("boom")
	wrapped := &DecodeError{Expected: "properties", Found: "object", Path: Path{"properties"}, Cause: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("expected the cause to be reachable with errors.Is")
	}
	if !errors.Is(wrapped, ErrDecode) {
		t.Error("expected errors.Is(err, ErrDecode)")
	}
}

func TestAt_PrependsPath(t *testing.T) {
	inner := &DecodeError{Expected: "number", Found: "null", Path: Path{0}}
	err := at(at(inner, "coordinates"), "geometries", 3)

	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Path.String() != "geometries[3].coordinates[0]" {
		t.Errorf("unexpected path %s", de.Path)
	}
	if len(inner.Path) != 1 {
		t.Errorf("expected inner error to be left untouched, got %v", inner.Path)
	}

	if at(nil, "x") != nil {
		t.Error("expected nil for nil error")
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := ParseJSON([]byte(`{"type":`))
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Error("expected errors.Is(err, ErrSyntax)")
	}
	if errors.Is(err, ErrDecode) {
		t.Error("expected a syntax error not to be a decode error")
	}
}
