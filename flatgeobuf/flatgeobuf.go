// Package flatgeobuf reads and writes typed GeoJSON feature collections in
// the FlatGeobuf binary format.
//
// FlatGeobuf stores two dimensional coordinates, so altitudes are dropped on
// write. Feature properties go through the caller's properties encoder and
// are stored as typed columns when the encoded value is a JSON object.
package flatgeobuf

import (
	"errors"
)

var (
	ErrNilGeometry      = errors.New("flatgeobuf: no geometry to write")
	ErrUnsupportedType  = errors.New("flatgeobuf: geometry type has no GeoJSON form")
	ErrInvalidData      = errors.New("flatgeobuf: malformed feature data")
	ErrNoIndex          = errors.New("flatgeobuf: file has no spatial index")
	ErrInvalidColumn    = errors.New("flatgeobuf: unknown column")
	ErrPropertyMismatch = errors.New("flatgeobuf: property does not match its column type")
	ErrTooManyColumns   = errors.New("flatgeobuf: too many property columns")
)

// CRS identifies the coordinate reference system recorded in the header.
// GeoJSON positions are always WGS 84, so writers rarely need anything else.
type CRS struct {
	Code        int // EPSG code
	Name        string
	Description string
	WKT         string // written as the description when Description is empty
}

// WGS84 returns EPSG:4326.
func WGS84() *CRS {
	return &CRS{
		Code: 4326,
		Name: "WGS 84",
	}
}

// Options controls the layer metadata and whether a spatial index is built.
// Readers here only iterate through the index, so files written without one
// read back empty.
type Options struct {
	Name         string
	Description  string
	IncludeIndex bool
	CRS          *CRS // nil leaves the CRS out of the header
}

// DefaultOptions builds an index and records WGS 84.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
		CRS:          WGS84(),
	}
}

// ColumnInfo is one property column of a file. Type is the FlatGeobuf
// column type name such as "Long" or "Json".
type ColumnInfo struct {
	Name        string
	Type        string
	Title       string
	Description string
	Nullable    bool
}

// Header is the decoded layer metadata.
type Header struct {
	Name          string
	Description   string
	GeometryType  string // FlatGeobuf name; "Unknown" for mixed layers
	FeaturesCount uint64
	Envelope      [4]float64 // minX, minY, maxX, maxY
	CRS           *CRS
	HasIndex      bool
	Columns       []ColumnInfo
}
