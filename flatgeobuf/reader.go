package flatgeobuf

import (
	"fmt"

	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"

	geojson "github.com/tingold/typed-geojson"
)

// Reader provides read access to a FlatGeobuf file.
//
// Features are reached through the spatial index, so files written without
// one read back as empty collections.
type Reader struct {
	fgb *flatgeobuf.FlatGeoBuf
}

// NewReader opens a memory-mapped reader on the file at path.
func NewReader(path string) (*Reader, error) {
	fgb, err := flatgeobuf.New(path)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// NewReaderFromData creates a reader over data.
func NewReaderFromData(data []byte) (*Reader, error) {
	fgb, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// Header returns the file metadata.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}

	if h.EnvelopeLength() >= 4 {
		header.Envelope = [4]float64{h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3)}
	}

	var crs flattypes.Crs
	if h.Crs(&crs) != nil {
		header.CRS = &CRS{
			Code:        int(crs.Code()),
			Name:        string(crs.Name()),
			Description: string(crs.Description()),
		}
	}

	if n := h.ColumnsLength(); n > 0 {
		header.Columns = make([]ColumnInfo, 0, n)
		for i := 0; i < n; i++ {
			var col flattypes.Column
			if !h.Columns(&col, i) {
				continue
			}
			header.Columns = append(header.Columns, ColumnInfo{
				Name:        string(col.Name()),
				Type:        flattypes.EnumNamesColumnType[col.Type()],
				Title:       string(col.Title()),
				Description: string(col.Description()),
				Nullable:    col.Nullable(),
			})
		}
	}

	return header
}

// ReadAll reads every feature. Properties are decoded into schema-free
// objects that can be handed to any properties decoder.
func (r *Reader) ReadAll() (geojson.FeatureCollection[geojson.Properties], error) {
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 || h.IndexNodeSize() == 0 || h.EnvelopeLength() < 4 {
		return geojson.NewFeatureCollection[geojson.Properties](), nil
	}
	return r.search(h, h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3))
}

// ReadGeometries reads every geometry without properties.
func (r *Reader) ReadGeometries() ([]geojson.Geometry, error) {
	fc, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return geometries(fc), nil
}

// Search returns the features whose bounding boxes intersect bounds.
func (r *Reader) Search(bounds orb.Bound) (geojson.FeatureCollection[geojson.Properties], error) {
	h := r.fgb.Header()
	if h.IndexNodeSize() == 0 {
		return geojson.FeatureCollection[geojson.Properties]{}, ErrNoIndex
	}
	return r.search(h, bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), bounds.Max.Y())
}

// SearchGeometries is Search without properties.
func (r *Reader) SearchGeometries(bounds orb.Bound) ([]geojson.Geometry, error) {
	fc, err := r.Search(bounds)
	if err != nil {
		return nil, err
	}
	return geometries(fc), nil
}

// Close releases the reader. The mapping itself is released by the
// finalizer of the underlying file.
func (r *Reader) Close() error {
	r.fgb = nil
	return nil
}

func (r *Reader) search(h *flattypes.Header, minX, minY, maxX, maxY float64) (geojson.FeatureCollection[geojson.Properties], error) {
	found, err := r.fgb.Search(minX, minY, maxX, maxY)
	if err != nil {
		return geojson.FeatureCollection[geojson.Properties]{}, err
	}

	fc := geojson.FeatureCollection[geojson.Properties]{
		Features: make([]geojson.Feature[geojson.Properties], 0, len(found)),
	}
	for i, ff := range found {
		f, err := readFeature(ff, h)
		if err != nil {
			return geojson.FeatureCollection[geojson.Properties]{}, fmt.Errorf("feature %d: %w", i, err)
		}
		fc.Append(f)
	}
	return fc, nil
}

// readFeature converts one stored feature. A feature without properties
// gets nil Properties.
func readFeature(ff *flattypes.Feature, h *flattypes.Header) (geojson.Feature[geojson.Properties], error) {
	var f geojson.Feature[geojson.Properties]
	if ff == nil {
		return f, ErrInvalidData
	}

	var fg flattypes.Geometry
	if ff.Geometry(&fg) == nil {
		return f, ErrNilGeometry
	}
	g, err := decodeGeometry(&fg)
	if err != nil {
		return f, err
	}
	f = geojson.NewFeature[geojson.Properties](g)

	if n := ff.PropertiesLength(); n > 0 && h.ColumnsLength() > 0 {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(ff.Properties(i))
		}
		props, err := decodeProperties(data, h)
		if err != nil {
			return f, err
		}
		f = f.WithProperties(props)
	}

	return f, nil
}

func geometries(fc geojson.FeatureCollection[geojson.Properties]) []geojson.Geometry {
	gs := make([]geojson.Geometry, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry != nil {
			gs = append(gs, f.Geometry)
		}
	}
	return gs
}
