package flatgeobuf

import (
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"

	geojson "github.com/tingold/typed-geojson"
)

// Write writes bare geometries. Nil geometries are skipped.
func Write(w io.Writer, geometries []geojson.Geometry, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(geometries) == 0 {
		return ErrNilGeometry
	}

	gen := &geometryGenerator{geometries: geometries}
	return writeWithGenerator(w, gen, commonGeometryType(geometries), nil, opts)
}

// WriteFeatures writes a feature collection. Each feature's properties go
// through enc; encoded objects become columns. Features without a geometry
// are skipped, as FlatGeobuf cannot index them. Feature ids are not stored.
func WriteFeatures[P any](w io.Writer, fc geojson.FeatureCollection[P], enc geojson.PropertiesEncoder[P], opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(fc.Features) == 0 {
		return ErrNilGeometry
	}

	geoms := make([]geojson.Geometry, 0, len(fc.Features))
	objects := make([]map[string]any, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		geoms = append(geoms, f.Geometry)

		var obj map[string]any
		if f.Properties != nil && enc != nil {
			obj = propertiesObject(enc(*f.Properties))
		}
		objects = append(objects, obj)
	}
	if len(geoms) == 0 {
		return ErrNilGeometry
	}

	s, err := inferSchema(objects)
	if err != nil {
		return err
	}
	gen := &featureGenerator{geometries: geoms, objects: objects, schema: s}
	return writeWithGenerator(w, gen, commonGeometryType(geoms), s, opts)
}

// WriteFeature writes a single feature.
func WriteFeature[P any](w io.Writer, f geojson.Feature[P], enc geojson.PropertiesEncoder[P], opts *Options) error {
	return WriteFeatures(w, geojson.NewFeatureCollection(f), enc, opts)
}

// propertiesObject returns the encoded properties when they form an object.
func propertiesObject(v any) map[string]any {
	switch obj := v.(type) {
	case map[string]any:
		return obj
	case geojson.Properties:
		return obj
	default:
		return nil
	}
}

func writeWithGenerator(
	w io.Writer,
	gen writer.FeatureGenerator,
	geomType flattypes.GeometryType,
	s *schema,
	opts *Options,
) error {
	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(geomType)
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}

	if s != nil && len(s.names) > 0 {
		header.SetColumns(s.columns(builder))
	}

	if opts.CRS != nil {
		crs := writer.NewCrs(builder)
		crs.SetOrg("EPSG")
		if opts.CRS.Code > 0 {
			crs.SetCode(int32(opts.CRS.Code))
		}
		if opts.CRS.Name != "" {
			crs.SetName(opts.CRS.Name)
		}
		switch {
		case opts.CRS.Description != "":
			crs.SetDescription(opts.CRS.Description)
		case opts.CRS.WKT != "":
			crs.SetDescription(opts.CRS.WKT)
		}
		header.SetCrs(crs)
	}

	_, err := writer.NewWriter(header, opts.IncludeIndex, gen, nil).Write(w)
	return err
}

// geometryGenerator yields one feature per geometry.
type geometryGenerator struct {
	geometries []geojson.Geometry
	next       int
}

func (g *geometryGenerator) Generate() *writer.Feature {
	for g.next < len(g.geometries) {
		geom := g.geometries[g.next]
		g.next++

		builder := flatbuffers.NewBuilder(1024)
		fg := encodeGeometry(geom, builder)
		if fg == nil {
			continue
		}
		feature := writer.NewFeature(builder)
		feature.SetGeometry(fg)
		return feature
	}
	return nil
}

// featureGenerator yields features with their encoded properties.
// objects[i] holds the properties of geometries[i] and may be nil.
type featureGenerator struct {
	geometries []geojson.Geometry
	objects    []map[string]any
	schema     *schema
	next       int
}

func (g *featureGenerator) Generate() *writer.Feature {
	for g.next < len(g.geometries) {
		i := g.next
		g.next++

		builder := flatbuffers.NewBuilder(1024)
		fg := encodeGeometry(g.geometries[i], builder)
		if fg == nil {
			continue
		}
		feature := writer.NewFeature(builder)
		feature.SetGeometry(fg)
		if data := g.schema.encodeProperties(g.objects[i]); len(data) > 0 {
			feature.SetProperties(data)
		}
		return feature
	}
	return nil
}
