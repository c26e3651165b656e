package geojson

// PropertiesEncoder renders a properties value as a JSON tree.
type PropertiesEncoder[P any] func(P) any

// Encode renders g as a JSON tree. It cannot fail.
func Encode[P any](g GeoJSON[P], enc PropertiesEncoder[P]) any {
	switch g.kind {
	case KindGeometry:
		return EncodeGeometry(g.geometry)
	case KindFeature:
		return EncodeFeature(g.feature, enc)
	case KindFeatureCollection:
		return EncodeFeatureCollection(g.collection, enc)
	}
	return nil
}

// EncodeGeometry renders a geometry as a JSON object. A nil geometry encodes
// as JSON null.
func EncodeGeometry(g Geometry) any {
	switch v := g.(type) {
	case Point:
		return geometryObject(TypePoint, encodePosition(Position(v)))
	case MultiPoint:
		return geometryObject(TypeMultiPoint, encodePositions(v))
	case LineString:
		return geometryObject(TypeLineString, encodePositions(v))
	case MultiLineString:
		return geometryObject(TypeMultiLineString, encodePositions2(v))
	case Polygon:
		return geometryObject(TypePolygon, encodePositions2(v))
	case MultiPolygon:
		polys := make([]any, len(v))
		for i, poly := range v {
			polys[i] = encodePositions2(poly)
		}
		return geometryObject(TypeMultiPolygon, polys)
	case GeometryCollection:
		geoms := make([]any, len(v))
		for i, child := range v {
			geoms[i] = EncodeGeometry(child)
		}
		return map[string]any{
			"type":       string(TypeGeometryCollection),
			"geometries": geoms,
		}
	default:
		return nil
	}
}

// EncodeFeature renders a feature. Missing geometry and properties become
// JSON null; a missing id is left out.
func EncodeFeature[P any](f Feature[P], enc PropertiesEncoder[P]) any {
	obj := map[string]any{
		"type":       string(TypeFeature),
		"geometry":   EncodeGeometry(f.Geometry),
		"properties": nil,
	}
	if f.Properties != nil && enc != nil {
		obj["properties"] = enc(*f.Properties)
	}
	if f.ID != nil {
		obj["id"] = encodeID(*f.ID)
	}
	return obj
}

// EncodeFeatureCollection renders a feature collection.
func EncodeFeatureCollection[P any](fc FeatureCollection[P], enc PropertiesEncoder[P]) any {
	features := make([]any, len(fc.Features))
	for i, f := range fc.Features {
		features[i] = EncodeFeature(f, enc)
	}
	return map[string]any{
		"type":     string(TypeFeatureCollection),
		"features": features,
	}
}

func geometryObject(t Type, coords []any) map[string]any {
	return map[string]any{
		"type":        string(t),
		"coordinates": coords,
	}
}

func encodeID(id FeatureID) any {
	if n, ok := id.Number(); ok {
		return n
	}
	s, _ := id.Str()
	return s
}

func encodePosition(p Position) []any {
	out := make([]any, len(p))
	for i, f := range p {
		out[i] = f
	}
	return out
}

func encodePositions(ps []Position) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = encodePosition(p)
	}
	return out
}

func encodePositions2(pss [][]Position) []any {
	out := make([]any, len(pss))
	for i, ps := range pss {
		out[i] = encodePositions(ps)
	}
	return out
}
