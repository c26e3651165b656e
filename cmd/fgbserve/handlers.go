package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	geojson "github.com/tingold/typed-geojson"
	"github.com/tingold/typed-geojson/flatgeobuf"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

var errBadBBox = errors.New("bbox must be minLon,minLat,maxLon,maxLat")

// Dataset is one decoded document held in both encodings.
type Dataset struct {
	collection geojson.FeatureCollection[geojson.Properties]
	geoJSON    []byte
	fgb        []byte
	reader     *flatgeobuf.Reader
}

// LoadDataset decodes GeoJSON text and prepares its FlatGeobuf form. Bare
// geometries and single features are served as one-feature collections.
func LoadDataset(data []byte, layer string) (*Dataset, error) {
	codec := geojson.MapCodec()
	g, err := codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	fc := geojson.Match(g,
		func(geom geojson.Geometry) geojson.FeatureCollection[geojson.Properties] {
			return geojson.NewFeatureCollection(geojson.NewFeature[geojson.Properties](geom))
		},
		func(f geojson.Feature[geojson.Properties]) geojson.FeatureCollection[geojson.Properties] {
			return geojson.NewFeatureCollection(f)
		},
		func(fc geojson.FeatureCollection[geojson.Properties]) geojson.FeatureCollection[geojson.Properties] {
			return fc
		},
	)

	ds := &Dataset{collection: fc}
	if ds.geoJSON, err = codec.Marshal(geojson.FromFeatureCollection(fc)); err != nil {
		return nil, err
	}

	opts := flatgeobuf.DefaultOptions()
	opts.Name = layer
	var buf bytes.Buffer
	if err := flatgeobuf.WriteFeatures(&buf, fc, geojson.EncodeMapProperties, opts); err != nil {
		return nil, fmt.Errorf("build flatgeobuf: %w", err)
	}
	ds.fgb = buf.Bytes()

	if ds.reader, err = flatgeobuf.NewReaderFromData(ds.fgb); err != nil {
		return nil, fmt.Errorf("index flatgeobuf: %w", err)
	}

	log.Debug().
		Int("features", len(fc.Features)).
		Str("geometry_type", ds.reader.Header().GeometryType).
		Msg("Dataset loaded")

	return ds, nil
}

// Features returns the number of features served.
func (ds *Dataset) Features() int {
	return len(ds.collection.Features)
}

// Register mounts the dataset endpoints on mux.
func (ds *Dataset) Register(mux *http.ServeMux) {
	mux.HandleFunc("/data.geojson", ds.HandleGeoJSON)
	mux.HandleFunc("/data.fgb", ds.HandleFlatGeobuf)
	mux.HandleFunc("/search", ds.HandleSearch)
}

func (ds *Dataset) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	writeBody(w, "application/geo+json", ds.geoJSON)
}

func (ds *Dataset) HandleFlatGeobuf(w http.ResponseWriter, r *http.Request) {
	writeBody(w, "application/octet-stream", ds.fgb)
}

// HandleSearch answers /search?bbox=minLon,minLat,maxLon,maxLat with the
// matching features as a GeoJSON feature collection.
func (ds *Dataset) HandleSearch(w http.ResponseWriter, r *http.Request) {
	bounds, err := parseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fc, err := ds.reader.Search(bounds)
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	body, err := geojson.MapCodec().Marshal(geojson.FromFeatureCollection(fc))
	if err != nil {
		log.Error().Err(err).Msg("Encoding search result failed")
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	log.Debug().
		Str("bbox", r.URL.Query().Get("bbox")).
		Int("matches", len(fc.Features)).
		Msg("Search processed")

	writeBody(w, "application/geo+json", body)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		log.Warn().Err(err).Msg("Writing response failed")
	}
}

func parseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errBadBBox
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, errBadBBox
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, errBadBBox
	}

	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}
