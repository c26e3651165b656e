// Command fgbserve serves one GeoJSON file as GeoJSON and FlatGeobuf, with a
// bounding box search over the FlatGeobuf index.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/tingold/typed-geojson/internal/logger"
	"github.com/tingold/typed-geojson/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string `short:"f" long:"file"   env:"FGBSERVE_FILE"   description:"GeoJSON file to serve" required:"true"`
	Addr      string `short:"a" long:"addr"   env:"LISTEN_ADDRESS"  description:"Address to listen on" default:"0.0.0.0"`
	Port      int    `short:"p" long:"port"   env:"LISTEN_PORT"     description:"Port to listen on" default:"8080"`
	Layer     string `short:"n" long:"layer"  env:"FGBSERVE_LAYER"  description:"FlatGeobuf layer name"`
	StaticDir string `short:"s" long:"static" env:"FGBSERVE_STATIC" description:"Directory of static client files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Failed to read input")
	}

	ds, err := LoadDataset(data, opts.Layer)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Failed to load dataset")
	}

	mux := http.NewServeMux()
	ds.Register(mux)
	if opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
	}

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("file", opts.Input).
		Int("features", ds.Features()).
		Int("geojson_bytes", len(ds.geoJSON)).
		Int("fgb_bytes", len(ds.fgb)).
		Msg("Server started")

	if err := http.ListenAndServe(listenAddr, server.RequestLogger(mux)); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
