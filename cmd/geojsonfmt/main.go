// Command geojsonfmt validates a GeoJSON document and rewrites it as JSON,
// YAML or FlatGeobuf.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	geojson "github.com/tingold/typed-geojson"
	"github.com/tingold/typed-geojson/flatgeobuf"
	"github.com/tingold/typed-geojson/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Output string `short:"o" long:"output" env:"GEOJSONFMT_OUTPUT" description:"Output file, - for stdout" default:"-"`
	From   string `short:"f" long:"from"   env:"GEOJSONFMT_FROM"   description:"Input format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	To     string `short:"t" long:"to"     env:"GEOJSONFMT_TO"     description:"Output format" choice:"json" choice:"yaml" choice:"fgb" default:"json"`
	Indent bool   `short:"i" long:"indent" description:"Indent JSON output"`
	Check  bool   `short:"c" long:"check"  description:"Only validate, write nothing"`
	Layer  string `short:"n" long:"layer"  description:"FlatGeobuf layer name"`

	Args struct {
		Input string `positional-arg-name:"input" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
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

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		if de, ok := geojson.AsDecodeError(err); ok {
			log.Error().
				Str("input", inputName(opts)).
				Str("path", de.Path.String()).
				Str("pointer", de.Path.Pointer()).
				Str("expected", de.Expected).
				Str("found", de.Found).
				Msg("Invalid GeoJSON")
		} else {
			log.Error().Err(err).Str("input", inputName(opts)).Msg("Failed")
		}
		os.Exit(1)
	}
}

func inputName(opts Options) string {
	if opts.Args.Input == "" {
		return "-"
	}
	return opts.Args.Input
}

// run reads, validates and writes one document.
func run(opts Options, stdin io.Reader, stdout io.Writer) error {
	data, err := readInput(inputName(opts), stdin)
	if err != nil {
		return err
	}

	tree, err := parse(data, inputFormat(opts))
	if err != nil {
		return err
	}

	codec := geojson.MapCodec()
	g, err := codec.Decode(tree)
	if err != nil {
		return err
	}

	log.Debug().
		Str("kind", g.Kind().String()).
		Str("type", string(g.Type())).
		Msg("Decoded document")

	if opts.Check {
		return nil
	}

	out, err := render(g, opts)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		return err
	}
	log.Info().Str("output", opts.Output).Int("bytes", len(out)).Msg("Wrote output")
	return nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func inputFormat(opts Options) string {
	if opts.From != "" && opts.From != "auto" {
		return opts.From
	}
	switch strings.ToLower(filepath.Ext(opts.Args.Input)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// parse turns text into the JSON tree the decoder reads.
func parse(data []byte, format string) (any, error) {
	if format != "yaml" {
		return geojson.ParseJSON(data)
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &geojson.SyntaxError{Err: err}
	}
	return tree, nil
}

func render(g geojson.GeoJSON[geojson.Properties], opts Options) ([]byte, error) {
	codec := geojson.MapCodec()

	switch opts.To {
	case "yaml":
		return yaml.Marshal(codec.Encode(g))

	case "fgb":
		fc := toCollection(g)
		o := flatgeobuf.DefaultOptions()
		o.Name = opts.Layer
		var buf bytes.Buffer
		if err := flatgeobuf.WriteFeatures(&buf, fc, geojson.EncodeMapProperties, o); err != nil {
			return nil, fmt.Errorf("write flatgeobuf: %w", err)
		}
		return buf.Bytes(), nil

	case "", "json":
		if opts.Indent {
			out, err := codec.MarshalIndent(g, "", "  ")
			return append(out, '\n'), err
		}
		out, err := codec.Marshal(g)
		return append(out, '\n'), err

	default:
		return nil, errors.New("unknown output format " + opts.To)
	}
}

// toCollection wraps any document as a feature collection.
func toCollection(g geojson.GeoJSON[geojson.Properties]) geojson.FeatureCollection[geojson.Properties] {
	return geojson.Match(g,
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
}
