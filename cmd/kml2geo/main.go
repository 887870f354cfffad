package main

import (
	"os"
	"strings"

	"github.com/woozymasta/kml2geo/internal/config"
	"github.com/woozymasta/kml2geo/internal/export"
	"github.com/woozymasta/kml2geo/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file"`
	BasePrefix string `short:"p" long:"prefix"  env:"BASE_PREFIX" description:"Override base prefix for layer entry names"`
	Compact    bool   `long:"compact" description:"Minify GeoJSON output instead of pretty-printing"`

	Args struct {
		Input  string `positional-arg-name:"input.kml" description:"Input KML file"`
		Output string `positional-arg-name:"output" description:"Output path (.geojson merges all layers, anything else produces a zip)"`
	} `positional-args:"true" required:"true"`
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

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}
	if opts.BasePrefix != "" {
		cfg.BasePrefix = strings.TrimSpace(opts.BasePrefix)
	}
	if opts.Compact {
		cfg.Compact = true
	}

	input := opts.Args.Input
	info, err := os.Stat(input)
	if err != nil || !info.Mode().IsRegular() {
		log.Fatal().Str("path", input).Msg("Input KML not found or not a regular file")
	}

	kmlBytes, err := os.ReadFile(input)
	if err != nil {
		log.Fatal().Err(err).Str("path", input).Msg("Failed to read input")
	}
	if len(kmlBytes) == 0 {
		log.Fatal().Str("path", input).Msg("Input KML is empty")
	}

	output := opts.Args.Output
	merged := strings.HasSuffix(strings.ToLower(output), ".geojson")

	var data []byte
	if merged {
		data, err = export.Merged(kmlBytes, cfg)
	} else {
		if !strings.HasSuffix(strings.ToLower(output), ".zip") {
			output += ".zip"
		}
		data, err = export.Layers(kmlBytes, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}

	if err := export.WriteFile(output, data); err != nil {
		log.Fatal().Err(err).Str("path", output).Msg("Failed to write output")
	}

	mode := "layered"
	if merged {
		mode = "merged"
	}
	log.Info().
		Str("input", input).
		Str("output", output).
		Str("mode", mode).
		Int("bytes", len(data)).
		Msg("Conversion finished")
}
