// Package export serializes feature collections and bundles layered
// output into a zip archive.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"

	"github.com/woozymasta/kml2geo/internal/config"
	"github.com/woozymasta/kml2geo/internal/converter"
	"github.com/woozymasta/kml2geo/internal/geo"
)

var (
	illegalChars = regexp.MustCompile(`[\\/:*?"<>|\r\n\t]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Sanitize makes a string safe for use in archive entry and file names:
// NUL becomes a space, filesystem-illegal character runs and whitespace
// runs collapse to single underscores.
func Sanitize(s string) string {
	out := strings.ReplaceAll(s, "\x00", " ")
	out = illegalChars.ReplaceAllString(out, "_")
	out = whitespace.ReplaceAllString(out, "_")
	return out
}

// Marshal serializes a feature collection to UTF-8 JSON, pretty-printed
// with the configured indent, or minified when compact output is on.
func Marshal(fc geo.GeoJSONFeatureCollection, cfg config.Config) ([]byte, error) {
	data, err := json.MarshalIndent(fc, "", cfg.Indent)
	if err != nil {
		return nil, fmt.Errorf("export: marshal failed: %w", err)
	}
	if !cfg.Compact {
		return data, nil
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	out, err := m.Bytes("application/json", data)
	if err != nil {
		return nil, fmt.Errorf("export: minify failed: %w", err)
	}
	return out, nil
}

// EntryName builds the archive entry name for a layer path, using "root"
// for the overflow group.
func EntryName(basePrefix, layerPath string) string {
	suffix := "root"
	if layerPath != "" {
		suffix = Sanitize(layerPath)
	}
	return Sanitize(basePrefix) + "__" + suffix + ".geojson"
}

// ZipLayers bundles the layers into an in-memory zip archive, one GeoJSON
// entry per layer. Nothing touches disk here, so a failing run produces
// no partial archive.
func ZipLayers(layers []converter.Layer, basePrefix string, cfg config.Config) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, layer := range layers {
		data, err := Marshal(layer.Collection, cfg)
		if err != nil {
			return nil, err
		}
		w, err := zw.Create(EntryName(basePrefix, layer.Path))
		if err != nil {
			return nil, fmt.Errorf("export: zip entry failed: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("export: zip write failed: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: zip close failed: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the fully assembled output, creating parent
// directories first. Callers buffer everything in memory beforehand; a
// crash mid-write leaving a truncated file is the accepted risk.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
