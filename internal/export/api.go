package export

import (
	"github.com/woozymasta/kml2geo/internal/config"
	"github.com/woozymasta/kml2geo/internal/converter"
	"github.com/woozymasta/kml2geo/internal/kml"
)

// Merged converts a KML byte sequence into a single pretty-printed (or
// compact) GeoJSON FeatureCollection covering every placemark.
func Merged(kmlBytes []byte, cfg config.Config) ([]byte, error) {
	tree, err := kml.Parse(kmlBytes)
	if err != nil {
		return nil, err
	}
	c := converter.New(cfg)
	return Marshal(c.Merged(tree), cfg)
}

// Layers converts a KML byte sequence into a zip archive holding one
// GeoJSON entry per non-empty folder, plus a root entry for placemarks
// outside any folder. A document with no convertible placemarks yields an
// empty archive, not an error.
func Layers(kmlBytes []byte, cfg config.Config) ([]byte, error) {
	tree, err := kml.Parse(kmlBytes)
	if err != nil {
		return nil, err
	}
	c := converter.New(cfg)
	return ZipLayers(c.Layers(tree), c.BasePrefix(tree), cfg)
}
