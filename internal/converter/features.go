package converter

import (
	"github.com/woozymasta/kml2geo/internal/config"
	"github.com/woozymasta/kml2geo/internal/geo"
	"github.com/woozymasta/kml2geo/internal/kml"
)

// defaultBasePrefix names output entries when the document has no name and
// no override is given.
const defaultBasePrefix = "layers"

// Converter turns parsed KML trees into GeoJSON feature collections.
type Converter struct {
	cfg config.Config
}

// New returns a Converter using the given options.
func New(cfg config.Config) *Converter {
	return &Converter{cfg: cfg}
}

// Layer is one per-folder feature collection. Path is the owning folder's
// lineage path, empty for the overflow group of unfoldered placemarks.
type Layer struct {
	Path       string
	Collection geo.GeoJSONFeatureCollection
}

// placemarkToFeature converts one placemark, returning nil when it carries
// no recognized geometry.
func (c *Converter) placemarkToFeature(pm kml.Elem, folderPath string) *geo.GeoJSONFeature {
	el, ok := findGeometry(pm)
	if !ok {
		return nil
	}
	g := convertGeometry(el, 0)
	if g == nil {
		return nil
	}
	return &geo.GeoJSONFeature{
		Type:       "Feature",
		Geometry:   g,
		Properties: extractProperties(pm, folderPath),
	}
}

// Layers produces one feature collection per non-empty folder, in folder
// walk order, plus at most one overflow collection for placemarks outside
// any folder. Each placemark is claimed by the first folder whose direct
// children include it and contributes to exactly one collection.
func (c *Converter) Layers(tree *kml.Tree) []Layer {
	var out []Layer
	claimed := make(map[int]bool)

	for _, fr := range c.WalkFolders(tree) {
		var features []geo.GeoJSONFeature
		for _, pm := range fr.El.ChildrenNamed("Placemark") {
			if claimed[pm.Index()] {
				continue
			}
			claimed[pm.Index()] = true
			if f := c.placemarkToFeature(pm, fr.Path); f != nil {
				features = append(features, *f)
			}
		}
		if len(features) > 0 {
			out = append(out, Layer{Path: fr.Path, Collection: geo.NewCollection(features)})
		}
	}

	// Sweep placemarks never claimed by any folder into the root group.
	var rootFeatures []geo.GeoJSONFeature
	for _, pm := range tree.Root().Descendants("Placemark") {
		if claimed[pm.Index()] {
			continue
		}
		if f := c.placemarkToFeature(pm, ""); f != nil {
			rootFeatures = append(rootFeatures, *f)
		}
	}
	if len(rootFeatures) > 0 {
		out = append(out, Layer{Collection: geo.NewCollection(rootFeatures)})
	}

	return out
}

// Merged converts every placemark in the document into a single feature
// collection. Folder paths are derived per placemark from its ancestor
// chain, so folder membership survives the merge as a property.
func (c *Converter) Merged(tree *kml.Tree) geo.GeoJSONFeatureCollection {
	var features []geo.GeoJSONFeature
	for _, pm := range tree.Root().Descendants("Placemark") {
		if f := c.placemarkToFeature(pm, c.ancestorFolderPath(pm)); f != nil {
			features = append(features, *f)
		}
	}
	return geo.NewCollection(features)
}

// BasePrefix resolves the output entry prefix: the configured override if
// set, else the document's name, else a fixed fallback. The result is not
// yet sanitized for filenames.
func (c *Converter) BasePrefix(tree *kml.Tree) string {
	if c.cfg.BasePrefix != "" {
		return c.cfg.BasePrefix
	}
	if doc, ok := tree.Root().FirstDescendant("Document"); ok {
		if name, ok := doc.Child("name"); ok {
			if v := name.Text(); v != "" {
				return v
			}
		}
	}
	return defaultBasePrefix
}
