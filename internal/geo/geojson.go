// Package geo holds the GeoJSON data structures emitted by the converter.
package geo

// Position is a single coordinate as [lon, lat] or [lon, lat, alt].
type Position []float64

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and
// properties.
type GeoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   *GeoJSONGeometry  `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

// GeoJSONGeometry represents the geometry of a feature. Exactly one of
// Coordinates and Geometries is set: Coordinates for Point, LineString and
// Polygon, Geometries for GeometryCollection.
type GeoJSONGeometry struct {
	Type        string            `json:"type"`
	Coordinates interface{}       `json:"coordinates,omitempty"`
	Geometries  []GeoJSONGeometry `json:"geometries,omitempty"`
}

// NewCollection wraps features into a FeatureCollection.
func NewCollection(features []GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}
	return GeoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}

// NewPoint builds a Point geometry from a single position.
func NewPoint(p Position) *GeoJSONGeometry {
	return &GeoJSONGeometry{Type: "Point", Coordinates: p}
}

// NewLineString builds a LineString geometry from an ordered position list.
func NewLineString(points []Position) *GeoJSONGeometry {
	return &GeoJSONGeometry{Type: "LineString", Coordinates: points}
}

// NewPolygon builds a Polygon geometry from its rings; rings[0] is the
// outer boundary, the rest are holes.
func NewPolygon(rings [][]Position) *GeoJSONGeometry {
	return &GeoJSONGeometry{Type: "Polygon", Coordinates: rings}
}

// NewGeometryCollection wraps child geometries into a GeometryCollection.
func NewGeometryCollection(geoms []GeoJSONGeometry) *GeoJSONGeometry {
	return &GeoJSONGeometry{Type: "GeometryCollection", Geometries: geoms}
}

// Equal reports whether two positions have the same dimension and
// components. Polygon ring closure compares positions with it.
func (p Position) Equal(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
