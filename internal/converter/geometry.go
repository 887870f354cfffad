package converter

import (
	"strings"

	"github.com/woozymasta/kml2geo/internal/geo"
	"github.com/woozymasta/kml2geo/internal/kml"
)

// maxGeometryDepth caps MultiGeometry nesting on adversarial input.
const maxGeometryDepth = 32

// geometryOrder is the priority for locating a placemark's geometry.
var geometryOrder = []string{"Point", "LineString", "Polygon", "Track", "MultiGeometry"}

// findGeometry returns the placemark's geometry element, trying each
// supported type in priority order. Direct children are preferred so that
// a MultiGeometry is not shadowed by the geometries nested inside it; a
// descendant scan handles abbreviated documents where the geometry sits
// under an intermediate wrapper.
func findGeometry(pm kml.Elem) (kml.Elem, bool) {
	for _, t := range geometryOrder {
		for _, el := range pm.ChildrenNamed(t) {
			if t == "Track" && !isGxTrack(el) {
				continue
			}
			return el, true
		}
	}
	for _, t := range geometryOrder {
		if t == "Track" {
			if el, ok := findTrack(pm); ok {
				return el, true
			}
			continue
		}
		if el, ok := pm.FirstDescendant(t); ok {
			return el, true
		}
	}
	return kml.Elem{}, false
}

// findTrack locates the first extension-namespace Track under the scope.
// The namespace check keeps a same-named core-schema element from being
// read as a track of points.
func findTrack(scope kml.Elem) (kml.Elem, bool) {
	for _, el := range scope.Descendants("Track") {
		if isGxTrack(el) {
			return el, true
		}
	}
	return kml.Elem{}, false
}

func isGxTrack(el kml.Elem) bool {
	return el.Local() == "Track" && (el.Space() == kml.GxNS || el.Space() == "")
}

// convertGeometry maps one KML geometry element to its GeoJSON value,
// returning nil when the element yields no usable geometry.
func convertGeometry(el kml.Elem, depth int) *geo.GeoJSONGeometry {
	switch el.Local() {
	case "Point":
		return convertPoint(el)
	case "LineString":
		return convertLineString(el)
	case "Polygon":
		return convertPolygon(el)
	case "Track":
		if isGxTrack(el) {
			return convertTrack(el)
		}
		return nil
	case "MultiGeometry":
		return convertMultiGeometry(el, depth)
	default:
		return nil
	}
}

func convertPoint(el kml.Elem) *geo.GeoJSONGeometry {
	coords, ok := el.FirstDescendant("coordinates")
	if !ok {
		return nil
	}
	points := ParseCoordinates(coords.Text())
	if len(points) == 0 {
		return nil
	}
	return geo.NewPoint(points[0])
}

func convertLineString(el kml.Elem) *geo.GeoJSONGeometry {
	coords, ok := el.FirstDescendant("coordinates")
	if !ok {
		return nil
	}
	points := ParseCoordinates(coords.Text())
	if len(points) < 2 {
		return nil
	}
	return geo.NewLineString(points)
}

func convertPolygon(el kml.Elem) *geo.GeoJSONGeometry {
	outer := boundaryRing(el, "outerBoundaryIs")
	if len(outer) == 0 {
		// Abbreviated or malformed polygons sometimes carry a bare
		// coordinates element without the boundary wrapper.
		if coords, ok := el.FirstDescendant("coordinates"); ok {
			outer = ParseCoordinates(coords.Text())
		}
	}
	if len(outer) == 0 {
		return nil
	}

	rings := [][]geo.Position{closeRing(outer)}
	for _, ib := range el.Descendants("innerBoundaryIs") {
		hole := linearRingCoords(ib)
		if len(hole) == 0 {
			continue
		}
		rings = append(rings, closeRing(hole))
	}

	return geo.NewPolygon(rings)
}

// boundaryRing parses the LinearRing coordinates under the named boundary
// element of a polygon, returning nil when any link is missing.
func boundaryRing(poly kml.Elem, boundary string) []geo.Position {
	b, ok := poly.FirstDescendant(boundary)
	if !ok {
		return nil
	}
	return linearRingCoords(b)
}

func linearRingCoords(scope kml.Elem) []geo.Position {
	lr, ok := scope.FirstDescendant("LinearRing")
	if !ok {
		return nil
	}
	coords, ok := lr.FirstDescendant("coordinates")
	if !ok {
		return nil
	}
	return ParseCoordinates(coords.Text())
}

// closeRing appends a copy of the first position when the ring is open.
// Already-closed rings pass through unchanged.
func closeRing(ring []geo.Position) []geo.Position {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first.Equal(last) {
		return ring
	}
	dup := make(geo.Position, len(first))
	copy(dup, first)
	return append(ring, dup)
}

// convertTrack reads the extension track's coord children, each holding a
// whitespace-separated "lon lat [alt]" record, and emits a LineString.
// Altitude is not carried on this path.
func convertTrack(el kml.Elem) *geo.GeoJSONGeometry {
	var points []geo.Position
	for _, c := range el.ChildrenNamed("coord") {
		fields := strings.Fields(c.Text())
		if len(fields) < 2 {
			continue
		}
		lon, err1 := parseFloat(fields[0])
		lat, err2 := parseFloat(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, geo.Position{lon, lat})
	}
	if len(points) < 2 {
		return nil
	}
	return geo.NewLineString(points)
}

// convertMultiGeometry converts each direct child that is a supported
// geometry type, in document order. Children are matched per type rather
// than by first-match priority, so sibling geometries all survive.
func convertMultiGeometry(el kml.Elem, depth int) *geo.GeoJSONGeometry {
	if depth >= maxGeometryDepth {
		return nil
	}

	var geoms []geo.GeoJSONGeometry
	for _, child := range el.Children() {
		switch child.Local() {
		case "Point", "LineString", "Polygon", "Track", "MultiGeometry":
			if g := convertGeometry(child, depth+1); g != nil {
				geoms = append(geoms, *g)
			}
		}
	}

	if len(geoms) == 0 {
		return nil
	}
	return geo.NewGeometryCollection(geoms)
}
