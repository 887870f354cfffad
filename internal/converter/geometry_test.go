package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/kml2geo/internal/geo"
	"github.com/woozymasta/kml2geo/internal/kml"
)

// parsePlacemark wraps a geometry snippet in a Placemark and returns the
// placemark element.
func parsePlacemark(t *testing.T, inner string) kml.Elem {
	t.Helper()
	doc := `<kml xmlns="http://www.opengis.net/kml/2.2" xmlns:gx="http://www.google.com/kml/ext/2.2">` +
		`<Document><Placemark>` + inner + `</Placemark></Document></kml>`
	tree, err := kml.Parse([]byte(doc))
	require.NoError(t, err)
	pm, ok := tree.Root().FirstDescendant("Placemark")
	require.True(t, ok)
	return pm
}

// convertFirst runs the full placemark geometry path: locate then convert.
func convertFirst(t *testing.T, inner string) *geo.GeoJSONGeometry {
	t.Helper()
	pm := parsePlacemark(t, inner)
	el, ok := findGeometry(pm)
	if !ok {
		return nil
	}
	return convertGeometry(el, 0)
}

func TestConvertPoint(t *testing.T) {
	g := convertFirst(t, `<Point><coordinates>1,2</coordinates></Point>`)
	require.NotNil(t, g)
	assert.Equal(t, "Point", g.Type)
	assert.Equal(t, geo.Position{1, 2}, g.Coordinates)
}

func TestConvertPointEmptyCoordinates(t *testing.T) {
	assert.Nil(t, convertFirst(t, `<Point><coordinates></coordinates></Point>`))
}

func TestConvertPointUsesFirstTuple(t *testing.T) {
	g := convertFirst(t, `<Point><coordinates>1,2 3,4</coordinates></Point>`)
	require.NotNil(t, g)
	assert.Equal(t, geo.Position{1, 2}, g.Coordinates)
}

func TestConvertLineString(t *testing.T) {
	g := convertFirst(t, `<LineString><coordinates>0,0 1,1 2,2</coordinates></LineString>`)
	require.NotNil(t, g)
	assert.Equal(t, "LineString", g.Type)
	assert.Equal(t, []geo.Position{{0, 0}, {1, 1}, {2, 2}}, g.Coordinates)
}

func TestConvertLineStringTooShort(t *testing.T) {
	assert.Nil(t, convertFirst(t, `<LineString><coordinates>0,0</coordinates></LineString>`))
}

func TestConvertPolygon(t *testing.T) {
	t.Run("open outer ring is force-closed", func(t *testing.T) {
		g := convertFirst(t, `<Polygon><outerBoundaryIs><LinearRing>`+
			`<coordinates>0,0 1,0 1,1</coordinates>`+
			`</LinearRing></outerBoundaryIs></Polygon>`)
		require.NotNil(t, g)
		assert.Equal(t, "Polygon", g.Type)

		rings := g.Coordinates.([][]geo.Position)
		require.Len(t, rings, 1)
		require.Len(t, rings[0], 4)
		assert.Equal(t, rings[0][0], rings[0][3])
		assert.Equal(t, geo.Position{0, 0}, rings[0][3])
	})

	t.Run("closed ring stays unchanged", func(t *testing.T) {
		g := convertFirst(t, `<Polygon><outerBoundaryIs><LinearRing>`+
			`<coordinates>0,0 1,0 1,1 0,0</coordinates>`+
			`</LinearRing></outerBoundaryIs></Polygon>`)
		require.NotNil(t, g)

		rings := g.Coordinates.([][]geo.Position)
		require.Len(t, rings, 1)
		assert.Len(t, rings[0], 4)
	})

	t.Run("holes are closed independently and empty holes dropped", func(t *testing.T) {
		g := convertFirst(t, `<Polygon>`+
			`<outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4</coordinates></LinearRing></outerBoundaryIs>`+
			`<innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2</coordinates></LinearRing></innerBoundaryIs>`+
			`<innerBoundaryIs><LinearRing><coordinates></coordinates></LinearRing></innerBoundaryIs>`+
			`</Polygon>`)
		require.NotNil(t, g)

		rings := g.Coordinates.([][]geo.Position)
		require.Len(t, rings, 2)
		hole := rings[1]
		require.Len(t, hole, 4)
		assert.Equal(t, hole[0], hole[3])
	})

	t.Run("bare coordinates fallback", func(t *testing.T) {
		g := convertFirst(t, `<Polygon><coordinates>0,0 1,0 1,1</coordinates></Polygon>`)
		require.NotNil(t, g)

		rings := g.Coordinates.([][]geo.Position)
		require.Len(t, rings, 1)
		assert.Len(t, rings[0], 4)
	})

	t.Run("empty outer ring omits polygon", func(t *testing.T) {
		assert.Nil(t, convertFirst(t, `<Polygon><outerBoundaryIs><LinearRing>`+
			`<coordinates></coordinates></LinearRing></outerBoundaryIs></Polygon>`))
	})
}

func TestConvertTrack(t *testing.T) {
	t.Run("coords become a linestring", func(t *testing.T) {
		g := convertFirst(t, `<gx:Track>`+
			`<when>2024-01-01T00:00:00Z</when>`+
			`<gx:coord>10 20 150</gx:coord>`+
			`<gx:coord>11 21 160</gx:coord>`+
			`</gx:Track>`)
		require.NotNil(t, g)
		assert.Equal(t, "LineString", g.Type)
		// Altitude is not read on the track path.
		assert.Equal(t, []geo.Position{{10, 20}, {11, 21}}, g.Coordinates)
	})

	t.Run("single coord yields no geometry", func(t *testing.T) {
		assert.Nil(t, convertFirst(t, `<gx:Track><gx:coord>10 20</gx:coord></gx:Track>`))
	})

	t.Run("short records are skipped", func(t *testing.T) {
		g := convertFirst(t, `<gx:Track>`+
			`<gx:coord>10</gx:coord>`+
			`<gx:coord>1 2</gx:coord>`+
			`<gx:coord>3 4</gx:coord>`+
			`</gx:Track>`)
		require.NotNil(t, g)
		assert.Equal(t, []geo.Position{{1, 2}, {3, 4}}, g.Coordinates)
	})
}

func TestConvertMultiGeometry(t *testing.T) {
	t.Run("unsupported children are ignored", func(t *testing.T) {
		g := convertFirst(t, `<MultiGeometry>`+
			`<Point><coordinates>1,2</coordinates></Point>`+
			`<Model><Location>ignored</Location></Model>`+
			`</MultiGeometry>`)
		require.NotNil(t, g)
		assert.Equal(t, "GeometryCollection", g.Type)
		require.Len(t, g.Geometries, 1)
		assert.Equal(t, "Point", g.Geometries[0].Type)
	})

	t.Run("siblings convert in document order", func(t *testing.T) {
		g := convertFirst(t, `<MultiGeometry>`+
			`<LineString><coordinates>0,0 1,1</coordinates></LineString>`+
			`<Point><coordinates>5,5</coordinates></Point>`+
			`</MultiGeometry>`)
		require.NotNil(t, g)
		require.Len(t, g.Geometries, 2)
		assert.Equal(t, "LineString", g.Geometries[0].Type)
		assert.Equal(t, "Point", g.Geometries[1].Type)
	})

	t.Run("nested multigeometry recurses", func(t *testing.T) {
		g := convertFirst(t, `<MultiGeometry><MultiGeometry>`+
			`<Point><coordinates>1,2</coordinates></Point>`+
			`</MultiGeometry></MultiGeometry>`)
		require.NotNil(t, g)
		require.Len(t, g.Geometries, 1)
		assert.Equal(t, "GeometryCollection", g.Geometries[0].Type)
	})

	t.Run("no convertible children omits collection", func(t *testing.T) {
		assert.Nil(t, convertFirst(t, `<MultiGeometry><Model/></MultiGeometry>`))
	})
}

func TestFindGeometryPriority(t *testing.T) {
	// Point wins over a later LineString even though both are present.
	pm := parsePlacemark(t, `<LineString><coordinates>0,0 1,1</coordinates></LineString>`+
		`<Point><coordinates>9,9</coordinates></Point>`)
	el, ok := findGeometry(pm)
	require.True(t, ok)
	assert.Equal(t, "Point", el.Local())
}

func TestFindGeometryNone(t *testing.T) {
	pm := parsePlacemark(t, `<name>bare</name>`)
	_, ok := findGeometry(pm)
	assert.False(t, ok)
}
