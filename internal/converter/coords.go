// Package converter transforms a parsed KML tree into GeoJSON feature
// collections, preserving the document's folder hierarchy as layer names.
package converter

import (
	"strconv"
	"strings"

	"github.com/woozymasta/kml2geo/internal/geo"
)

// ParseCoordinates tokenizes a KML coordinates text into positions. Tuples
// are separated by whitespace, tuple components by commas. A tuple with
// fewer than two components, or with an unparsable longitude or latitude,
// is skipped; a blank or unparsable altitude degrades the tuple to 2-D.
func ParseCoordinates(text string) []geo.Position {
	var out []geo.Position

	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}

		lon, err1 := parseFloat(parts[0])
		lat, err2 := parseFloat(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}

		if len(parts) >= 3 && strings.TrimSpace(parts[2]) != "" {
			if alt, err := parseFloat(parts[2]); err == nil {
				out = append(out, geo.Position{lon, lat, alt})
				continue
			}
		}
		out = append(out, geo.Position{lon, lat})
	}

	return out
}

// FormatCoordinates renders positions back into KML coordinates text, one
// comma-joined tuple per position, space separated.
func FormatCoordinates(points []geo.Position) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for j, c := range p {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		}
	}
	return sb.String()
}

// parseFloat parses a decimal-point float regardless of locale.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
