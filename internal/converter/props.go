package converter

import (
	"strings"

	"github.com/woozymasta/kml2geo/internal/kml"
)

// extractProperties flattens a placemark's scalar and extended-data fields
// into a string map. Collision policy is first write wins: scalars land
// first, then Data elements in document order, then SchemaData/SimpleData;
// an existing key is never overwritten.
func extractProperties(pm kml.Elem, folderPath string) map[string]string {
	props := make(map[string]string)

	setIfAbsent := func(key, value string) {
		if _, ok := props[key]; !ok {
			props[key] = value
		}
	}

	for _, scalar := range []string{"name", "description", "styleUrl"} {
		if el, ok := pm.Child(scalar); ok {
			if v := el.Text(); v != "" {
				setIfAbsent(scalar, v)
			}
		}
	}

	if ext, ok := pm.FirstDescendant("ExtendedData"); ok {
		for _, d := range ext.Descendants("Data") {
			key := strings.TrimSpace(d.Attr("name"))
			if key == "" {
				continue
			}
			value, ok := d.Child("value")
			if !ok {
				continue
			}
			if v := value.Text(); v != "" {
				setIfAbsent(key, v)
			}
		}

		for _, sd := range ext.Descendants("SchemaData") {
			for _, s := range sd.Descendants("SimpleData") {
				key := strings.TrimSpace(s.Attr("name"))
				if key == "" {
					continue
				}
				if v := s.Text(); v != "" {
					setIfAbsent(key, v)
				}
			}
		}
	}

	if folderPath != "" {
		props["folderPath"] = folderPath
	}

	return props
}
