package converter

import (
	"strings"

	"github.com/woozymasta/kml2geo/internal/kml"
)

// maxFolderDepth caps folder nesting on adversarial input.
const maxFolderDepth = 64

// FolderRef pairs a Folder element with its lineage path name, the names
// of its ancestor folders and itself joined by the configured separator.
type FolderRef struct {
	El   kml.Elem
	Path string
}

// documentScope returns the enumeration root: the first Document element
// under the KML root, or the root itself when absent.
func documentScope(tree *kml.Tree) kml.Elem {
	root := tree.Root()
	if doc, ok := root.FirstDescendant("Document"); ok {
		return doc
	}
	return root
}

// WalkFolders enumerates every Folder at every depth below the document
// scope, depth first in document order, each tagged with its full lineage
// path.
func (c *Converter) WalkFolders(tree *kml.Tree) []FolderRef {
	var out []FolderRef
	var path []string
	c.walkFolders(documentScope(tree), path, &out)
	return out
}

func (c *Converter) walkFolders(parent kml.Elem, path []string, out *[]FolderRef) {
	if len(path) >= maxFolderDepth {
		return
	}
	for _, f := range parent.ChildrenNamed("Folder") {
		path = append(path, c.folderName(f))
		*out = append(*out, FolderRef{El: f, Path: strings.Join(path, c.cfg.Separator)})
		c.walkFolders(f, path, out)
		path = path[:len(path)-1]
	}
}

// folderName returns the folder's display name, case preserved, with the
// unnamed placeholder for folders lacking a name element.
func (c *Converter) folderName(folder kml.Elem) string {
	if name, ok := folder.Child("name"); ok {
		if v := name.Text(); v != "" {
			return v
		}
	}
	return c.cfg.Unnamed
}

// ancestorFolderPath derives a placemark's folder path by scanning its
// ancestor chain upward and joining folder names nearest-to-root first.
// Unfoldered placemarks yield the empty string.
func (c *Converter) ancestorFolderPath(pm kml.Elem) string {
	var names []string
	for cur, ok := pm.Parent(); ok; cur, ok = cur.Parent() {
		if cur.Local() == "Folder" {
			names = append([]string{c.folderName(cur)}, names...)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, c.cfg.Separator)
}
