// Package kml parses KML markup into a read-only tree with
// namespace-agnostic lookups by local element name.
package kml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// GxNS is the KML extension namespace carrying track-of-points geometries.
const GxNS = "http://www.google.com/kml/ext/2.2"

// node is one element of the parsed document. Nodes live in the Tree's
// arena and reference each other by index, never by pointer.
type node struct {
	local    string
	space    string
	text     []byte
	attrs    []xml.Attr
	parent   int
	children []int
}

// Tree is a parsed KML document. It is built once by Parse and never
// mutated afterwards.
type Tree struct {
	nodes []node
}

// Elem references a single element within a Tree. The zero Elem is not
// valid; lookups report presence through a second return value.
type Elem struct {
	tree *Tree
	idx  int
}

// Parse decodes a KML byte sequence into a Tree. It fails on empty input
// and on malformed markup.
func Parse(data []byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("kml: empty input")
	}

	t := &Tree{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	current := -1

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("kml: parse failed: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			idx := len(t.nodes)
			t.nodes = append(t.nodes, node{
				local:  el.Name.Local,
				space:  el.Name.Space,
				attrs:  el.Attr,
				parent: current,
			})
			if current >= 0 {
				t.nodes[current].children = append(t.nodes[current].children, idx)
			}
			current = idx

		case xml.EndElement:
			if current >= 0 {
				current = t.nodes[current].parent
			}

		case xml.CharData:
			// el aliases the decoder's buffer; append copies it out.
			if current >= 0 {
				t.nodes[current].text = append(t.nodes[current].text, el...)
			}
		}
	}

	if len(t.nodes) == 0 {
		return nil, fmt.Errorf("kml: no elements in input")
	}
	return t, nil
}

// Root returns the document's root element.
func (t *Tree) Root() Elem {
	return Elem{tree: t, idx: 0}
}

// Len returns the number of elements in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Index returns a stable per-tree identifier for the element, usable as a
// set key.
func (e Elem) Index() int {
	return e.idx
}

// Local returns the element's tag name without any namespace prefix.
func (e Elem) Local() string {
	return e.tree.nodes[e.idx].local
}

// Space returns the element's namespace URI, empty for un-namespaced
// documents.
func (e Elem) Space() string {
	return e.tree.nodes[e.idx].space
}

// Attr returns the value of the named attribute, comparing attribute names
// by local part only. Missing attributes yield the empty string.
func (e Elem) Attr(name string) string {
	for _, a := range e.tree.nodes[e.idx].attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Text returns the element's character data, including that of nested
// elements in document order, with surrounding whitespace trimmed. An
// element with no text yields the empty string.
func (e Elem) Text() string {
	var sb strings.Builder
	e.collectText(&sb)
	return strings.TrimSpace(sb.String())
}

func (e Elem) collectText(sb *strings.Builder) {
	n := &e.tree.nodes[e.idx]
	sb.Write(n.text)
	for _, c := range n.children {
		Elem{tree: e.tree, idx: c}.collectText(sb)
	}
}

// Parent returns the element's parent, reporting false at the root.
func (e Elem) Parent() (Elem, bool) {
	p := e.tree.nodes[e.idx].parent
	if p < 0 {
		return Elem{}, false
	}
	return Elem{tree: e.tree, idx: p}, true
}

// Children returns all direct child elements in document order.
func (e Elem) Children() []Elem {
	ids := e.tree.nodes[e.idx].children
	out := make([]Elem, len(ids))
	for i, c := range ids {
		out[i] = Elem{tree: e.tree, idx: c}
	}
	return out
}

// Child returns the first direct child with the given local name.
func (e Elem) Child(local string) (Elem, bool) {
	for _, c := range e.tree.nodes[e.idx].children {
		if e.tree.nodes[c].local == local {
			return Elem{tree: e.tree, idx: c}, true
		}
	}
	return Elem{}, false
}

// ChildrenNamed returns all direct children with the given local name, in
// document order.
func (e Elem) ChildrenNamed(local string) []Elem {
	var out []Elem
	for _, c := range e.tree.nodes[e.idx].children {
		if e.tree.nodes[c].local == local {
			out = append(out, Elem{tree: e.tree, idx: c})
		}
	}
	return out
}

// FirstDescendant returns the first element under e (excluding e itself)
// with the given local name, in document pre-order.
func (e Elem) FirstDescendant(local string) (Elem, bool) {
	found := Elem{}
	ok := false
	e.walk(func(d Elem) bool {
		if d.Local() == local {
			found, ok = d, true
			return false
		}
		return true
	})
	return found, ok
}

// Descendants returns every element under e (excluding e itself) with the
// given local name, in document pre-order.
func (e Elem) Descendants(local string) []Elem {
	var out []Elem
	e.walk(func(d Elem) bool {
		if d.Local() == local {
			out = append(out, d)
		}
		return true
	})
	return out
}

// walk visits the subtree below e in pre-order using an explicit stack, so
// adversarially deep documents cannot exhaust the call stack. The visitor
// returns false to stop the walk.
func (e Elem) walk(visit func(Elem) bool) {
	stack := make([]int, 0, 16)
	children := e.tree.nodes[e.idx].children
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(Elem{tree: e.tree, idx: idx}) {
			return
		}
		cs := e.tree.nodes[idx].children
		for i := len(cs) - 1; i >= 0; i-- {
			stack = append(stack, cs[i])
		}
	}
}
