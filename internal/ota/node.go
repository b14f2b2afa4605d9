package ota

import (
	"encoding/xml"
	"strings"
)

// Node is a schema-free XML element tree. Supplier responses are
// inconsistent about namespace declarations, so all lookups match by
// local name only. This is the single loose-traversal helper shared by
// every parser.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// DecodeNode parses raw XML bytes into a Node tree.
func DecodeNode(raw []byte) (*Node, error) {
	var n Node
	if err := xml.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Local returns the element's local name, namespace ignored.
func (n *Node) Local() string {
	return n.XMLName.Local
}

// Attr returns the first non-empty attribute value among the given local
// names, or "".
func (n *Node) Attr(names ...string) string {
	for _, name := range names {
		for _, a := range n.Attrs {
			if a.Name.Local == name && strings.TrimSpace(a.Value) != "" {
				return strings.TrimSpace(a.Value)
			}
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even when empty.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// TextContent returns the element's own character data, trimmed.
func (n *Node) TextContent() string {
	return strings.TrimSpace(n.Text)
}

// Walk visits n and every descendant in document order. Returning false
// from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns every descendant (excluding n itself) whose local name
// matches, in document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for i := range n.Children {
		n.Children[i].Walk(func(d *Node) bool {
			if d.Local() == name {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// Find resolves a descendant path: each step matches anywhere below the
// previous match. Returns the first match in document order, or nil.
func (n *Node) Find(path ...string) *Node {
	if len(path) == 0 {
		return n
	}
	for _, d := range n.FindAll(path[0]) {
		if res := d.Find(path[1:]...); res != nil {
			return res
		}
	}
	return nil
}

// FindEach resolves a descendant path like Find but visits every match.
func (n *Node) FindEach(path []string, fn func(*Node)) {
	if len(path) == 0 {
		fn(n)
		return
	}
	for _, d := range n.FindAll(path[0]) {
		d.FindEach(path[1:], fn)
	}
}

// firstNode returns the first non-nil result of fn over the given roots.
// Used by the fallback strategies that probe several search scopes.
func firstNode(roots []*Node, fn func(*Node) *Node) *Node {
	for _, r := range roots {
		if r == nil {
			continue
		}
		if found := fn(r); found != nil {
			return found
		}
	}
	return nil
}

// dedupe removes duplicate strings preserving first-seen order; empty
// strings are dropped.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
