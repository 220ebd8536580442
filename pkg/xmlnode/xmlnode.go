// Package xmlnode builds carrier request documents as ordered element trees.
//
// Carrier XML schemas are order-sensitive and reject empty elements, so the
// builder preserves insertion order and skips blank leaf values. Attributes
// are deliberately unsupported; none of the integrated carriers use them on
// request documents.
package xmlnode

import (
	"encoding/xml"
	"strings"
)

// Header is the declaration prepended by Document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>`

// Node is a single element: a tag name, optional text content, and an
// ordered list of child elements.
type Node struct {
	name     string
	text     string
	children []*Node
}

// New creates a node and applies the optional build functions to it, so a
// request's construction mirrors the target schema's nesting:
//
//	req := xmlnode.New("AccessRequest", func(n *xmlnode.Node) {
//	    n.Element("AccessLicenseNumber", key)
//	})
func New(name string, build ...func(*Node)) *Node {
	n := &Node{name: name}
	for _, f := range build {
		f(n)
	}
	return n
}

// Add appends child nodes in order.
func (n *Node) Add(children ...*Node) {
	n.children = append(n.children, children...)
}

// Child appends and returns a new child element. The element is always
// emitted, even when it ends up with no content; container elements like
// <Address> are required by carrier schemas regardless.
func (n *Node) Child(name string, build ...func(*Node)) *Node {
	c := New(name, build...)
	n.children = append(n.children, c)
	return c
}

// Element appends a leaf element with text content. Blank values are
// dropped entirely: carriers treat an empty element as an invalid field,
// not an absent one.
func (n *Node) Element(name, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	n.children = append(n.children, &Node{name: name, text: text})
}

// Name returns the element's tag name.
func (n *Node) Name() string {
	return n.name
}

// XML serializes the tree depth-first in insertion order, with text
// content XML-escaped. No indentation is added.
func (n *Node) XML() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// Document returns the serialized tree with the UTF-8 XML declaration.
func (n *Node) Document() string {
	return Header + n.XML()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.name)
	b.WriteByte('>')
	if n.text != "" {
		_ = xml.EscapeText(writerFunc(b.WriteString), []byte(n.text))
	}
	for _, c := range n.children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.name)
	b.WriteByte('>')
}

type writerFunc func(string) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(string(p))
}
