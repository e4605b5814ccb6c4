package chartboard

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Container is an element of the host document that a chart mounts into.
type Container struct {
	// ID is the element's id attribute.
	ID string

	// Tag is the lower-case element name, e.g. "canvas".
	Tag string
}

// Drawable reports whether a chart can be mounted into the container.
// Chart.js draws into a canvas; a div is accepted as a wrapper it can
// create a canvas in.
func (c Container) Drawable() bool {
	return c.Tag == "canvas" || c.Tag == "div"
}

// Document resolves container identifiers to elements.
//
// Document is the only view the [Initializer] has of the host page.
// Implementations must be safe to call repeatedly; Lookup has no side effects.
type Document interface {
	// Lookup returns the container with the given id, and false if the
	// document has no such element.
	Lookup(id string) (Container, bool)
}

// HTMLDocument is a [Document] backed by a parsed HTML page.
type HTMLDocument struct {
	byID map[string]Container
}

// ParseDocument parses an HTML page and indexes its elements by id.
//
// When several elements share an id, the first one in document order wins,
// matching the browser's getElementById.
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := &HTMLDocument{byID: make(map[string]Container)}
	doc.index(root)
	return doc, nil
}

// index walks the tree depth-first in document order.
func (d *HTMLDocument) index(n *html.Node) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key != "id" || attr.Val == "" {
				continue
			}
			if _, exists := d.byID[attr.Val]; !exists {
				d.byID[attr.Val] = Container{ID: attr.Val, Tag: strings.ToLower(n.Data)}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Lookup implements [Document].
func (d *HTMLDocument) Lookup(id string) (Container, bool) {
	c, ok := d.byID[id]
	return c, ok
}

// Len returns the number of distinct ids in the document.
func (d *HTMLDocument) Len() int {
	return len(d.byID)
}
