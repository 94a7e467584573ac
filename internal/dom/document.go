// Package dom wraps a parsed HTML tree with the queries the locator engine needs:
// CSS and XPath selection, attribute reads, sibling/ancestor navigation and text.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/quantmind-br/locrank/internal/core"
	"golang.org/x/net/html"
)

// Document is a read-only, queryable HTML tree
type Document struct {
	root *html.Node
	doc  *goquery.Document
}

// Parse reads HTML markup into a Document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &core.DocumentError{Cause: "parse html", Err: err}
	}
	return FromNode(root)
}

// ParseString parses HTML held in memory
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// FromNode wraps an already parsed tree. The node must be a document node or an element.
func FromNode(root *html.Node) (*Document, error) {
	if root == nil {
		return nil, &core.DocumentError{Cause: "nil tree"}
	}
	if root.Type != html.DocumentNode && root.Type != html.ElementNode {
		return nil, &core.DocumentError{Cause: fmt.Sprintf("root node has unexpected type %d", root.Type)}
	}

	return &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}, nil
}

// Root returns the underlying tree root
func (d *Document) Root() *html.Node {
	return d.root
}

// Find runs a CSS selector over the whole document
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Select wraps a single node as a goquery selection bound to this document
func (d *Document) Select(n *html.Node) *goquery.Selection {
	return d.doc.FindNodes(n)
}

// Elements returns every element node in document order
func (d *Document) Elements() []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// CountWhere counts elements accepted by pred
func (d *Document) CountWhere(pred func(*html.Node) bool) int {
	count := 0
	for _, n := range d.Elements() {
		if pred(n) {
			count++
		}
	}
	return count
}

// CountAttr counts elements whose attribute key equals value exactly
func (d *Document) CountAttr(key, value string) int {
	return d.CountWhere(func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == value
	})
}

// CountClass counts elements carrying class token cls
func (d *Document) CountClass(cls string) int {
	return d.CountWhere(func(n *html.Node) bool {
		for _, c := range Classes(n) {
			if c == cls {
				return true
			}
		}
		return false
	})
}

// CountText counts elements whose trimmed text content equals text
func (d *Document) CountText(text string) int {
	return d.CountWhere(func(n *html.Node) bool {
		return Text(n) == text
	})
}

// CountCSS compiles and executes a CSS selector, returning the number of matches
func (d *Document) CountCSS(selector string) (int, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return 0, fmt.Errorf("compile css selector %q: %w", selector, err)
	}
	return len(sel.MatchAll(d.root)), nil
}

// CountXPath evaluates an XPath expression, returning the number of matches
func (d *Document) CountXPath(expr string) (int, error) {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return 0, fmt.Errorf("evaluate xpath %q: %w", expr, err)
	}
	return len(nodes), nil
}
