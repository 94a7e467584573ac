package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Attr reads an attribute of n
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrValue reads an attribute, returning "" when absent
func AttrValue(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// Attributes copies every attribute of n into a map
func Attributes(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if _, seen := attrs[a.Key]; seen {
			continue
		}
		attrs[a.Key] = a.Val
	}
	return attrs
}

// Classes splits the class attribute into tokens, in list order
func Classes(n *html.Node) []string {
	return strings.Fields(AttrValue(n, "class"))
}

// Tag returns the lower-case tag name of an element
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// Text returns the trimmed concatenation of every text node below n
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// Truncate cuts s to at most limit runes
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// ParentElement returns the parent of n if it is an element
func ParentElement(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil
	}
	return n.Parent
}

// ElementIndex is the 1-based position of n among its element siblings
func ElementIndex(n *html.Node) int {
	idx := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}

// HasSameTagSiblings reports whether another sibling element shares n's tag
func HasSameTagSiblings(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	for s := n.Parent.FirstChild; s != nil; s = s.NextSibling {
		if s != n && s.Type == html.ElementNode && s.Data == n.Data {
			return true
		}
	}
	return false
}

// PositionAmong is the 1-based position of n among preceding siblings accepted by same
func PositionAmong(n *html.Node, same func(*html.Node) bool) int {
	pos := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && same(s) {
			pos++
		}
	}
	return pos
}
