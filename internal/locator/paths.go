package locator

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/quantmind-br/locrank/internal/dom"
	"golang.org/x/net/html"
)

const (
	maxCSSDepth   = 5
	maxXPathDepth = 10
)

// cssPath builds a structural CSS path from el upward, stopping at the first id
func cssPath(el *html.Node, doc *dom.Document) string {
	var parts []string

	for n := el; isPathLevel(n) && len(parts) < maxCSSDepth; n = n.Parent {
		if id := dom.AttrValue(n, "id"); id != "" {
			parts = append(parts, "#"+cssIdent(id))
			break
		}

		segment := n.Data
		if classes := dom.Classes(n); len(classes) > 0 {
			segment += "." + cssIdent(preferredClass(classes, doc))
		}
		if dom.HasSameTagSiblings(n) {
			segment += fmt.Sprintf(":nth-child(%d)", dom.ElementIndex(n))
		}
		parts = append(parts, segment)
	}

	slices.Reverse(parts)
	return strings.Join(parts, " > ")
}

// xpathPath builds a structural XPath from el upward. The first id found anchors the
// path at //*[@id="..."].
func xpathPath(el *html.Node) string {
	var parts []string

	for n := el; isPathLevel(n) && len(parts) < maxXPathDepth; n = n.Parent {
		if id := dom.AttrValue(n, "id"); id != "" {
			anchor := "//*[@id=" + xpathLiteral(id) + "]"
			if len(parts) == 0 {
				return anchor
			}
			slices.Reverse(parts)
			return anchor + "/" + strings.Join(parts, "/")
		}

		class, hasClass := dom.Attr(n, "class")
		hasClass = hasClass && class != ""

		segment := n.Data
		if hasClass {
			segment += "[@class=" + xpathLiteral(class) + "]"
		}
		if dom.HasSameTagSiblings(n) {
			tag := n.Data
			pos := dom.PositionAmong(n, func(s *html.Node) bool {
				if s.Data != tag {
					return false
				}
				return !hasClass || dom.AttrValue(s, "class") == class
			})
			segment += fmt.Sprintf("[%d]", pos)
		}
		parts = append(parts, segment)
	}

	slices.Reverse(parts)
	return "//" + strings.Join(parts, "/")
}

func isPathLevel(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data != "html"
}

// uniqueClass returns the first class token matching exactly one element
func uniqueClass(classes []string, doc *dom.Document) (string, bool) {
	for _, cls := range classes {
		if doc.CountClass(cls) == 1 {
			return cls, true
		}
	}
	return "", false
}

func preferredClass(classes []string, doc *dom.Document) string {
	if cls, ok := uniqueClass(classes, doc); ok {
		return cls
	}
	return classes[0]
}

// cssIdent escapes s for use as a CSS identifier
func cssIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == 0:
			b.WriteRune(unicode.ReplacementChar)
		case unicode.IsDigit(r) && r < 0x80 && (i == 0 || (i == 1 && s[0] == '-')):
			fmt.Fprintf(&b, `\%x `, r)
		case r == '-' && i == 0 && len(s) == 1:
			b.WriteString(`\-`)
		case r >= 0x80, r == '-', r == '_',
			'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// xpathLiteral quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	pieces := strings.Split(s, `"`)
	args := make([]string, 0, len(pieces)*2)
	for i, p := range pieces {
		if i > 0 {
			args = append(args, `'"'`)
		}
		if p != "" {
			args = append(args, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
