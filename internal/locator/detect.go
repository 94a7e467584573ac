package locator

import (
	"github.com/quantmind-br/locrank/internal/dom"
	"golang.org/x/net/html"
)

// interactiveSelector matches native controls, ARIA widgets, click bindings and test hooks
const interactiveSelector = `a, button, input, select, textarea, ` +
	`[role="button"], [role="link"], [role="checkbox"], [role="radio"], [role="textbox"], [role="combobox"], ` +
	`[onclick], [ng-click], [data-ng-click], [data-action], [data-testid]`

// DetectInteractive returns every interactive element in document order, each once
func DetectInteractive(doc *dom.Document) []*html.Node {
	nodes := doc.Find(interactiveSelector).Nodes
	seen := make(map[*html.Node]struct{}, len(nodes))
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
