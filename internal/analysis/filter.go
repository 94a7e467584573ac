package analysis

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/quantmind-br/locrank/internal/core"
)

// FilterResults keeps results whose tag, text or attributes fuzzily match query
func FilterResults(results []core.LocatorResult, query string) []core.LocatorResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	filtered := make([]core.LocatorResult, 0, len(results))
	for _, r := range results {
		for _, target := range SearchTargets(r.Element) {
			if fuzzy.MatchNormalizedFold(query, target) {
				filtered = append(filtered, r)
				break
			}
		}
	}
	return filtered
}

// SearchTargets lists the strings an element can be found by: tag, text and
// each attribute as name=value, attributes sorted by name
func SearchTargets(el core.ElementDescriptor) []string {
	targets := []string{el.Tag}
	if el.Text != "" {
		targets = append(targets, el.Text)
	}

	names := make([]string, 0, len(el.Attributes))
	for name := range el.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		targets = append(targets, name+"="+el.Attributes[name])
	}
	return targets
}

// Label is a short human name for an element: tag plus #id or .class or text
func Label(el core.ElementDescriptor) string {
	classes := strings.Fields(el.Attributes["class"])
	switch {
	case el.Attributes["id"] != "":
		return el.Tag + "#" + el.Attributes["id"]
	case el.Attributes["name"] != "":
		return el.Tag + "[name=" + el.Attributes["name"] + "]"
	case len(classes) > 0:
		return el.Tag + "." + classes[0]
	default:
		return el.Tag
	}
}
