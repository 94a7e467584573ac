package locator

import (
	"fmt"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const (
	formSelector       = "form"
	sectionSelector    = "section, article, main, aside"
	navigationSelector = `nav, [role="navigation"]`
)

// ContextExtractor resolves the structural ancestry of an element
type ContextExtractor struct {
	Logger *zerolog.Logger
}

// NewContextExtractor creates a ContextExtractor
func NewContextExtractor(logger *zerolog.Logger) *ContextExtractor {
	return &ContextExtractor{Logger: logger}
}

// Extract fills each context field independently; a failed lookup leaves its field
// null or false without affecting the others
func (x *ContextExtractor) Extract(el *html.Node, doc *dom.Document) core.ElementContext {
	var ctx core.ElementContext

	x.lookup("parent", func() {
		if p := dom.ParentElement(el); p != nil {
			ctx.Parent = nodeRef(p)
		}
	})

	x.lookup("form", func() {
		if form := nearest(doc, el, formSelector); form != nil {
			ctx.Form = &core.FormRef{
				ID:     dom.AttrValue(form, "id"),
				Name:   dom.AttrValue(form, "name"),
				Action: dom.AttrValue(form, "action"),
			}
		}
	})

	x.lookup("section", func() {
		if section := nearest(doc, el, sectionSelector); section != nil {
			ctx.Section = nodeRef(section)
		}
	})

	x.lookup("navigation", func() {
		ctx.Navigation = nearest(doc, el, navigationSelector) != nil
	})

	return ctx
}

func (x *ContextExtractor) lookup(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil && x.Logger != nil {
			x.Logger.Debug().
				Err(fmt.Errorf("panic: %v", r)).
				Str("lookup", name).
				Msg("context lookup failed")
		}
	}()
	fn()
}

// nearest returns the closest proper ancestor of el matching selector
func nearest(doc *dom.Document, el *html.Node, selector string) *html.Node {
	if doc == nil || el == nil {
		return nil
	}
	ancestors := doc.Select(el).ParentsFiltered(selector)
	if ancestors.Length() == 0 {
		return nil
	}
	return ancestors.Get(0)
}

func nodeRef(n *html.Node) *core.NodeRef {
	return &core.NodeRef{
		Tag:   n.Data,
		ID:    dom.AttrValue(n, "id"),
		Class: dom.AttrValue(n, "class"),
	}
}
