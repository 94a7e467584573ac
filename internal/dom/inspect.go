package dom

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Metadata summarizes page-level information
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Viewport    string `json:"viewport,omitempty"`
	Charset     string `json:"charset,omitempty"`
	Language    string `json:"language,omitempty"`
	Forms       int    `json:"forms"`
	Inputs      int    `json:"inputs"`
	Buttons     int    `json:"buttons"`
	Links       int    `json:"links"`
	Images      int    `json:"images"`
}

// FormField describes one control inside a form
type FormField struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Form describes a form and its controls
type Form struct {
	ID     string      `json:"id,omitempty"`
	Name   string      `json:"name,omitempty"`
	Action string      `json:"action,omitempty"`
	Method string      `json:"method,omitempty"`
	Fields []FormField `json:"fields"`
}

// AccessibleElement is an element carrying accessibility hints
type AccessibleElement struct {
	Tag             string `json:"tag"`
	Role            string `json:"role,omitempty"`
	AriaLabel       string `json:"ariaLabel,omitempty"`
	AriaDescribedby string `json:"ariaDescribedby,omitempty"`
	Alt             string `json:"alt,omitempty"`
	Text            string `json:"text"`
}

// ShadowHost is an element declaring a shadow root
type ShadowHost struct {
	Tag   string `json:"tag"`
	ID    string `json:"id,omitempty"`
	Class string `json:"class,omitempty"`
}

// PageSummary bundles every inspection result for a document
type PageSummary struct {
	Metadata      Metadata            `json:"metadata"`
	Forms         []Form              `json:"forms"`
	Accessibility []AccessibleElement `json:"accessibility"`
	ShadowHosts   []ShadowHost        `json:"shadowHosts"`
}

// Inspect builds the full page summary
func (d *Document) Inspect() PageSummary {
	return PageSummary{
		Metadata:      d.ExtractMetadata(),
		Forms:         d.ExtractForms(),
		Accessibility: d.ExtractAccessibility(),
		ShadowHosts:   d.FindShadowHosts(),
	}
}

// ExtractMetadata reads title, meta tags, language and element counts
func (d *Document) ExtractMetadata() Metadata {
	attrOf := func(selector, key string) string {
		v, _ := d.Find(selector).First().Attr(key)
		return v
	}

	return Metadata{
		Title:       d.Find("title").First().Text(),
		Description: attrOf(`meta[name="description"]`, "content"),
		Viewport:    attrOf(`meta[name="viewport"]`, "content"),
		Charset:     attrOf("meta[charset]", "charset"),
		Language:    attrOf("html", "lang"),
		Forms:       d.Find("form").Length(),
		Inputs:      d.Find("input").Length(),
		Buttons:     d.Find("button").Length(),
		Links:       d.Find("a").Length(),
		Images:      d.Find("img").Length(),
	}
}

// ExtractForms lists every form with its input, select, textarea and button controls
func (d *Document) ExtractForms() []Form {
	forms := make([]Form, 0)

	for _, formNode := range htmlquery.Find(d.root, "//form") {
		form := Form{
			ID:     htmlquery.SelectAttr(formNode, "id"),
			Name:   htmlquery.SelectAttr(formNode, "name"),
			Action: htmlquery.SelectAttr(formNode, "action"),
			Method: htmlquery.SelectAttr(formNode, "method"),
			Fields: make([]FormField, 0),
		}

		for _, field := range htmlquery.Find(formNode, ".//input | .//select | .//textarea | .//button") {
			_, required := Attr(field, "required")
			form.Fields = append(form.Fields, FormField{
				Type:        field.Data,
				Name:        htmlquery.SelectAttr(field, "name"),
				ID:          htmlquery.SelectAttr(field, "id"),
				Required:    required,
				Placeholder: htmlquery.SelectAttr(field, "placeholder"),
			})
		}

		forms = append(forms, form)
	}

	return forms
}

// ExtractAccessibility lists elements with role, aria-label, aria-describedby or alt
func (d *Document) ExtractAccessibility() []AccessibleElement {
	elements := make([]AccessibleElement, 0)

	d.Find("[role], [aria-label], [aria-describedby], [alt]").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		elements = append(elements, AccessibleElement{
			Tag:             n.Data,
			Role:            AttrValue(n, "role"),
			AriaLabel:       AttrValue(n, "aria-label"),
			AriaDescribedby: AttrValue(n, "aria-describedby"),
			Alt:             AttrValue(n, "alt"),
			Text:            Truncate(Text(n), 50),
		})
	})

	return elements
}

// FindShadowHosts lists elements marked with a shadowroot or shadow attribute
func (d *Document) FindShadowHosts() []ShadowHost {
	hosts := make([]ShadowHost, 0)

	for _, n := range d.Elements() {
		if !hasAnyAttr(n, "shadowroot", "shadowrootmode", "shadow") {
			continue
		}
		hosts = append(hosts, ShadowHost{
			Tag:   n.Data,
			ID:    AttrValue(n, "id"),
			Class: AttrValue(n, "class"),
		})
	}

	return hosts
}

func hasAnyAttr(n *html.Node, keys ...string) bool {
	for _, key := range keys {
		if v, ok := Attr(n, key); ok && v != "" {
			return true
		}
	}
	return false
}
