// Package locator detects interactive elements in an HTML document and produces
// ranked locator strategies for each of them.
package locator

import (
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/formatter"
	"github.com/quantmind-br/locrank/internal/heuristics"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Engine runs detection, synthesis, ranking and context extraction. It holds no
// mutable state and may be shared between goroutines.
type Engine struct {
	log     *zerolog.Logger
	synth   *Synthesizer
	ranker  *heuristics.Ranker
	context *ContextExtractor
}

// New creates an engine with the built-in formatters and the default scorer
func New(log *zerolog.Logger) *Engine {
	return NewWithDeps(log, formatter.NewRegistry(), nil)
}

// NewWithDeps creates an engine with an explicit formatter registry and scorer.
// Nil arguments select the defaults.
func NewWithDeps(log *zerolog.Logger, registry *formatter.Registry, scorer heuristics.Scorer) *Engine {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Engine{
		log:     log,
		synth:   NewSynthesizer(log, registry),
		ranker:  heuristics.NewRanker(log, scorer),
		context: NewContextExtractor(log),
	}
}

// GenerateLocators analyses doc with a fresh engine that does not log
func GenerateLocators(doc *dom.Document, opts core.Options) ([]core.LocatorResult, error) {
	return New(nil).Generate(doc, opts)
}

// Generate returns one result per interactive element that yields at least one
// candidate, in document order
func (e *Engine) Generate(doc *dom.Document, opts core.Options) ([]core.LocatorResult, error) {
	if doc == nil {
		return nil, &core.DocumentError{Cause: "nil document"}
	}
	root := doc.Root()
	if root == nil {
		return nil, &core.DocumentError{Cause: "document has no root"}
	}
	if root.Type != html.DocumentNode && root.Type != html.ElementNode {
		return nil, &core.DocumentError{Cause: "root is not a document or element node"}
	}
	if opts.Framework == "" {
		opts.Framework = core.FrameworkSelenium
	}

	elements := DetectInteractive(doc)
	results := make([]core.LocatorResult, 0, len(elements))

	for _, el := range elements {
		candidates := e.synth.Synthesize(el, doc, opts)
		if len(candidates) == 0 {
			e.log.Debug().Str("tag", el.Data).Msg("no candidates, dropping element")
			continue
		}

		results = append(results, core.LocatorResult{
			Element:    Describe(el),
			Strategies: e.ranker.Rank(candidates, el, doc),
			Context:    e.context.Extract(el, doc),
		})
	}

	e.log.Debug().
		Int("interactive", len(elements)).
		Int("results", len(results)).
		Str("framework", string(opts.Framework)).
		Msg("generated locators")

	return results, nil
}

// Describe builds the read-only descriptor of an element
func Describe(el *html.Node) core.ElementDescriptor {
	return core.ElementDescriptor{
		Tag:        el.Data,
		Text:       dom.Truncate(dom.Text(el), maxTextRunes),
		Attributes: dom.Attributes(el),
	}
}
