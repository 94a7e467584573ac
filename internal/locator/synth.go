package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/formatter"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// maxTextRunes bounds the text strategy and the element descriptor text
const maxTextRunes = 50

// source produces zero or more raw values of one strategy type for an element
type source func(el *html.Node, doc *dom.Document) ([]core.RawValue, error)

type step struct {
	strategy      core.StrategyType
	accessibility bool
	source        source
}

// steps run in the fixed synthesis order, which ranking relies on to break ties
var steps = []step{
	{strategy: core.StrategyID, source: attrSource("id")},
	{strategy: core.StrategyName, source: attrSource("name")},
	{strategy: core.StrategyClass, source: classSource},
	{strategy: core.StrategyData, source: dataSource},
	{strategy: core.StrategyText, source: textSource},
	{strategy: core.StrategyCSS, source: cssSource},
	{strategy: core.StrategyXPath, source: xpathSource},
	{strategy: core.StrategyAriaLabel, accessibility: true, source: attrSource("aria-label")},
	{strategy: core.StrategyRole, accessibility: true, source: attrSource("role")},
}

// Synthesizer turns one element into formatted locator candidates
type Synthesizer struct {
	Logger   *zerolog.Logger
	Registry *formatter.Registry
}

// NewSynthesizer creates a synthesizer; a nil registry selects the built-in formatters
func NewSynthesizer(logger *zerolog.Logger, registry *formatter.Registry) *Synthesizer {
	if registry == nil {
		registry = formatter.NewRegistry()
	}
	return &Synthesizer{
		Logger:   logger,
		Registry: registry,
	}
}

// Synthesize builds every applicable candidate for el. A strategy that fails is
// skipped and the rest still run.
func (s *Synthesizer) Synthesize(el *html.Node, doc *dom.Document, opts core.Options) []core.LocatorCandidate {
	candidates := make([]core.LocatorCandidate, 0, len(steps))

	for _, st := range steps {
		if st.accessibility && !opts.IncludeAccessibility {
			continue
		}

		values, err := runSource(st.source, el, doc)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Debug().
					Err(err).
					Str("strategy", string(st.strategy)).
					Str("tag", dom.Tag(el)).
					Msg("skipping strategy")
			}
			continue
		}

		for _, v := range values {
			if v.IsEmpty() {
				continue
			}
			candidates = append(candidates, core.LocatorCandidate{
				Type:              st.strategy,
				RawValue:          v,
				FormattedSelector: s.Registry.Format(opts.Framework, st.strategy, v),
			})
		}
	}

	return candidates
}

func runSource(src source, el *html.Node, doc *dom.Document) (values []core.RawValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			values, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return src(el, doc)
}

func attrSource(key string) source {
	return func(el *html.Node, _ *dom.Document) ([]core.RawValue, error) {
		v := dom.AttrValue(el, key)
		if v == "" {
			return nil, nil
		}
		return []core.RawValue{core.StringValue(v)}, nil
	}
}

func classSource(el *html.Node, doc *dom.Document) ([]core.RawValue, error) {
	cls, ok := uniqueClass(dom.Classes(el), doc)
	if !ok {
		return nil, nil
	}
	return []core.RawValue{core.StringValue(cls)}, nil
}

func dataSource(el *html.Node, _ *dom.Document) ([]core.RawValue, error) {
	var values []core.RawValue
	seen := make(map[string]struct{})
	for _, a := range el.Attr {
		if a.Namespace != "" || !strings.HasPrefix(a.Key, "data-") {
			continue
		}
		if _, dup := seen[a.Key]; dup {
			continue
		}
		seen[a.Key] = struct{}{}
		values = append(values, core.DataValue(a.Key, a.Val))
	}
	return values, nil
}

func textSource(el *html.Node, _ *dom.Document) ([]core.RawValue, error) {
	text := dom.Text(el)
	if text == "" || utf8.RuneCountInString(text) >= maxTextRunes {
		return nil, nil
	}
	return []core.RawValue{core.StringValue(text)}, nil
}

func cssSource(el *html.Node, doc *dom.Document) ([]core.RawValue, error) {
	path := cssPath(el, doc)
	if path == "" {
		return nil, fmt.Errorf("no css path for <%s>", dom.Tag(el))
	}
	return []core.RawValue{core.StringValue(path)}, nil
}

func xpathSource(el *html.Node, _ *dom.Document) ([]core.RawValue, error) {
	path := xpathPath(el)
	if path == "//" {
		return nil, fmt.Errorf("no xpath for <%s>", dom.Tag(el))
	}
	return []core.RawValue{core.StringValue(path)}, nil
}
