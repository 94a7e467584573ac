package heuristics

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

var (
	allDigits      = regexp.MustCompile(`^\d+$`)
	anyDigit       = regexp.MustCompile(`\d`)
	hexRun         = regexp.MustCompile(`(?i)[a-f0-9]{8,}`)
	plainID        = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	utilityClass   = regexp.MustCompile(`^(btn|button|link|text|bg|p-|m-|w-|h-)`)
	xpathPosition  = regexp.MustCompile(`\[\d+\]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// errNoDocument is returned by document-backed factors when no tree is available
var errNoDocument = errors.New("no document to query")

// DefaultScorer implements the Scorer interface with the five-factor model
type DefaultScorer struct {
	Logger  *zerolog.Logger
	Weights Weights
}

// NewScorer creates a new DefaultScorer
func NewScorer(logger *zerolog.Logger) *DefaultScorer {
	return &DefaultScorer{
		Logger:  logger,
		Weights: DefaultWeights(),
	}
}

// Score computes every sub-score for a candidate and combines them into the total
func (s *DefaultScorer) Score(c core.LocatorCandidate, el *html.Node, doc *dom.Document) core.ScoredStrategy {
	scores := core.Scores{
		Uniqueness:    s.factor("uniqueness", c, func() (float64, error) { return Uniqueness(c, doc) }),
		Stability:     s.factor("stability", c, func() (float64, error) { return Stability(c) }),
		Readability:   s.factor("readability", c, func() (float64, error) { return Readability(c) }),
		Performance:   s.factor("performance", c, func() (float64, error) { return Performance(c) }),
		Accessibility: s.factor("accessibility", c, func() (float64, error) { return Accessibility(c, el, doc) }),
	}

	total := s.Total(scores)

	if s.Logger != nil {
		s.Logger.Debug().
			Str("type", string(c.Type)).
			Str("selector", c.FormattedSelector).
			Float64("total", total).
			Msg("scored locator candidate")
	}

	return core.ScoredStrategy{
		LocatorCandidate: c,
		Scores:           scores,
		TotalScore:       total,
	}
}

// Total is the weighted sum of the sub-scores rounded to two decimals
func (s *DefaultScorer) Total(scores core.Scores) float64 {
	w := s.Weights
	sum := scores.Uniqueness*w.Uniqueness +
		scores.Stability*w.Stability +
		scores.Readability*w.Readability +
		scores.Performance*w.Performance +
		scores.Accessibility*w.Accessibility
	return Round2(sum)
}

// factor runs one sub-score, turning errors and panics into the neutral score
func (s *DefaultScorer) factor(name string, c core.LocatorCandidate, fn func() (float64, error)) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			s.logFailure(name, c, err)
			score = orNeutral(0, err)
		}
	}()

	v, err := fn()
	if err != nil {
		s.logFailure(name, c, err)
	}
	return orNeutral(v, err)
}

func (s *DefaultScorer) logFailure(name string, c core.LocatorCandidate, err error) {
	if s.Logger != nil {
		s.Logger.Debug().
			Err(err).
			Str("factor", name).
			Str("type", string(c.Type)).
			Msg("sub-score failed, using neutral value")
	}
}

func orNeutral(v float64, err error) float64 {
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NeutralScore
	}
	return clamp(v)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniquenessFromCount maps a match count to a uniqueness score
func UniquenessFromCount(count int) float64 {
	switch {
	case count <= 0:
		return 0.0
	case count == 1:
		return 1.0
	case count <= 3:
		return 0.8
	case count <= 5:
		return 0.6
	default:
		return 0.3
	}
}

// Uniqueness re-queries the document with the candidate's own semantics
func Uniqueness(c core.LocatorCandidate, doc *dom.Document) (float64, error) {
	if doc == nil {
		return 0, errNoDocument
	}

	v := c.RawValue.String()
	var count int

	switch c.Type {
	case core.StrategyID:
		count = doc.CountAttr("id", v)
	case core.StrategyName:
		count = doc.CountAttr("name", v)
	case core.StrategyAriaLabel:
		count = doc.CountAttr("aria-label", v)
	case core.StrategyRole:
		count = doc.CountAttr("role", v)
	case core.StrategyClass:
		count = doc.CountClass(v)
	case core.StrategyText:
		count = doc.CountText(v)
	case core.StrategyData:
		attr, ok := c.RawValue.Data()
		if !ok {
			return 0, fmt.Errorf("data candidate without attribute value: %q", v)
		}
		count = doc.CountAttr(attr.Name, attr.Value)
	case core.StrategyCSS:
		n, err := doc.CountCSS(v)
		if err != nil {
			return 0, err
		}
		count = n
	case core.StrategyXPath:
		n, err := doc.CountXPath(v)
		if err != nil {
			n = 3
			if strings.Contains(v, "[@") {
				n = 1
			}
		}
		count = n
	default:
		count = 2
	}

	return UniquenessFromCount(count), nil
}

// Stability estimates how likely the locator survives page changes
func Stability(c core.LocatorCandidate) (float64, error) {
	v := c.RawValue.String()
	var score float64

	switch c.Type {
	case core.StrategyID:
		score = 0.9
		if allDigits.MatchString(v) {
			score -= 0.4
		}
		if hexRun.MatchString(v) {
			score -= 0.3
		}
		if strings.Contains(v, "random") || strings.Contains(v, "temp") {
			score -= 0.5
		}
	case core.StrategyName:
		score = 0.85
		if allDigits.MatchString(v) {
			score -= 0.3
		}
	case core.StrategyData:
		score = 0.8
		if attr, ok := c.RawValue.Data(); ok {
			switch {
			case strings.Contains(attr.Name, "test") || strings.Contains(attr.Name, "qa"):
				score += 0.1
			case strings.Contains(attr.Name, "id") || strings.Contains(attr.Name, "key"):
				score -= 0.2
			}
		}
	case core.StrategyAriaLabel:
		score = 0.75
	case core.StrategyRole:
		score = 0.7
	case core.StrategyClass:
		score = 0.6
		if !strings.Contains(v, " ") {
			score += 0.1
		}
		if utilityClass.MatchString(v) {
			score -= 0.2
		}
	case core.StrategyCSS:
		score = 0.5
		if strings.Count(v, ">") > 2 {
			score -= 0.2
		}
		if strings.Contains(v, ":nth-child") {
			score -= 0.3
		}
	case core.StrategyXPath:
		score = 0.4
		if xpathPosition.MatchString(v) {
			score -= 0.3
		}
		if strings.Count(v, "/") > 4 {
			score -= 0.2
		}
	case core.StrategyText:
		score = 0.3
		if utf8.RuneCountInString(v) < 10 && !anyDigit.MatchString(v) {
			score += 0.2
		}
	default:
		score = NeutralScore
	}

	return clamp(score), nil
}

// Readability rates how easily a person recognises the locator
func Readability(c core.LocatorCandidate) (float64, error) {
	v := c.RawValue.String()
	var score float64

	switch c.Type {
	case core.StrategyID:
		score = 0.9
		if plainID.MatchString(v) {
			score += 0.1
		}
	case core.StrategyName:
		score = 0.85
	case core.StrategyAriaLabel:
		score = 0.8
	case core.StrategyData:
		score = 0.75
		if attr, ok := c.RawValue.Data(); ok && strings.Contains(attr.Name, "test") {
			score += 0.15
		}
	case core.StrategyText:
		score = 0.7
		if utf8.RuneCountInString(v) > 30 {
			score -= 0.2
		}
	case core.StrategyClass:
		score = 0.6
		if utf8.RuneCountInString(v) > 20 {
			score -= 0.1
		}
	case core.StrategyRole:
		score = 0.65
	case core.StrategyCSS:
		score = 0.4
		if utf8.RuneCountInString(c.FormattedSelector) > 50 {
			score -= 0.1
		}
	case core.StrategyXPath:
		score = 0.3
		if utf8.RuneCountInString(c.FormattedSelector) > 100 {
			score -= 0.2
		}
	default:
		score = NeutralScore
	}

	return clamp(score), nil
}

// Performance rates the relative lookup cost of the locator
func Performance(c core.LocatorCandidate) (float64, error) {
	selector := c.FormattedSelector
	var score float64

	switch c.Type {
	case core.StrategyID:
		score = 1.0
	case core.StrategyName:
		score = 0.9
	case core.StrategyClass:
		score = 0.8
	case core.StrategyData:
		score = 0.75
	case core.StrategyAriaLabel, core.StrategyRole:
		score = 0.7
	case core.StrategyCSS:
		score = 0.6
		if len(whitespaceRuns.FindAllStringIndex(selector, -1)) > 2 {
			score -= 0.2
		}
		if strings.Contains(selector, "*") {
			score -= 0.3
		}
	case core.StrategyXPath:
		score = 0.4
		if strings.Contains(selector, "//") {
			score -= 0.1
		}
		if strings.Count(selector, "[") > 2 {
			score -= 0.1
		}
	case core.StrategyText:
		score = 0.3
	default:
		score = NeutralScore
	}

	return clamp(score), nil
}

// Accessibility rates how closely the locator follows what assistive technology sees,
// plus a bonus for accessibility attributes on the element itself
func Accessibility(c core.LocatorCandidate, el *html.Node, doc *dom.Document) (float64, error) {
	var score float64

	switch c.Type {
	case core.StrategyAriaLabel:
		score = 1.0
	case core.StrategyRole:
		score = 0.9
	case core.StrategyID:
		score = 0.6
		if doc != nil && hasLabelFor(doc, c.RawValue.String()) {
			score = 0.8
		}
	case core.StrategyName:
		score = 0.7
	case core.StrategyText:
		score = 0.8
	case core.StrategyData:
		score = 0.3
	case core.StrategyClass:
		score = 0.4
	case core.StrategyCSS, core.StrategyXPath:
		score = 0.2
	default:
		score = NeutralScore
	}

	if el != nil {
		if dom.AttrValue(el, "aria-label") != "" {
			score += 0.1
		}
		if dom.AttrValue(el, "aria-describedby") != "" {
			score += 0.05
		}
		if dom.AttrValue(el, "role") != "" {
			score += 0.1
		}
	}

	return clamp(score), nil
}

func hasLabelFor(doc *dom.Document, id string) bool {
	return doc.CountWhere(func(n *html.Node) bool {
		return n.Data == "label" && dom.AttrValue(n, "for") == id
	}) > 0
}
