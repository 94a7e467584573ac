package locator

import (
	"io"
	"testing"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/heuristics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const storePage = `<!DOCTYPE html>
<html>
<body>
  <nav role="navigation">
    <ul>
      <li><a href="/">Home</a></li>
      <li><a href="/home">Home</a></li>
    </ul>
  </nav>
  <main id="content" class="page">
    <section class="hero">
      <form id="login" name="login-form" action="/session">
        <input id="email" name="email" type="email" class="field" aria-describedby="email-help">
        <input id="12345" name="password" type="password" class="field">
        <button id="submit-btn" class="btn btn-primary">Login</button>
        <button data-testid="login-submit" class="btn btn-primary">Sign in</button>
      </form>
    </section>
    <div class="btn btn-primary" onclick="buy()">Buy</div>
    <div class="btn btn-primary" onclick="buy()">Buy now</div>
    <span role="checkbox" aria-label="Remember me" aria-checked="false"></span>
    <p>Not interactive</p>
  </main>
</body>
</html>`

func newEngine() *Engine {
	logger := zerolog.New(io.Discard)
	return New(&logger)
}

func generate(t *testing.T, markup string, opts core.Options) []core.LocatorResult {
	t.Helper()
	results, err := newEngine().Generate(mustParse(t, markup), opts)
	require.NoError(t, err)
	return results
}

func strategy(r core.LocatorResult, st core.StrategyType) (core.ScoredStrategy, bool) {
	for _, s := range r.Strategies {
		if s.Type == st {
			return s, true
		}
	}
	return core.ScoredStrategy{}, false
}

func resultWithID(t *testing.T, results []core.LocatorResult, id string) core.LocatorResult {
	t.Helper()
	for _, r := range results {
		if r.Element.Attributes["id"] == id {
			return r
		}
	}
	t.Fatalf("no result for element #%s", id)
	return core.LocatorResult{}
}

func TestGenerate_DetectsInteractiveElementsInOrder(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())

	var tags []string
	for _, r := range results {
		tags = append(tags, r.Element.Tag)
	}
	assert.Equal(t, []string{"a", "a", "input", "input", "button", "button", "div", "div", "span"}, tags)
}

func TestGenerate_UniqueIDRanksFirst(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())
	r := resultWithID(t, results, "submit-btn")

	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, core.StrategyID, best.Type)
	assert.Equal(t, 1, best.Rank)
	assert.Equal(t, 1.0, best.Scores.Uniqueness)
	assert.InDelta(t, 0.9, best.Scores.Stability, 1e-9)
	assert.Equal(t, `By.id("submit-btn")`, best.FormattedSelector)
	assert.Equal(t, "Login", r.Element.Text)
}

func TestGenerate_NoClassStrategyWhenNoClassIsUnique(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())

	var divs []core.LocatorResult
	for _, r := range results {
		if r.Element.Tag == "div" {
			divs = append(divs, r)
		}
	}
	require.Len(t, divs, 2)

	for _, r := range divs {
		_, hasClass := strategy(r, core.StrategyClass)
		assert.False(t, hasClass)
		_, hasCSS := strategy(r, core.StrategyCSS)
		assert.True(t, hasCSS)
		_, hasXPath := strategy(r, core.StrategyXPath)
		assert.True(t, hasXPath)
	}
}

func TestGenerate_TestDataAttributeIsStable(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())

	var found bool
	for _, r := range results {
		if r.Element.Attributes["data-testid"] != "login-submit" {
			continue
		}
		s, ok := strategy(r, core.StrategyData)
		require.True(t, ok)
		assert.GreaterOrEqual(t, s.Scores.Stability, 0.8)
		assert.Equal(t, core.DataValue("data-testid", "login-submit"), s.RawValue)
		found = true
	}
	assert.True(t, found)
}

func TestGenerate_NumericIDIsLessStable(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())

	numeric, ok := strategy(resultWithID(t, results, "12345"), core.StrategyID)
	require.True(t, ok)
	semantic, ok := strategy(resultWithID(t, results, "email"), core.StrategyID)
	require.True(t, ok)

	assert.LessOrEqual(t, numeric.Scores.Stability, semantic.Scores.Stability-0.3+1e-9)
}

func TestGenerate_RepeatedLinkTextIsNotUnique(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())

	links := results[:2]
	for _, r := range links {
		require.Equal(t, "a", r.Element.Tag)
		s, ok := strategy(r, core.StrategyText)
		require.True(t, ok)
		assert.LessOrEqual(t, s.Scores.Uniqueness, 0.6)
		assert.True(t, r.Context.Navigation)
		assert.Nil(t, r.Context.Form)
		assert.Equal(t, &core.NodeRef{Tag: "li"}, r.Context.Parent)
	}
}

func TestGenerate_Context(t *testing.T) {
	t.Parallel()
	results := generate(t, storePage, core.DefaultOptions())
	r := resultWithID(t, results, "email")

	assert.Equal(t, &core.FormRef{ID: "login", Name: "login-form", Action: "/session"}, r.Context.Form)
	assert.Equal(t, &core.NodeRef{Tag: "section", Class: "hero"}, r.Context.Section)
	assert.Equal(t, &core.NodeRef{Tag: "form", ID: "login"}, r.Context.Parent)
	assert.False(t, r.Context.Navigation)

	span := results[len(results)-1]
	assert.Equal(t, &core.NodeRef{Tag: "main", ID: "content", Class: "page"}, span.Context.Section)
	assert.Nil(t, span.Context.Form)
}

func TestGenerate_FormInsideNavigation(t *testing.T) {
	t.Parallel()
	markup := `<nav><form id="search" action="/s"><input name="q"></form></nav>`
	results := generate(t, markup, core.DefaultOptions())

	require.Len(t, results, 1)
	ctx := results[0].Context
	require.NotNil(t, ctx.Form)
	assert.Equal(t, "search", ctx.Form.ID)
	assert.True(t, ctx.Navigation)
	assert.Nil(t, ctx.Section)
}

func TestGenerate_Invariants(t *testing.T) {
	t.Parallel()
	scorer := heuristics.NewScorer(nil)

	for _, framework := range core.Frameworks {
		results := generate(t, storePage, core.Options{Framework: framework, IncludeAccessibility: true})
		require.NotEmpty(t, results)

		for _, r := range results {
			require.NotEmpty(t, r.Strategies)
			assert.LessOrEqual(t, len(r.Strategies), heuristics.MaxStrategies)

			for i, s := range r.Strategies {
				assert.Equal(t, i+1, s.Rank)
				if i > 0 {
					assert.GreaterOrEqual(t, r.Strategies[i-1].TotalScore, s.TotalScore)
				}
				assert.Equal(t, scorer.Total(s.Scores), s.TotalScore)
				assert.GreaterOrEqual(t, s.TotalScore, 0.0)
				assert.LessOrEqual(t, s.TotalScore, 1.0)
				for _, sub := range []float64{s.Scores.Uniqueness, s.Scores.Stability, s.Scores.Readability, s.Scores.Performance, s.Scores.Accessibility} {
					assert.GreaterOrEqual(t, sub, 0.0)
					assert.LessOrEqual(t, sub, 1.0)
				}
				if s.Type == core.StrategyID {
					assert.Equal(t, 1.0, s.Scores.Uniqueness, "ids in the page are unique")
				}
			}
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, storePage)
	engine := newEngine()

	first, err := engine.Generate(doc, core.DefaultOptions())
	require.NoError(t, err)
	second, err := engine.Generate(doc, core.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_FrameworkFormatting(t *testing.T) {
	t.Parallel()
	markup := `<button id="submit-btn">Login</button>`

	tests := []struct {
		framework core.Framework
		want      string
	}{
		{core.FrameworkSelenium, `By.id("submit-btn")`},
		{core.FrameworkPlaywright, "#submit-btn"},
		{core.FrameworkCypress, `cy.get('#submit-btn')`},
		{"", `By.id("submit-btn")`},
	}

	for _, tt := range tests {
		results := generate(t, markup, core.Options{Framework: tt.framework})
		require.Len(t, results, 1)
		best, ok := results[0].Best()
		require.True(t, ok)
		assert.Equal(t, tt.want, best.FormattedSelector, "framework %q", tt.framework)
	}
}

func TestGenerate_TruncatesStrategies(t *testing.T) {
	t.Parallel()
	markup := `<button id="go" name="go" class="solo" data-a="1" data-b="2" data-c="3" aria-label="Go" role="button">Go</button>`
	results := generate(t, markup, core.DefaultOptions())

	require.Len(t, results, 1)
	assert.Len(t, results[0].Strategies, heuristics.MaxStrategies)
}

type explodingScorer struct{}

func (explodingScorer) Score(core.LocatorCandidate, *html.Node, *dom.Document) core.ScoredStrategy {
	panic("scoring failed")
}

func TestGenerate_DegradedRanking(t *testing.T) {
	t.Parallel()
	engine := NewWithDeps(nil, nil, explodingScorer{})
	doc := mustParse(t, `<button id="go" name="go" class="solo" data-a="1" data-b="2">Go</button>`)

	results, err := engine.Generate(doc, core.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)

	strategies := results[0].Strategies
	require.Len(t, strategies, heuristics.MaxStrategies)
	want := []core.StrategyType{core.StrategyID, core.StrategyName, core.StrategyClass, core.StrategyData, core.StrategyData}
	for i, s := range strategies {
		assert.Equal(t, want[i], s.Type)
		assert.Equal(t, i+1, s.Rank)
		assert.Equal(t, heuristics.NeutralScore, s.TotalScore)
		assert.Equal(t, heuristics.NeutralScore, s.Scores.Uniqueness)
	}
}

func TestGenerate_NoInteractiveElements(t *testing.T) {
	t.Parallel()
	results := generate(t, `<p>Just text</p>`, core.DefaultOptions())

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGenerate_RejectsMissingDocument(t *testing.T) {
	t.Parallel()

	_, err := newEngine().Generate(nil, core.DefaultOptions())
	require.Error(t, err)
	assert.True(t, core.IsDocumentError(err))

	_, err = GenerateLocators(nil, core.DefaultOptions())
	assert.True(t, core.IsDocumentError(err))
}

func TestGenerateLocators(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, storePage)

	results, err := GenerateLocators(doc, core.DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, results, 9)
}

func TestDetectInteractive(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, `
<div>plain</div>
<div onclick="x()" data-testid="a" role="button">all predicates</div>
<span data-action="open">action</span>
<div ng-click="go()">angular</div>
<div data-ng-click="go()">angular data</div>
<select><option>1</option></select>
<textarea></textarea>
<div role="combobox"></div>
<div role="presentation"></div>`)

	nodes := DetectInteractive(doc)

	var tags []string
	for _, n := range nodes {
		tags = append(tags, n.Data+":"+dom.Text(n))
	}
	assert.Equal(t, []string{
		"div:all predicates",
		"span:action",
		"div:angular",
		"div:angular data",
		"select:1",
		"textarea:",
		"div:",
	}, tags)
}
