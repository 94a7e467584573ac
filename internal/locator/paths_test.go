package locator

import (
	"strings"
	"testing"

	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	return doc
}

func TestCSSPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		selector string
		want     string
	}{
		{
			name:     "element id",
			markup:   `<button id="save">Save</button>`,
			selector: "button",
			want:     "#save",
		},
		{
			name:     "ancestor id stops the walk",
			markup:   `<div id="root"><span><a>X</a></span></div>`,
			selector: "a",
			want:     "#root > span > a",
		},
		{
			name:     "same tag siblings add nth-child",
			markup:   `<ul><li><a>One</a></li><li><a>Two</a></li></ul>`,
			selector: "li:nth-child(2) a",
			want:     "body > ul > li:nth-child(2) > a",
		},
		{
			name:     "unique class preferred",
			markup:   `<p class="x"></p><div><button class="x only">Go</button></div>`,
			selector: "button",
			want:     "body > div > button.only",
		},
		{
			name:     "first class when none unique",
			markup:   `<a class="btn primary">A</a><span><a class="btn primary">B</a></span>`,
			selector: "span a",
			want:     "body > span > a.btn",
		},
		{
			name:     "numeric id is escaped",
			markup:   `<button id="12345">Go</button>`,
			selector: "button",
			want:     `#\31 2345`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.markup)
			el := doc.Find(tt.selector).Get(0)

			got := cssPath(el, doc)
			assert.Equal(t, tt.want, got)

			n, err := doc.CountCSS(got)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1)
		})
	}
}

func TestCSSPath_DepthCap(t *testing.T) {
	t.Parallel()
	markup := strings.Repeat("<div>", 8) + "<a>deep</a>" + strings.Repeat("</div>", 8)
	doc := mustParse(t, markup)

	got := cssPath(doc.Find("a").Get(0), doc)

	assert.Equal(t, "div > div > div > div > a", got)
	assert.Equal(t, maxCSSDepth-1, strings.Count(got, " > "))
}

func TestXPathPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		selector string
		want     string
	}{
		{
			name:     "element id",
			markup:   `<input id="email">`,
			selector: "input",
			want:     `//*[@id="email"]`,
		},
		{
			name:     "anchored at ancestor id",
			markup:   `<div id="root"><span><a>X</a></span></div>`,
			selector: "a",
			want:     `//*[@id="root"]/span/a`,
		},
		{
			name:     "positional segment",
			markup:   `<ul><li><a>One</a></li><li><a>Two</a></li></ul>`,
			selector: "li:nth-child(2) a",
			want:     "//body/ul/li[2]/a",
		},
		{
			name:     "position counts siblings with the same class",
			markup:   `<ul><li class="x">a</li><li>b</li><li class="x"><a>c</a></li></ul>`,
			selector: "li:nth-child(3) a",
			want:     `//body/ul/li[@class="x"][2]/a`,
		},
		{
			name:     "quote in id",
			markup:   `<a id='say"hi'>x</a>`,
			selector: "a",
			want:     `//*[@id='say"hi']`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.markup)
			el := doc.Find(tt.selector).Get(0)

			got := xpathPath(el)
			assert.Equal(t, tt.want, got)

			n, err := doc.CountXPath(got)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestXPathPath_DepthCap(t *testing.T) {
	t.Parallel()
	markup := strings.Repeat("<div>", 12) + "<a>deep</a>" + strings.Repeat("</div>", 12)
	doc := mustParse(t, markup)

	got := xpathPath(doc.Find("a").Get(0))

	assert.Equal(t, "//"+strings.Repeat("div/", maxXPathDepth-1)+"a", got)
}

func TestCSSIdent(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"save":    "save",
		"btn_2-x": "btn_2-x",
		"1a":      `\31 a`,
		"-1":      `-\31 `,
		"-":       `\-`,
		"a.b":     `a\.b`,
		"a:b c":   `a\:b\ c`,
		"café":    "café",
	}

	for in, want := range tests {
		assert.Equal(t, want, cssIdent(in), in)
	}
}

func TestXPathLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"plain"`, xpathLiteral("plain"))
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `concat("it's ", '"', "x", '"')`, xpathLiteral(`it's "x"`))
}
