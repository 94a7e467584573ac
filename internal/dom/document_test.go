package dom

import (
	"strings"
	"testing"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="description" content="Sign in page">
  <title>Sign in</title>
</head>
<body>
  <nav><ul><li><a href="/">Home</a></li><li><a href="/about">About</a></li></ul></nav>
  <form id="login" name="login-form" action="/session" method="post">
    <input id="email" name="email" type="email" required placeholder="you@example.com">
    <input id="password" name="password" type="password">
    <button id="submit-btn" class="btn btn-primary" aria-label="Sign in">Login</button>
  </form>
  <img src="logo.png" alt="Logo">
  <div shadowrootmode="open" id="widget" class="card"></div>
</body>
</html>`

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	require.NoError(t, err)
	return doc
}

func TestFromNode_RejectsMalformedRoots(t *testing.T) {
	t.Parallel()

	_, err := FromNode(nil)
	require.Error(t, err)
	assert.True(t, core.IsDocumentError(err))

	_, err = FromNode(&html.Node{Type: html.TextNode, Data: "loose text"})
	require.Error(t, err)
	assert.True(t, core.IsDocumentError(err))
}

func TestDocument_Counts(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, samplePage)

	assert.Equal(t, 1, doc.CountAttr("id", "email"))
	assert.Equal(t, 0, doc.CountAttr("id", "missing"))
	assert.Equal(t, 1, doc.CountClass("btn-primary"))
	// the form's own trimmed text is also "Login"
	assert.Equal(t, 2, doc.CountText("Login"))

	n, err := doc.CountCSS("form > input")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = doc.CountCSS("input[")
	assert.Error(t, err)

	n, err = doc.CountXPath(`//*[@id="submit-btn"]`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = doc.CountXPath("//*[")
	assert.Error(t, err)
}

func TestNodeHelpers(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, `<ul><li class="a b">one</li><li>two</li><li class="a b">three</li><span>x</span></ul>`)

	items := doc.Find("li").Nodes
	require.Len(t, items, 3)

	assert.Equal(t, []string{"a", "b"}, Classes(items[0]))
	assert.Equal(t, "li", Tag(items[0]))
	assert.Equal(t, 3, ElementIndex(items[2]))
	assert.True(t, HasSameTagSiblings(items[1]))
	assert.False(t, HasSameTagSiblings(doc.Find("span").Get(0)))

	sameClass := func(n *html.Node) bool { return n.Data == "li" && AttrValue(n, "class") == "a b" }
	assert.Equal(t, 2, PositionAmong(items[2], sameClass))
	assert.Equal(t, "ul", Tag(ParentElement(items[0])))
}

func TestText_TrimsAndTruncates(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, "<p>\n   Hello <b>world</b>  \n</p>")

	p := doc.Find("p").Get(0)
	assert.Equal(t, "Hello world", Text(p))
	assert.Equal(t, "Hello", Truncate(Text(p), 5))
	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
}

func TestAttributes_KeepsFirstDuplicate(t *testing.T) {
	t.Parallel()
	n := &html.Node{Type: html.ElementNode, Data: "a", Attr: []html.Attribute{
		{Key: "id", Val: "first"},
		{Key: "id", Val: "second"},
	}}

	assert.Equal(t, map[string]string{"id": "first"}, Attributes(n))
}

func TestInspect(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, samplePage)

	summary := doc.Inspect()

	assert.Equal(t, "Sign in", summary.Metadata.Title)
	assert.Equal(t, "Sign in page", summary.Metadata.Description)
	assert.Equal(t, "utf-8", summary.Metadata.Charset)
	assert.Equal(t, "en", summary.Metadata.Language)
	assert.Equal(t, 1, summary.Metadata.Forms)
	assert.Equal(t, 2, summary.Metadata.Inputs)
	assert.Equal(t, 1, summary.Metadata.Buttons)
	assert.Equal(t, 2, summary.Metadata.Links)
	assert.Equal(t, 1, summary.Metadata.Images)

	require.Len(t, summary.Forms, 1)
	form := summary.Forms[0]
	assert.Equal(t, "login", form.ID)
	assert.Equal(t, "/session", form.Action)
	require.Len(t, form.Fields, 3)
	assert.Equal(t, "input", form.Fields[0].Type)
	assert.True(t, form.Fields[0].Required)
	assert.Equal(t, "you@example.com", form.Fields[0].Placeholder)
	assert.Equal(t, "button", form.Fields[2].Type)

	require.Len(t, summary.Accessibility, 2)
	assert.Equal(t, "Sign in", summary.Accessibility[0].AriaLabel)
	assert.Equal(t, "Logo", summary.Accessibility[1].Alt)

	require.Len(t, summary.ShadowHosts, 1)
	assert.Equal(t, "widget", summary.ShadowHosts[0].ID)
}

func TestParse_Reader(t *testing.T) {
	t.Parallel()
	doc, err := Parse(strings.NewReader("<button>ok</button>"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("button").Length())
	assert.NotNil(t, doc.Root())
	assert.Equal(t, 1, doc.Select(doc.Find("button").Get(0)).Length())
}
