package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Canada - Montreal", CleanText("\n\t  Canada -   Montreal \n"))
	require.Equal(t, "", CleanText(" \u200b "))
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `<div>
		<a href="/sets/590740">  Inventory </a>
		<a>no href</a>
		<a href="https://deckbox.org/users/john_doe/">John</a>
	</div>`)

	base, err := url.Parse("https://deckbox.org/users/deckbox_api")
	require.NoError(t, err)

	anchors := GetAnchors(base, doc.Find("a"))
	require.Len(t, anchors, 2)
	require.Equal(t, "Inventory", anchors[0].Name)
	require.Equal(t, "https://deckbox.org/sets/590740", anchors[0].Url.String())
	require.Equal(t, "590740", anchors[0].LastSegment())
	require.Equal(t, "john_doe", anchors[1].LastSegment())
}

func TestAttrs(t *testing.T) {
	doc := parse(t, `<img class="x" title=" Magic 2010 " alt="">`)
	img := doc.Find("img")

	value, ok := Attr(img, "title")
	require.True(t, ok)
	require.Equal(t, "Magic 2010", value)

	_, ok = Attr(img, "data-title")
	require.False(t, ok)

	require.Equal(t, "Magic 2010", FirstAttr(img, "data-title", "alt", "title"))
}

func TestGetTextIncludesScripts(t *testing.T) {
	doc := parse(t, `<table><tr><td>a</td></tr><script>var n = "2 cards, 1 distinct";</script></table>`)
	text := GetText(doc.Find("table").Get(0))
	require.Contains(t, text, "2 cards, 1 distinct")
}
