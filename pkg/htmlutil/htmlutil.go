package htmlutil

import (
	"bytes"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text nodes under node, script contents
// included.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText strips non-printable characters and collapses whitespace runs.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Text is CleanText applied to the text of a selection.
func Text(sel *goquery.Selection) string {
	return CleanText(sel.Text())
}

// Attr returns the trimmed attribute value of the first node in the selection
// and whether the attribute is present at all.
func Attr(sel *goquery.Selection, name string) (string, bool) {
	value, ok := sel.Attr(name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// FirstAttr returns the first non-empty attribute value among names.
func FirstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		value, ok := Attr(sel, name)
		if ok && value != "" {
			return value
		}
	}
	return ""
}

type Anchor struct {
	Name string
	Url  *url.URL
}

// LastSegment returns the unescaped last non-empty path segment of the anchor
// url, "/users/john_doe/" gives "john_doe".
func (a Anchor) LastSegment() string {
	if a.Url == nil {
		return ""
	}
	trimmed := strings.TrimRight(a.Url.Path, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

// GetAnchors resolves the href of every node in sel against baseUrl, nodes
// without a parsable href are skipped.
func GetAnchors(baseUrl *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	sel.Each(func(_ int, s *goquery.Selection) {
		href, ok := Attr(s, "href")
		if !ok {
			return
		}
		link, err := url.Parse(href)
		if err != nil {
			return
		}
		if baseUrl != nil {
			link = baseUrl.ResolveReference(link)
		}
		anchors = append(anchors, Anchor{
			Name: Text(s),
			Url:  link,
		})
	})
	return anchors
}
