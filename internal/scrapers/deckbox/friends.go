package deckbox

import (
	"fmt"
	"time"

	"deckbox-api/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ExtractFriends returns the friend summaries in document order, a page with
// no summaries gives an empty list.
func ExtractFriends(doc *goquery.Document, loc *time.Location) ([]Friend, error) {
	friends := []Friend{}

	var err error
	doc.Find("div.user_summary").EachWithBreak(func(i int, summary *goquery.Selection) bool {
		var friend Friend
		friend, err = extractFriend(doc, summary, loc)
		if err != nil {
			err = fmt.Errorf("friend %d: %w", i, err)
			return false
		}
		friends = append(friends, friend)
		return true
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func extractFriend(doc *goquery.Document, summary *goquery.Selection, loc *time.Location) (Friend, error) {
	anchors := htmlutil.GetAnchors(doc.Url, summary.Find("a.user_link").First())
	if len(anchors) == 0 || anchors[0].LastSegment() == "" {
		return Friend{}, &ExtractionError{Field: "username"}
	}

	lastSeen, err := parseLastSeen(rawText(summary.Find(".last_seen").First()), loc)
	if err != nil {
		return Friend{}, err
	}

	src, _ := htmlutil.Attr(summary.Find("img").First(), "src")
	return Friend{
		Username:       anchors[0].LastSegment(),
		Image:          resolveLink(doc, src),
		LastSeenOnline: lastSeen,
		Location:       htmlutil.Text(summary.Find(".location").First()),
	}, nil
}
