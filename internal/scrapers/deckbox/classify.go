package deckbox

import "github.com/PuerkitoBio/goquery"

type PageType int

const (
	PageUnknown PageType = iota
	PageDeck
	PageCollection
	PageCardList
	PageCard
	PageFriends
	PageProfile
)

func (t PageType) String() string {
	switch t {
	case PageDeck:
		return "deck"
	case PageCollection:
		return "collection"
	case PageCardList:
		return "card_list"
	case PageCard:
		return "card"
	case PageFriends:
		return "friends"
	case PageProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// markers in precedence order, the first one present wins
var pageMarkers = []struct {
	selector string
	page     PageType
}{
	{"table.deck_table", PageDeck},
	{"table#set_cards_table_details", PageCollection},
	{"table.set_cards", PageCardList},
	{"table.card_details", PageCard},
	{"div.user_summary", PageFriends},
	{"#section_profile", PageProfile},
}

// Classify identifies the kind of page by its structural markers.
func Classify(doc *goquery.Document) PageType {
	for _, marker := range pageMarkers {
		if doc.Find(marker.selector).Length() > 0 {
			return marker.page
		}
	}
	return PageUnknown
}
