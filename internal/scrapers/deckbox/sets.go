package deckbox

import (
	"fmt"

	"deckbox-api/pkg/htmlutil"
	"deckbox-api/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

const setsSelector = "#section_mtg > .submenu_entry a"

// ExtractSets lists the user's sets in page order. The first three entries
// are always the inventory, tradelist and wishlist whatever their labels say.
func ExtractSets(doc *goquery.Document) ([]SetReference, error) {
	sets := []SetReference{}
	var err error
	doc.Find(setsSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var set SetReference
		set, err = extractSet(doc, i, s)
		if err != nil {
			return false
		}
		sets = append(sets, set)
		return true
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func extractSet(doc *goquery.Document, i int, s *goquery.Selection) (SetReference, error) {
	anchors := htmlutil.GetAnchors(doc.Url, s)
	if len(anchors) == 0 || anchors[0].LastSegment() == "" {
		return SetReference{}, &ExtractionError{
			Field: "set_id",
			Err:   fmt.Errorf("entry %d has no usable link", i),
		}
	}

	name := anchors[0].Name
	if i < len(reservedSetNames) {
		name = reservedSetNames[i]
	}
	return SetReference{ID: anchors[0].LastSegment(), Name: name}, nil
}

// FindSet returns the first set whose id equals idOrName or whose name
// matches it ignoring case and whitespace.
func FindSet(sets []SetReference, idOrName string) (SetReference, bool) {
	for _, set := range sets {
		if set.ID == idOrName || textutil.MatchName(set.Name, idOrName) {
			return set, true
		}
	}
	return SetReference{}, false
}
