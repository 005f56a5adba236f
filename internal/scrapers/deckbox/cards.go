package deckbox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"deckbox-api/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	paginationRegex   = regexp.MustCompile(`(\d+)\D+(\d+)`)
	firstNumberRegex  = regexp.MustCompile(`\d+`)
	editionImageRegex = regexp.MustCompile(`([^/]+)_([A-Za-z])\.jpg`)
	typeLineSeparator = regexp.MustCompile(`\s*[\x{2013}\x{2014}]\s*`)
)

type pagination struct {
	page       int
	totalPages int
	total      int
	found      bool
}

func extractPagination(doc *goquery.Document) pagination {
	controls := doc.Find(".pagination_controls")
	match := paginationRegex.FindStringSubmatch(htmlutil.Text(controls.Find("span").First()))
	if match == nil {
		return pagination{page: 1, totalPages: 1}
	}

	p := pagination{found: true}
	p.page, _ = strconv.Atoi(match[1])
	p.totalPages, _ = strconv.Atoi(match[2])
	if total := firstNumberRegex.FindString(htmlutil.Text(controls.Find(".results_count").First())); total != "" {
		p.total, _ = strconv.Atoi(total)
	} else {
		p.total = -1
	}
	return p
}

func newPagedResult[T any](doc *goquery.Document, items []T) PagedResult[T] {
	p := extractPagination(doc)
	total := p.total
	switch {
	case !p.found, total < 0 && p.totalPages <= 1:
		total = len(items)
	case total < 0:
		total = UnknownTotal
	}
	return PagedResult[T]{
		Items:      items,
		Page:       p.page,
		TotalPages: p.totalPages,
		Total:      total,
	}
}

func parseCount(sel *goquery.Selection) int {
	count, err := strconv.Atoi(firstNumberRegex.FindString(htmlutil.Text(sel)))
	if err != nil {
		return 0
	}
	return count
}

// cardRows returns the rows that carry a card, header and filler rows have no
// id attribute.
func cardRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		id, ok := htmlutil.Attr(row, "id")
		return ok && id != ""
	})
}

func ExtractCollection(doc *goquery.Document) (CollectionPage, error) {
	cards := []CollectionCard{}
	var err error
	cardRows(doc.Find("table#set_cards_table_details")).EachWithBreak(func(i int, row *goquery.Selection) bool {
		var card CollectionCard
		card, err = extractCollectionCard(row)
		if err != nil {
			err = fmt.Errorf("collection row %d: %w", i, err)
			return false
		}
		cards = append(cards, card)
		return true
	})
	if err != nil {
		return CollectionPage{}, err
	}
	return newPagedResult(doc, cards), nil
}

func extractCollectionCard(row *goquery.Selection) (CollectionCard, error) {
	name := htmlutil.Text(row.Find("td.card_name a").First())
	if name == "" {
		return CollectionCard{}, &ExtractionError{Field: "card_name"}
	}

	card := CollectionCard{
		Name:       name,
		Count:      parseCount(row.Find("td.card_count").First()),
		Condition:  markerCodeName(row.Find("img.condition_icon").First()),
		Language:   markerCodeName(row.Find("img.lang_flag").First()),
		IsFoil:     row.Find("img.foil_icon").Length() > 0,
		IsPromo:    row.Find("img.promo_icon").Length() > 0,
		IsTextless: row.Find("img.textless_icon").Length() > 0,
		IsSigned:   row.Find("img.signed_icon").Length() > 0,
	}

	edition := row.Find("td.edition img").First()
	if edition.Length() > 0 {
		src, _ := htmlutil.Attr(edition, "src")
		code := ""
		if match := editionImageRegex.FindStringSubmatch(src); match != nil {
			code = match[1]
			// edition icons end in the single rarity letter, kept as is
			rarity := match[2]
			card.Rarity = &rarity
		}
		card.Edition = newCodeName(code, htmlutil.FirstAttr(edition, "data-title", "title", "alt"))
	}

	return card, nil
}

// markerCodeName reads an icon that carries its code in alt and its human
// name in title.
func markerCodeName(marker *goquery.Selection) CodeName {
	if marker.Length() == 0 {
		return CodeName{}
	}
	code, _ := htmlutil.Attr(marker, "alt")
	name, _ := htmlutil.Attr(marker, "title")
	return newCodeName(code, name)
}

func ExtractSearch(doc *goquery.Document) (SearchPage, error) {
	cards := []SearchCard{}
	var err error
	cardRows(doc.Find("table.set_cards")).EachWithBreak(func(i int, row *goquery.Selection) bool {
		name := htmlutil.Text(row.Find("td.card_name a").First())
		if name == "" {
			err = fmt.Errorf("card row %d: %w", i, &ExtractionError{Field: "card_name"})
			return false
		}
		types, subtypes := splitTypeLine(htmlutil.Text(row.Find("td.card_type").First()))
		cards = append(cards, SearchCard{
			Name:     name,
			Types:    types,
			Subtypes: subtypes,
			ManaCost: manaCost(row.Find("td.card_cost img")),
		})
		return true
	})
	if err != nil {
		return SearchPage{}, err
	}
	return newPagedResult(doc, cards), nil
}

// splitTypeLine turns "Legendary Creature — Elf Warrior" into its type and
// subtype words.
func splitTypeLine(line string) ([]string, []string) {
	parts := typeLineSeparator.Split(line, 2)
	types := strings.Fields(parts[0])
	subtypes := []string{}
	if len(parts) > 1 {
		subtypes = strings.Fields(parts[1])
	}
	return types, subtypes
}

// manaCost concatenates the alt text of the mana symbol icons.
func manaCost(symbols *goquery.Selection) string {
	var b strings.Builder
	symbols.Each(func(_ int, img *goquery.Selection) {
		alt, _ := htmlutil.Attr(img, "alt")
		b.WriteString(alt)
	})
	return b.String()
}
