package deckbox

import (
	"fmt"
	"strings"

	"deckbox-api/pkg/htmlutil"
	"deckbox-api/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

// fixed rows at the top of the card details table
const (
	cardRowName = iota
	cardRowEditions
	cardRowMana
	cardRowType
	cardRowRules
	cardFixedRows
)

type propertyKind int

const (
	propertyRaw propertyKind = iota
	propertyPowerToughness
	propertyRulings
	propertyLegal
	propertyRestricted
)

const (
	legalMarker      = "legal in "
	restrictedMarker = "restricted in "
)

// afterMarker returns the text following the first case-insensitive match of
// an ascii marker.
func afterMarker(text, marker string) (string, bool) {
	for i := 0; i+len(marker) <= len(text); i++ {
		if strings.EqualFold(text[i:i+len(marker)], marker) {
			return text[i+len(marker):], true
		}
	}
	return "", false
}

func classifyProperty(label, rowText string) propertyKind {
	if _, ok := afterMarker(rowText, legalMarker); ok {
		return propertyLegal
	}
	if _, ok := afterMarker(rowText, restrictedMarker); ok {
		return propertyRestricted
	}
	switch strings.ToLower(label) {
	case "p / t", "p/t":
		return propertyPowerToughness
	case "rulings":
		return propertyRulings
	}
	return propertyRaw
}

type cardRow struct {
	row   *goquery.Selection
	label string
	value *goquery.Selection
}

func newCardRow(row *goquery.Selection) cardRow {
	cells := row.Find("th, td")
	r := cardRow{row: row, value: cells.Last()}
	if cells.Length() > 1 {
		r.label = strings.TrimSuffix(htmlutil.Text(cells.First()), ":")
	}
	return r
}

func ExtractCard(doc *goquery.Document) (CardDetail, error) {
	rows := doc.Find("table.card_details tr")
	if rows.Length() == 0 {
		return CardDetail{}, &ExtractionError{Field: "card_details"}
	}

	row := func(i int) cardRow {
		return newCardRow(rows.Eq(i))
	}

	card := CardDetail{
		Name:     htmlutil.Text(row(cardRowName).value),
		Editions: []Edition{},
		Types:    []string{},
		Subtypes: []string{},
		Legality: Legality{Legal: []string{}, Restricted: []string{}},
	}
	if card.Name == "" {
		return CardDetail{}, &ExtractionError{Field: "card_name"}
	}

	src, _ := htmlutil.Attr(doc.Find("img.card_image").First(), "src")
	card.Image = resolveLink(doc, src)

	row(cardRowEditions).value.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, _ := htmlutil.Attr(img, "src")
		edition := Edition{Name: htmlutil.FirstAttr(img, "data-title", "title", "alt")}
		if match := editionImageRegex.FindStringSubmatch(src); match != nil {
			edition.Code = match[1]
		}
		card.Editions = append(card.Editions, edition)
	})

	card.ManaCost = manaCost(row(cardRowMana).value.Find("img"))
	if rows.Length() > cardRowType {
		card.Types, card.Subtypes = splitTypeLine(htmlutil.Text(row(cardRowType).value))
	}
	card.RulesText = htmlutil.Text(row(cardRowRules).value)

	for i := cardFixedRows; i < rows.Length(); i++ {
		addProperty(doc, &card, i, row(i))
	}
	return card, nil
}

func addProperty(doc *goquery.Document, card *CardDetail, index int, r cardRow) {
	rowText := htmlutil.Text(r.row)
	value := htmlutil.Text(r.value)

	switch classifyProperty(r.label, rowText) {
	case propertyLegal:
		formats, _ := afterMarker(rowText, legalMarker)
		card.Legality.Legal = append(card.Legality.Legal, splitFormats(formats)...)
	case propertyRestricted:
		formats, _ := afterMarker(rowText, restrictedMarker)
		card.Legality.Restricted = append(card.Legality.Restricted, splitFormats(formats)...)
	case propertyPowerToughness:
		power, toughness, _ := strings.Cut(value, "/")
		card.PowerToughness = &PowerToughness{
			Power:     strings.TrimSpace(power),
			Toughness: strings.TrimSpace(toughness),
		}
	case propertyRulings:
		anchors := htmlutil.GetAnchors(doc.Url, r.value.Find("a").First())
		if len(anchors) > 0 {
			card.RulingsURL = anchors[0].Url.String()
		}
	default:
		if value == "" {
			return
		}
		key := textutil.NormalizeKey(r.label)
		if key == "" {
			key = fmt.Sprintf("row_%d", index)
		}
		if card.Extra == nil {
			card.Extra = map[string]string{}
		}
		card.Extra[key] = value
	}
}

func splitFormats(list string) []string {
	formats := []string{}
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
