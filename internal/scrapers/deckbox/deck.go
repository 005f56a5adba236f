package deckbox

import (
	"fmt"
	"regexp"
	"strconv"

	"deckbox-api/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var boardCountsRegex = regexp.MustCompile(`(\d+) cards?, (\d+) distinct`)

const (
	boardMain      = "main"
	boardSideboard = "sideboard"
)

func ExtractDeck(doc *goquery.Document) (DeckResult, error) {
	title := htmlutil.Text(doc.Find("#deck_title").First())
	if title == "" {
		title = htmlutil.Text(doc.Find("h1").First())
	}

	deck := DeckResult{
		Title:     title,
		Mainboard: Board{Cards: []DeckCard{}},
		Sideboard: Board{Cards: []DeckCard{}},
	}

	var err error
	doc.Find("table.deck_table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		role, _ := htmlutil.Attr(table, "data-role")
		var board *Board
		switch role {
		case boardMain:
			board = &deck.Mainboard
		case boardSideboard:
			board = &deck.Sideboard
		default:
			return true
		}
		err = extractBoard(table, board)
		if err != nil {
			err = fmt.Errorf("%s board: %w", role, err)
			return false
		}
		return true
	})
	if err != nil {
		return DeckResult{}, err
	}
	return deck, nil
}

// extractBoard appends the table's cards to board. The counts are taken from
// the summary upstream renders for the board and stay zero without one.
func extractBoard(table *goquery.Selection, board *Board) error {
	var err error
	cardRows(table).EachWithBreak(func(i int, row *goquery.Selection) bool {
		name := htmlutil.Text(row.Find("td.card_name a").First())
		if name == "" {
			err = fmt.Errorf("row %d: %w", i, &ExtractionError{Field: "card_name"})
			return false
		}
		board.Cards = append(board.Cards, DeckCard{
			Count: parseCount(row.Find("td.card_count").First()),
			Name:  name,
		})
		return true
	})
	if err != nil {
		return err
	}

	if match := boardCountsRegex.FindStringSubmatch(rawText(table)); match != nil {
		board.Total, _ = strconv.Atoi(match[1])
		board.Distinct, _ = strconv.Atoi(match[2])
	}
	return nil
}
