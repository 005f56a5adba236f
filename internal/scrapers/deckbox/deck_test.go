package deckbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractDeck(t *testing.T) {
	deck, err := ExtractDeck(parseDoc(t, "", deckPage))
	require.NoError(t, err)

	expected := DeckResult{
		Title: "Modern Burn",
		Mainboard: Board{
			Cards: []DeckCard{
				{Count: 4, Name: "Lightning Bolt"},
				{Count: 4, Name: "Goblin Guide"},
			},
			Total:    8,
			Distinct: 2,
		},
		Sideboard: Board{
			Cards:    []DeckCard{{Count: 2, Name: "Smash to Smithereens"}},
			Total:    2,
			Distinct: 1,
		},
	}
	if diff := cmp.Diff(expected, deck); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	require.LessOrEqual(t, deck.Mainboard.Distinct, deck.Mainboard.Total)
}

func TestExtractEmptyDeck(t *testing.T) {
	deck, err := ExtractDeck(parseDoc(t, "", emptyDeckPage))
	require.NoError(t, err)

	expected := DeckResult{
		Title:     "Empty deck",
		Mainboard: Board{Cards: []DeckCard{}},
		Sideboard: Board{Cards: []DeckCard{}},
	}
	if diff := cmp.Diff(expected, deck); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDeckTitleFallback(t *testing.T) {
	deck, err := ExtractDeck(parseDoc(t, "", `<h1>Pauper Elves</h1><table class="deck_table" data-role="main"></table>`))
	require.NoError(t, err)
	require.Equal(t, "Pauper Elves", deck.Title)
}
