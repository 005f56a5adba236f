package deckbox

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractSets(t *testing.T) {
	sets, err := ExtractSets(parseDoc(t, "https://deckbox.org/users/john_doe", profilePage))
	require.NoError(t, err)

	expected := []SetReference{
		{ID: "100", Name: SetInventory},
		{ID: "101", Name: SetTradelist},
		{ID: "102", Name: SetWishlist},
		{ID: "200", Name: "Modern Burn"},
		{ID: "201", Name: "Binder"},
	}
	if diff := cmp.Diff(expected, sets); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestExtractSetsMissingHref(t *testing.T) {
	page := `<div id="section_mtg">
		<div class="submenu_entry"><a href="/sets/1">Inventory</a></div>
		<div class="submenu_entry"><a>Broken</a></div>
	</div>`
	_, err := ExtractSets(parseDoc(t, "", page))
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	require.Equal(t, "set_id", extractErr.Field)
}

func TestFindSet(t *testing.T) {
	sets := []SetReference{
		{ID: "100", Name: SetInventory},
		{ID: "101", Name: SetTradelist},
		{ID: "200", Name: "Modern Burn"},
		{ID: "300", Name: "Modern Burn"},
	}

	testCases := []struct {
		query    string
		expected SetReference
		found    bool
	}{
		{"101", sets[1], true},
		{"inventory", sets[0], true},
		{"modernburn", sets[2], true},
		{"MODERN BURN", sets[2], true},
		{"300", sets[3], true},
		{"legacy", SetReference{}, false},
	}
	for _, test := range testCases {
		t.Run(test.query, func(t *testing.T) {
			set, ok := FindSet(sets, test.query)
			require.Equal(t, test.found, ok)
			require.Equal(t, test.expected, set)
		})
	}
}
