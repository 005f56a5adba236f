package deckbox

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestExtractCollection(t *testing.T) {
	page, err := ExtractCollection(parseDoc(t, "", collectionPage))
	require.NoError(t, err)

	expected := CollectionPage{
		Page:       2,
		TotalPages: 7,
		Total:      340,
		Items: []CollectionCard{
			{
				Name:      "Lightning Bolt",
				Count:     4,
				Edition:   CodeName{Code: strPtr("m10"), Name: strPtr("Magic 2010")},
				Rarity:    strPtr("c"),
				Condition: CodeName{Code: strPtr("NM"), Name: strPtr("Near Mint")},
				Language:  CodeName{Code: strPtr("en"), Name: strPtr("English")},
				IsFoil:    true,
				IsSigned:  true,
			},
			{
				Name:    "Counterspell",
				Count:   1,
				Edition: CodeName{Code: strPtr("lea"), Name: strPtr("Alpha")},
				Rarity:  strPtr("u"),
			},
		},
	}
	if diff := cmp.Diff(expected, page); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCollectionCardWithoutMarkers(t *testing.T) {
	page := `<table id="set_cards_table_details">
		<tr id="x"><td class="card_count">1</td><td class="card_name"><a>Plains</a></td></tr>
	</table>`
	result, err := ExtractCollection(parseDoc(t, "", page))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	card := result.Items[0]
	require.False(t, card.IsFoil)
	require.False(t, card.IsPromo)
	require.False(t, card.IsTextless)
	require.False(t, card.IsSigned)
	require.Nil(t, card.Edition.Code)
	require.Nil(t, card.Condition.Code)
	require.Nil(t, card.Language.Code)
	require.Nil(t, card.Rarity)

	// no pagination controls means a single page
	require.Equal(t, 1, result.Page)
	require.Equal(t, 1, result.TotalPages)
	require.Equal(t, 1, result.Total)
}

func TestCollectionRowWithoutName(t *testing.T) {
	page := `<table id="set_cards_table_details"><tr id="x"><td class="card_count">1</td></tr></table>`
	_, err := ExtractCollection(parseDoc(t, "", page))
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	require.Equal(t, "card_name", extractErr.Field)
}

func TestExtractSearch(t *testing.T) {
	page, err := ExtractSearch(parseDoc(t, "", searchPage))
	require.NoError(t, err)

	expected := SearchPage{
		Page:       1,
		TotalPages: 3,
		Total:      UnknownTotal,
		Items: []SearchCard{
			{Name: "Llanowar Elves", Types: []string{"Creature"}, Subtypes: []string{"Elf", "Druid"}, ManaCost: "{G}"},
			{Name: "Centaur Courser", Types: []string{"Creature"}, Subtypes: []string{"Centaur", "Warrior"}, ManaCost: "{2}{G}"},
			{Name: "Island", Types: []string{"Basic", "Land"}, Subtypes: []string{}, ManaCost: ""},
		},
	}
	if diff := cmp.Diff(expected, page); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestEditionRarityLetter(t *testing.T) {
	testCases := []struct {
		src    string
		rarity *string
	}{
		{"/icons/m10_c.jpg", strPtr("c")},
		{"/icons/roe_M.jpg", strPtr("M")},
		{"/icons/unknown.png", nil},
	}
	for _, test := range testCases {
		t.Run(test.src, func(t *testing.T) {
			page := `<table id="set_cards_table_details"><tr id="x">
				<td class="card_count">1</td><td class="card_name"><a>Opt</a></td>
				<td class="edition"><img src="` + test.src + `"></td>
			</tr></table>`
			result, err := ExtractCollection(parseDoc(t, "", page))
			require.NoError(t, err)
			require.Equal(t, test.rarity, result.Items[0].Rarity)
		})
	}
}

func TestPagedTotal(t *testing.T) {
	rows := `<table class="set_cards">
		<tr id="a"><td class="card_name"><a>Opt</a></td></tr>
		<tr id="b"><td class="card_name"><a>Ponder</a></td></tr>
	</table>`
	testCases := []struct {
		name     string
		controls string
		total    int
	}{
		{"no controls", "", 2},
		{"single page without count", `<div class="pagination_controls"><span>1 / 1</span></div>`, 2},
		{"many pages without count", `<div class="pagination_controls"><span>1 / 3</span></div>`, UnknownTotal},
		{"many pages with count", `<div class="pagination_controls"><span>1 / 3</span><span class="results_count">61 results</span></div>`, 61},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			page, err := ExtractSearch(parseDoc(t, "", test.controls+rows))
			require.NoError(t, err)
			require.Equal(t, test.total, page.Total)
		})
	}
}

func TestPaginationBounds(t *testing.T) {
	for _, body := range []string{collectionPage, searchPage} {
		p := extractPagination(parseDoc(t, "", body))
		require.True(t, p.found)
		require.GreaterOrEqual(t, p.page, 1)
		require.LessOrEqual(t, p.page, p.totalPages)
	}
}

func TestSplitTypeLine(t *testing.T) {
	testCases := []struct {
		line     string
		types    []string
		subtypes []string
	}{
		{"Legendary Creature — Elf Warrior", []string{"Legendary", "Creature"}, []string{"Elf", "Warrior"}},
		{"Artifact – Equipment", []string{"Artifact"}, []string{"Equipment"}},
		{"Sorcery", []string{"Sorcery"}, []string{}},
		{"", []string{}, []string{}},
	}
	for _, test := range testCases {
		t.Run(test.line, func(t *testing.T) {
			types, subtypes := splitTypeLine(test.line)
			require.Equal(t, test.types, types)
			require.Equal(t, test.subtypes, subtypes)
		})
	}
}
