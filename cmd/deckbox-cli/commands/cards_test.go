package commands

import (
	"testing"

	"deckbox-api/internal/scrapers/deckbox"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPageRequest(t *testing.T) {
	page, sortBy, order = 3, "price", "desc"
	filters = []string{"color:one_of:Red,Blue", "name:contains:bolt"}
	t.Cleanup(func() {
		page, sortBy, order, filters = 1, "name", "asc", nil
	})

	req, err := pageRequest()
	require.NoError(t, err)

	expected := deckbox.PageRequest{
		Page:          3,
		SortField:     deckbox.SortField("price"),
		SortDirection: deckbox.SortDirection("desc"),
		Filters: []deckbox.FilterExpr{
			{Category: "color", Operator: deckbox.OpOneOf, Values: []string{"Red", "Blue"}},
			{Category: "name", Operator: deckbox.OpContains, Values: []string{"bolt"}},
		},
	}
	if diff := cmp.Diff(expected, req); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	filters = []string{"color"}
	_, err = pageRequest()
	require.Error(t, err)
}
