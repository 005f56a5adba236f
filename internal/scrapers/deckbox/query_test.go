package deckbox

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeSort(t *testing.T) {
	testCases := []struct {
		field SortField
		dir   SortDirection
		s, o  string
	}{
		{SortName, SortAsc, "a", "a"},
		{SortType, SortDesc, "b", "d"},
		{SortCost, SortDesc, "c", "d"},
		{SortEdition, SortAsc, "d", "a"},
		{SortRarity, SortAsc, "e", "a"},
		{SortCount, SortDesc, "f", "d"},
		{SortPrice, SortAsc, "g", "a"},
		{SortColor, SortDesc, "h", "d"},
		{"COST", "DESC", "c", "d"},
		{"", "", "a", "a"},
		{"popularity", "sideways", "a", "a"},
	}

	for _, test := range testCases {
		t.Run(string(test.field)+"/"+string(test.dir), func(t *testing.T) {
			values, err := EncodeQuery(PageRequest{SortField: test.field, SortDirection: test.dir}, FilterCatalog{})
			require.NoError(t, err)
			require.Equal(t, test.s, values.Get("s"))
			require.Equal(t, test.o, values.Get("o"))
			require.Equal(t, "1", values.Get("p"))
			require.False(t, values.Has("f"))
		})
	}
}

func TestQueryRoundTrip(t *testing.T) {
	for field := range sortFieldCodes {
		for dir := range sortDirectionCodes {
			req := PageRequest{Page: 3, SortField: field, SortDirection: dir}
			values, err := EncodeQuery(req, FilterCatalog{})
			require.NoError(t, err)

			decoded, err := DecodeQuery(values.Encode())
			require.NoError(t, err)
			if diff := cmp.Diff(req, decoded); diff != "" {
				t.Fatalf("round trip of %s/%s (-want +got):\n%s", field, dir, diff)
			}
		}
	}
}

func TestEncodeFilters(t *testing.T) {
	catalog, err := ResolveCatalog(parseDoc(t, "", catalogPage))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		filters  []FilterExpr
		expected string
	}{
		{
			name:     "contains",
			filters:  []FilterExpr{{Category: "name", Operator: OpContains, Values: []string{"cent"}}},
			expected: "n7Y2VudA==",
		},
		{
			name:     "one of",
			filters:  []FilterExpr{{Category: "edition", Operator: OpOneOf, Values: []string{"Magic 2010", "future  sight"}}},
			expected: "e1m10.fut",
		},
		{
			name: "joined",
			filters: []FilterExpr{
				{Category: "Color", Operator: OpNoneOf, Values: []string{"red"}},
				{Category: "power", Operator: OpLargerThan, Values: []string{"3"}},
			},
			expected: "c2r~p5Mw==",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			encoded, err := EncodeFilters(test.filters, catalog)
			require.NoError(t, err)
			require.Equal(t, test.expected, encoded)
		})
	}
}

func TestEncodeFiltersErrors(t *testing.T) {
	catalog, err := ResolveCatalog(parseDoc(t, "", catalogPage))
	require.NoError(t, err)

	testCases := []struct {
		name       string
		expr       FilterExpr
		kind       string
		suggestion string
	}{
		{
			name:       "unknown category",
			expr:       FilterExpr{Category: "colour", Operator: OpContains, Values: []string{"x"}},
			kind:       "category",
			suggestion: "color",
		},
		{
			name:       "unknown operator",
			expr:       FilterExpr{Category: "name", Operator: "contain", Values: []string{"x"}},
			kind:       "operator",
			suggestion: "contains",
		},
		{
			name:       "unknown label",
			expr:       FilterExpr{Category: "edition", Operator: OpOneOf, Values: []string{"Magic 2011"}},
			kind:       "edition",
			suggestion: "magic_2010",
		},
		{
			name: "membership on free text category",
			expr: FilterExpr{Category: "text", Operator: OpAllOf, Values: []string{"flying"}},
			kind: "category for all_of",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := EncodeQuery(PageRequest{Filters: []FilterExpr{test.expr}}, catalog)
			var filterErr *FilterError
			require.True(t, errors.As(err, &filterErr), "got %v", err)
			require.Equal(t, test.kind, filterErr.Kind)
			require.Equal(t, test.suggestion, filterErr.Suggestion)
		})
	}
}

func TestDecodeQueryFilters(t *testing.T) {
	decoded, err := DecodeQuery("p=2&s=c&o=d&f=n7Y2VudA%3D%3D~e1m10.fut")
	require.NoError(t, err)

	expected := PageRequest{
		Page:          2,
		SortField:     SortCost,
		SortDirection: SortDesc,
		Filters: []FilterExpr{
			{Category: "name", Operator: OpContains, Values: []string{"cent"}},
			{Category: "edition", Operator: OpOneOf, Values: []string{"m10", "fut"}},
		},
	}
	if diff := cmp.Diff(expected, decoded); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	_, err = DecodeQuery("f=z1abc")
	require.Error(t, err)
	_, err = DecodeQuery("p=two")
	require.Error(t, err)
}

func TestParseFilterExpr(t *testing.T) {
	expr, err := ParseFilterExpr("Edition:one_of:Magic 2010, Future Sight")
	require.NoError(t, err)
	require.Equal(t, FilterExpr{
		Category: "edition",
		Operator: OpOneOf,
		Values:   []string{"Magic 2010", "Future Sight"},
	}, expr)

	expr, err = ParseFilterExpr("text:contains:draw a card, then discard")
	require.NoError(t, err)
	require.Equal(t, []string{"draw a card, then discard"}, expr.Values)

	_, err = ParseFilterExpr("edition")
	require.Error(t, err)
}
