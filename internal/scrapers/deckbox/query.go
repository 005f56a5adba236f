package deckbox

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"deckbox-api/pkg/textutil"

	"github.com/antzucaro/matchr"
)

// upstream query parameter names
const (
	paramPage    = "p"
	paramSort    = "s"
	paramOrder   = "o"
	paramFilters = "f"
)

const filterSeparator = "~"
const membershipSeparator = "."

type SortField string

const (
	SortName    SortField = "name"
	SortType    SortField = "type"
	SortCost    SortField = "cost"
	SortEdition SortField = "edition"
	SortRarity  SortField = "rarity"
	SortCount   SortField = "count"
	SortPrice   SortField = "price"
	SortColor   SortField = "color"
)

var sortFieldCodes = map[SortField]string{
	SortName:    "a",
	SortType:    "b",
	SortCost:    "c",
	SortEdition: "d",
	SortRarity:  "e",
	SortCount:   "f",
	SortPrice:   "g",
	SortColor:   "h",
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var sortDirectionCodes = map[SortDirection]string{
	SortAsc:  "a",
	SortDesc: "d",
}

type Operator string

const (
	OpOneOf       Operator = "one_of"
	OpNoneOf      Operator = "none_of"
	OpAllOf       Operator = "all_of"
	OpEquals      Operator = "equals"
	OpLargerThan  Operator = "larger_than"
	OpSmallerThan Operator = "smaller_than"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
)

var operatorCodes = map[Operator]string{
	OpOneOf:       "1",
	OpNoneOf:      "2",
	OpAllOf:       "3",
	OpEquals:      "4",
	OpLargerThan:  "5",
	OpSmallerThan: "6",
	OpContains:    "7",
	OpNotContains: "8",
}

// IsMembership reports whether the operator takes a list of catalog labels
// instead of a free value.
func (o Operator) IsMembership() bool {
	return o == OpOneOf || o == OpNoneOf || o == OpAllOf
}

var filterCategoryCodes = map[string]string{
	"name":      "n",
	"type":      "t",
	"color":     "c",
	"edition":   "e",
	"rarity":    "r",
	"language":  "l",
	"cost":      "m",
	"power":     "p",
	"toughness": "u",
	"text":      "x",
}

// FilterExpr is one predicate of a card search, Values holds the labels for
// membership operators and a single raw value otherwise.
type FilterExpr struct {
	Category string
	Operator Operator
	Values   []string
}

// ParseFilterExpr parses "<category>:<operator>:<value>[,<value>...]".
func ParseFilterExpr(raw string) (FilterExpr, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return FilterExpr{}, fmt.Errorf("filter %q must look like <category>:<operator>:<value>", raw)
	}
	expr := FilterExpr{
		Category: textutil.NormalizeKey(parts[0]),
		Operator: Operator(textutil.NormalizeKey(parts[1])),
	}
	if expr.Operator.IsMembership() {
		for _, v := range strings.Split(parts[2], ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				expr.Values = append(expr.Values, v)
			}
		}
	} else {
		expr.Values = []string{parts[2]}
	}
	return expr, nil
}

// PageRequest is a logical request for one page of a card listing.
type PageRequest struct {
	Page          int
	SortField     SortField
	SortDirection SortDirection
	Filters       []FilterExpr
}

// EncodeSortField maps unknown or empty fields to the code for name.
func EncodeSortField(field SortField) string {
	code, ok := sortFieldCodes[SortField(strings.ToLower(string(field)))]
	if !ok {
		return sortFieldCodes[SortName]
	}
	return code
}

// EncodeSortDirection maps unknown or empty directions to the code for asc.
func EncodeSortDirection(dir SortDirection) string {
	code, ok := sortDirectionCodes[SortDirection(strings.ToLower(string(dir)))]
	if !ok {
		return sortDirectionCodes[SortAsc]
	}
	return code
}

// EncodeQuery produces the upstream query parameters for req. The catalog is
// only consulted for membership filters and may be empty otherwise.
func EncodeQuery(req PageRequest, catalog FilterCatalog) (url.Values, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set(paramPage, strconv.Itoa(page))
	values.Set(paramSort, EncodeSortField(req.SortField))
	values.Set(paramOrder, EncodeSortDirection(req.SortDirection))

	if len(req.Filters) > 0 {
		filters, err := EncodeFilters(req.Filters, catalog)
		if err != nil {
			return nil, err
		}
		values.Set(paramFilters, filters)
	}
	return values, nil
}

// EncodeFilters joins every encoded expression with the filter separator.
func EncodeFilters(filters []FilterExpr, catalog FilterCatalog) (string, error) {
	encoded := make([]string, len(filters))
	for i, expr := range filters {
		segment, err := encodeFilter(expr, catalog)
		if err != nil {
			return "", err
		}
		encoded[i] = segment
	}
	return strings.Join(encoded, filterSeparator), nil
}

func encodeFilter(expr FilterExpr, catalog FilterCatalog) (string, error) {
	category := textutil.NormalizeKey(expr.Category)
	categoryCode, ok := filterCategoryCodes[category]
	if !ok {
		return "", &FilterError{
			Kind:       "category",
			Value:      expr.Category,
			Suggestion: suggest(category, keysOf(filterCategoryCodes)),
		}
	}

	operator := Operator(textutil.NormalizeKey(string(expr.Operator)))
	operatorCode, ok := operatorCodes[operator]
	if !ok {
		return "", &FilterError{
			Kind:       "operator",
			Value:      string(expr.Operator),
			Suggestion: suggest(string(operator), keysOf(operatorCodes)),
		}
	}

	if !operator.IsMembership() {
		raw := strings.Join(expr.Values, ",")
		return categoryCode + operatorCode + base64.StdEncoding.EncodeToString([]byte(raw)), nil
	}

	labels, ok := catalog.Categories[category]
	if !ok {
		return "", &FilterError{
			Kind:       "category for " + string(operator),
			Value:      expr.Category,
			Suggestion: suggest(category, keysOf(catalog.Categories)),
		}
	}
	codes := make([]string, 0, len(expr.Values))
	for _, label := range expr.Values {
		key := textutil.NormalizeKey(label)
		code, ok := labels[key]
		if !ok {
			return "", &FilterError{
				Kind:       category,
				Value:      label,
				Suggestion: suggest(key, keysOf(labels)),
			}
		}
		codes = append(codes, code)
	}
	return categoryCode + operatorCode + strings.Join(codes, membershipSeparator), nil
}

// DecodeQuery reads an upstream query string back into a PageRequest. Filter
// values of membership operators come back as upstream codes, not labels.
func DecodeQuery(raw string) (PageRequest, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return PageRequest{}, err
	}

	req := PageRequest{
		Page:          1,
		SortField:     reverseLookup(sortFieldCodes, values.Get(paramSort), SortName),
		SortDirection: reverseLookup(sortDirectionCodes, values.Get(paramOrder), SortAsc),
	}
	if p := values.Get(paramPage); p != "" {
		req.Page, err = strconv.Atoi(p)
		if err != nil {
			return PageRequest{}, fmt.Errorf("decode page %q: %w", p, err)
		}
	}

	f := values.Get(paramFilters)
	if f == "" {
		return req, nil
	}
	for _, segment := range strings.Split(f, filterSeparator) {
		expr, err := decodeFilter(segment)
		if err != nil {
			return PageRequest{}, err
		}
		req.Filters = append(req.Filters, expr)
	}
	return req, nil
}

func decodeFilter(segment string) (FilterExpr, error) {
	if len(segment) < 2 {
		return FilterExpr{}, fmt.Errorf("decode filter %q: too short", segment)
	}
	category, ok := reverseFind(filterCategoryCodes, segment[:1])
	if !ok {
		return FilterExpr{}, fmt.Errorf("decode filter %q: unknown category code", segment)
	}
	operator, ok := reverseFind(operatorCodes, segment[1:2])
	if !ok {
		return FilterExpr{}, fmt.Errorf("decode filter %q: unknown operator code", segment)
	}

	expr := FilterExpr{Category: category, Operator: operator}
	value := segment[2:]
	if operator.IsMembership() {
		expr.Values = strings.Split(value, membershipSeparator)
		return expr, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return FilterExpr{}, fmt.Errorf("decode filter %q: %w", segment, err)
	}
	expr.Values = []string{string(decoded)}
	return expr, nil
}

func reverseFind[K ~string](table map[K]string, code string) (K, bool) {
	for key, c := range table {
		if c == code {
			return key, true
		}
	}
	var zero K
	return zero, false
}

func reverseLookup[K ~string](table map[K]string, code string, fallback K) K {
	key, ok := reverseFind(table, code)
	if !ok {
		return fallback
	}
	return key
}

func keysOf[K ~string, V any](table map[K]V) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// suggest returns the candidate most similar to value, or "" when nothing is
// close enough to be useful.
func suggest(value string, candidates []string) string {
	best := ""
	bestScore := 0.7
	for _, c := range candidates {
		score := matchr.JaroWinkler(value, c, false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}
