package deckbox

import (
	"regexp"

	"deckbox-api/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

// FilterCatalog maps category -> normalized label -> upstream code, for the
// categories that support membership operators.
type FilterCatalog struct {
	Categories map[string]map[string]string `json:"categories"`
	Operators  map[string]string            `json:"operators"`
}

// catalog categories and the page regions that hold their labels
var catalogRegions = []struct {
	category string
	selector string
}{
	{"edition", "#filter_edition"},
	{"type", "#filter_type"},
	{"rarity", "#filter_rarity"},
	{"color", "#filter_color"},
	{"language", "#filter_language"},
}

var catalogPairRegex = regexp.MustCompile(`\[\s*"((?:[^"\\]|\\.)*)"\s*,\s*"((?:[^"\\]|\\.)*)"\s*\]`)

func operatorTable() map[string]string {
	out := make(map[string]string, len(operatorCodes))
	for op, code := range operatorCodes {
		out[string(op)] = code
	}
	return out
}

// ResolveCatalog reads the label tables embedded in the search page. Every
// region must be present, a page missing one is not a search page.
func ResolveCatalog(doc *goquery.Document) (FilterCatalog, error) {
	catalog := FilterCatalog{
		Categories: make(map[string]map[string]string, len(catalogRegions)),
		Operators:  operatorTable(),
	}

	for _, region := range catalogRegions {
		node := doc.Find(region.selector).First()
		if node.Length() == 0 {
			return FilterCatalog{}, &CatalogError{Region: region.selector}
		}

		labels := map[string]string{}
		script := node.NextAllFiltered("script").First()
		for _, match := range catalogPairRegex.FindAllStringSubmatch(script.Text(), -1) {
			key := textutil.NormalizeKey(match[1])
			if key == "" {
				continue
			}
			labels[key] = match[2]
		}
		catalog.Categories[region.category] = labels
	}

	return catalog, nil
}
