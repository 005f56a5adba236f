package deckbox

import (
	"fmt"
	"strings"
)

// FetchError is a network failure or a non-2xx response. StatusCode is 0 when
// no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("deckbox: fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("deckbox: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError means a field that identifies the record (a card name, a set
// id, a username) was missing or malformed.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("deckbox: extract %s: not found", e.Field)
	}
	return fmt.Sprintf("deckbox: extract %s: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CatalogError means one of the filter regions on the search page is missing.
type CatalogError struct {
	Region string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("deckbox: filter catalog: region %s not found", e.Region)
}

// FilterError is a filter expression that cannot be encoded, Suggestion holds
// the closest known key when there is one.
type FilterError struct {
	Kind       string
	Value      string
	Suggestion string
}

func (e *FilterError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deckbox: unknown filter %s %q", e.Kind, e.Value)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, ", did you mean %q?", e.Suggestion)
	}
	return b.String()
}
