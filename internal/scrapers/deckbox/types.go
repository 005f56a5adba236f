package deckbox

import "time"

const lastSeenLayout = "2006-01-02 15:04:05"

type LastSeenOnline struct {
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
}

// newLastSeenOnline derives the rendered date from the timestamp, the page's
// own date text is never used.
func newLastSeenOnline(timestamp int64, loc *time.Location) LastSeenOnline {
	if loc == nil {
		loc = time.UTC
	}
	return LastSeenOnline{
		Timestamp: timestamp,
		Date:      time.Unix(timestamp, 0).In(loc).Format(lastSeenLayout),
	}
}

type UserProfile struct {
	Username       string         `json:"username"`
	Location       string         `json:"location"`
	Bio            string         `json:"bio"`
	Image          string         `json:"image"`
	LastSeenOnline LastSeenOnline `json:"last_seen_online"`
	Feedback       string         `json:"feedback"`
	WillTrade      string         `json:"will_trade"`
}

type Friend struct {
	Username       string         `json:"username"`
	Image          string         `json:"image"`
	LastSeenOnline LastSeenOnline `json:"last_seen_online"`
	Location       string         `json:"location"`
}

const (
	SetInventory = "inventory"
	SetTradelist = "tradelist"
	SetWishlist  = "wishlist"
)

var reservedSetNames = [...]string{SetInventory, SetTradelist, SetWishlist}

type SetReference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CodeName is an upstream code paired with its human name, both are null
// when the marker carrying them is absent.
type CodeName struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

func newCodeName(code, name string) CodeName {
	out := CodeName{}
	if code != "" {
		out.Code = &code
	}
	if name != "" {
		out.Name = &name
	}
	return out
}

type CollectionCard struct {
	Name       string   `json:"name"`
	Count      int      `json:"count"`
	Edition    CodeName `json:"edition"`
	Rarity     *string  `json:"rarity"`
	Condition  CodeName `json:"condition"`
	Language   CodeName `json:"lang"`
	IsFoil     bool     `json:"is_foil"`
	IsPromo    bool     `json:"is_promo"`
	IsTextless bool     `json:"is_textless"`
	IsSigned   bool     `json:"is_signed"`
}

type DeckCard struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

type SearchCard struct {
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Subtypes []string `json:"subtypes"`
	ManaCost string   `json:"mana_cost"`
}

type PowerToughness struct {
	Power     string `json:"power"`
	Toughness string `json:"toughness"`
}

type Legality struct {
	Legal      []string `json:"legal"`
	Restricted []string `json:"restricted"`
}

type Edition struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CardDetail struct {
	Name           string            `json:"name"`
	Image          string            `json:"image"`
	Types          []string          `json:"types"`
	Subtypes       []string          `json:"subtypes"`
	ManaCost       string            `json:"mana_cost"`
	RulesText      string            `json:"rules_text"`
	Editions       []Edition         `json:"editions"`
	PowerToughness *PowerToughness   `json:"power_toughness,omitempty"`
	Legality       Legality          `json:"legality"`
	RulingsURL     string            `json:"rulings_url,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// UnknownTotal is the Total of a listing spread over several pages when
// upstream did not print a result count.
const UnknownTotal = -1

// PagedResult is one upstream page of items, Page is 1-based and is reported
// exactly as upstream rendered it.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

type Board struct {
	Cards    []DeckCard `json:"cards"`
	Total    int        `json:"total"`
	Distinct int        `json:"distinct"`
}

type DeckResult struct {
	Title     string `json:"title"`
	Mainboard Board  `json:"mainboard"`
	Sideboard Board  `json:"sideboard"`
}

type CollectionPage = PagedResult[CollectionCard]

type SearchPage = PagedResult[SearchCard]

// SetResult is what a user set resolves to, one of *DeckResult,
// *CollectionPage, *SearchPage, EmptySet or InvalidSet.
type SetResult interface {
	setResult()
}

func (*DeckResult) setResult()     {}
func (*PagedResult[T]) setResult() {}
func (EmptySet) setResult()        {}
func (InvalidSet) setResult()      {}

// EmptySet is returned when a set page could not be classified.
type EmptySet struct {
	Set SetReference `json:"set"`
}

const invalidSetDescription = "The user doesn't have the specified set."

// InvalidSet is the value returned when the user has no set matching the
// requested id or name.
type InvalidSet struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

func newInvalidSet() InvalidSet {
	return InvalidSet{Status: "error", Description: invalidSetDescription}
}
