package deckbox

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"deckbox-api/internal/components/assert"
	"deckbox-api/internal/components/chrono"
	"deckbox-api/internal/components/telemetry"
	"deckbox-api/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_profile  = "client.profile"
	report_client_friends  = "client.friends"
	report_client_sets     = "client.sets"
	report_client_user_set = "client.user-set"
	report_client_card     = "client.card"
	report_client_catalog  = "client.catalog"
	report_client_search   = "client.search"
)

const DefaultBaseUrl = "https://deckbox.org"

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	Fetcher Fetcher
	Tel     telemetry.API
	Chrono  chrono.API
}

// Client runs the fetch, classify, extract pipeline for each logical
// request. It keeps no state between calls.
type Client struct {
	baseUrl *url.URL
	fetcher Fetcher
	chrono  chrono.API
	tel     telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotNil(opts.Fetcher)
	assert.NotNil(opts.Tel)
	assert.NotNil(opts.Chrono)

	rawBaseUrl := opts.BaseUrl
	if rawBaseUrl == "" {
		rawBaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(rawBaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	return &Client{
		baseUrl: baseUrl,
		fetcher: opts.Fetcher,
		chrono:  opts.Chrono,
		tel:     telemetry.NewScopedAPI("deckbox", opts.Tel),
	}, nil
}

func (c *Client) link(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	// segments are joined by hand, path.Join would collapse the "//" in
	// split card names
	link := *c.baseUrl
	link.Path = strings.TrimRight(c.baseUrl.Path, "/") + "/" + strings.Join(segments, "/")
	link.RawPath = strings.TrimRight(c.baseUrl.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	link.RawQuery = query.Encode()
	return link.String()
}

func (c *Client) fetch(ctx context.Context, reportId, link string) (*goquery.Document, error) {
	c.tel.ReportDebug(reportId, link)
	doc, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		c.tel.ReportWarning(reportId, err)
		return nil, err
	}
	return doc, nil
}

func (c *Client) Profile(ctx context.Context, username string) (UserProfile, error) {
	doc, err := c.fetch(ctx, report_client_profile, c.link(nil, "users", username))
	if err != nil {
		return UserProfile{}, err
	}
	profile, err := ExtractProfile(doc, c.chrono.Location())
	if err != nil {
		c.tel.ReportBroken(report_client_profile, err, username)
		return UserProfile{}, err
	}
	return profile, nil
}

// ProfileAndSets reads both from the same profile page.
func (c *Client) ProfileAndSets(ctx context.Context, username string) (UserProfile, []SetReference, error) {
	doc, err := c.fetch(ctx, report_client_profile, c.link(nil, "users", username))
	if err != nil {
		return UserProfile{}, nil, err
	}
	profile, err := ExtractProfile(doc, c.chrono.Location())
	if err != nil {
		c.tel.ReportBroken(report_client_profile, err, username)
		return UserProfile{}, nil, err
	}
	sets, err := ExtractSets(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_sets, err, username)
		return UserProfile{}, nil, err
	}
	return profile, sets, nil
}

func (c *Client) Friends(ctx context.Context, username string) ([]Friend, error) {
	doc, err := c.fetch(ctx, report_client_friends, c.link(nil, "users", username, "friends"))
	if err != nil {
		return nil, err
	}
	friends, err := ExtractFriends(doc, c.chrono.Location())
	if err != nil {
		c.tel.ReportBroken(report_client_friends, err, username)
		return nil, err
	}
	c.tel.ReportCount(report_client_friends, int64(len(friends)))
	return friends, nil
}

func (c *Client) Sets(ctx context.Context, username string) ([]SetReference, error) {
	doc, err := c.fetch(ctx, report_client_sets, c.link(nil, "users", username))
	if err != nil {
		return nil, err
	}
	sets, err := ExtractSets(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_sets, err, username)
		return nil, err
	}
	return sets, nil
}

// UserSet resolves setIdOrName among the user's sets and scrapes the
// requested page of it. A set the user does not have gives InvalidSet with
// a nil error.
func (c *Client) UserSet(ctx context.Context, username, setIdOrName string, req PageRequest) (SetResult, error) {
	sets, err := c.Sets(ctx, username)
	if err != nil {
		return nil, err
	}
	set, ok := FindSet(sets, setIdOrName)
	if !ok {
		c.tel.ReportDebug(report_client_user_set, "no such set", username, setIdOrName)
		return newInvalidSet(), nil
	}

	query, err := c.encode(ctx, req)
	if err != nil {
		return nil, err
	}
	doc, err := c.fetch(ctx, report_client_user_set, c.link(query, "sets", set.ID))
	if err != nil {
		return nil, err
	}

	var result SetResult
	switch Classify(doc) {
	case PageDeck:
		deck, err := ExtractDeck(doc)
		if err != nil {
			c.tel.ReportBroken(report_client_user_set, err, set.ID)
			return nil, err
		}
		result = &deck
	case PageCollection:
		collection, err := ExtractCollection(doc)
		if err != nil {
			c.tel.ReportBroken(report_client_user_set, err, set.ID)
			return nil, err
		}
		result = &collection
	case PageCardList:
		cards, err := ExtractSearch(doc)
		if err != nil {
			c.tel.ReportBroken(report_client_user_set, err, set.ID)
			return nil, err
		}
		result = &cards
	default:
		c.tel.ReportWarning(report_client_user_set, "unrecognized set page", set.ID)
		result = EmptySet{Set: set}
	}
	return result, nil
}

func (c *Client) Card(ctx context.Context, name string) (CardDetail, error) {
	doc, err := c.fetch(ctx, report_client_card, c.link(nil, "mtg", name))
	if err != nil {
		return CardDetail{}, err
	}
	card, err := ExtractCard(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_card, err, name)
		return CardDetail{}, err
	}
	return card, nil
}

func (c *Client) Catalog(ctx context.Context) (FilterCatalog, error) {
	doc, err := c.fetch(ctx, report_client_catalog, c.link(nil, "search"))
	if err != nil {
		return FilterCatalog{}, err
	}
	catalog, err := ResolveCatalog(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_catalog, err)
		return FilterCatalog{}, err
	}
	return catalog, nil
}

// encode resolves the catalog first when a filter needs label codes.
func (c *Client) encode(ctx context.Context, req PageRequest) (url.Values, error) {
	catalog := FilterCatalog{}
	for _, f := range req.Filters {
		if !Operator(textutil.NormalizeKey(string(f.Operator))).IsMembership() {
			continue
		}
		var err error
		catalog, err = c.Catalog(ctx)
		if err != nil {
			return nil, err
		}
		break
	}
	return EncodeQuery(req, catalog)
}

func (c *Client) Search(ctx context.Context, req PageRequest) (SearchPage, error) {
	query, err := c.encode(ctx, req)
	if err != nil {
		return SearchPage{}, err
	}
	doc, err := c.fetch(ctx, report_client_search, c.link(query, "search"))
	if err != nil {
		return SearchPage{}, err
	}
	page, err := ExtractSearch(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_search, err)
		return SearchPage{}, err
	}
	c.tel.ReportCount(report_client_search, int64(len(page.Items)))
	return page, nil
}
