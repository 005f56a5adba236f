package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"deckbox-api/internal/scrapers/deckbox"

	"github.com/go-chi/chi/v5"
)

var endpoints = map[string]string{
	"/api/users/:username/":               "Get user profile information and sets.",
	"/api/users/:username/friends/":       "Get the user's friends, paginated with page, count and pagination.",
	"/api/users/:username/sets/":          "Get the user's sets.",
	"/api/users/:username/sets/:set_id/":  "Get cards from a set, by id or name, with page, sort_by and order.",
	"/api/cards/:name/":                   "Get details of a single card.",
	"/api/cards/?name=&filter=cat:op:val": "Search cards with page, sort_by, order and repeated filters.",
	"/api/filters/":                       "Get the labels accepted by set-membership filters.",
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, endpoints)
}

// param returns a path parameter, chi leaves escaped values escaped when the
// request path was escaped.
func param(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	unescaped, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return unescaped
}

type userResponse struct {
	deckbox.UserProfile
	Sets []deckbox.SetReference `json:"sets"`
}

func (h *handler) User(w http.ResponseWriter, r *http.Request) {
	profile, sets, err := h.scraper.ProfileAndSets(r.Context(), param(r, "username"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{UserProfile: profile, Sets: sets})
}

func (h *handler) Friends(w http.ResponseWriter, r *http.Request) {
	args, err := parseListArgs(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	friends, err := h.scraper.Friends(r.Context(), param(r, "username"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginateList(friends, args))
}

func (h *handler) Sets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.scraper.Sets(r.Context(), param(r, "username"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

var errOrder = errors.New("order must be asc or desc")

// parsePageRequest reads page, sort_by, order and the repeated filter
// arguments shared by set and search listings.
func parsePageRequest(r *http.Request) (deckbox.PageRequest, error) {
	page, err := positiveInt(r, "page", 1)
	if err != nil {
		return deckbox.PageRequest{}, err
	}

	query := r.URL.Query()
	req := deckbox.PageRequest{
		Page:      page,
		SortField: deckbox.SortField(query.Get("sort_by")),
	}
	switch order := strings.ToLower(query.Get("order")); order {
	case "":
	case string(deckbox.SortAsc), string(deckbox.SortDesc):
		req.SortDirection = deckbox.SortDirection(order)
	default:
		return deckbox.PageRequest{}, errOrder
	}

	for _, raw := range query["filter"] {
		expr, err := deckbox.ParseFilterExpr(raw)
		if err != nil {
			return deckbox.PageRequest{}, err
		}
		req.Filters = append(req.Filters, expr)
	}
	return req, nil
}

type deckCount struct {
	Cards    int `json:"cards"`
	Distinct int `json:"distinct"`
}

type boardResponse struct {
	Cards      []deckbox.DeckCard `json:"cards"`
	CardsCount deckCount          `json:"cards_count"`
}

type deckResponse struct {
	Title      string             `json:"title"`
	Cards      []deckbox.DeckCard `json:"cards"`
	CardsCount deckCount          `json:"cards_count"`
	Sideboard  boardResponse      `json:"sideboard"`
}

func newDeckResponse(deck *deckbox.DeckResult) deckResponse {
	return deckResponse{
		Title:      deck.Title,
		Cards:      deck.Mainboard.Cards,
		CardsCount: deckCount{Cards: deck.Mainboard.Total, Distinct: deck.Mainboard.Distinct},
		Sideboard: boardResponse{
			Cards:      deck.Sideboard.Cards,
			CardsCount: deckCount{Cards: deck.Sideboard.Total, Distinct: deck.Sideboard.Distinct},
		},
	}
}

type emptySetResponse struct {
	Set   deckbox.SetReference `json:"set"`
	Items []any                `json:"items"`
}

func (h *handler) UserSet(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	result, err := h.scraper.UserSet(r.Context(), param(r, "username"), param(r, "set"), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	switch result := result.(type) {
	case deckbox.InvalidSet:
		writeJSON(w, http.StatusNotFound, result)
	case *deckbox.DeckResult:
		writeJSON(w, http.StatusOK, newDeckResponse(result))
	case *deckbox.CollectionPage:
		writeJSON(w, http.StatusOK, fromPaged(*result))
	case *deckbox.SearchPage:
		writeJSON(w, http.StatusOK, fromPaged(*result))
	case deckbox.EmptySet:
		writeJSON(w, http.StatusOK, emptySetResponse{Set: result.Set, Items: []any{}})
	default:
		h.tel.ReportBroken(report_api_respond, "unhandled set result", result)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "unhandled set result", nil)
	}
}

func (h *handler) Card(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Card(r.Context(), param(r, "name"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *handler) SearchCards(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		req.Filters = append([]deckbox.FilterExpr{{
			Category: "name",
			Operator: deckbox.OpContains,
			Values:   []string{name},
		}}, req.Filters...)
	}

	page, err := h.scraper.Search(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fromPaged(page))
}

func (h *handler) Filters(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.scraper.Catalog(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
