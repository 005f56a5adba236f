package api

import (
	"context"
	"net/http"

	"deckbox-api/internal/components/assert"
	"deckbox-api/internal/components/telemetry"
	"deckbox-api/internal/scrapers/deckbox"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Scraper is the part of *deckbox.Client the routes need.
type Scraper interface {
	ProfileAndSets(ctx context.Context, username string) (deckbox.UserProfile, []deckbox.SetReference, error)
	Friends(ctx context.Context, username string) ([]deckbox.Friend, error)
	Sets(ctx context.Context, username string) ([]deckbox.SetReference, error)
	UserSet(ctx context.Context, username, setIdOrName string, req deckbox.PageRequest) (deckbox.SetResult, error)
	Catalog(ctx context.Context) (deckbox.FilterCatalog, error)
	Search(ctx context.Context, req deckbox.PageRequest) (deckbox.SearchPage, error)
}

// CardSource serves single card details, usually the card cache.
type CardSource interface {
	Card(ctx context.Context, name string) (deckbox.CardDetail, error)
}

type Options struct {
	Scraper Scraper
	Cards   CardSource
	Tel     telemetry.API
}

type handler struct {
	scraper Scraper
	cards   CardSource
	tel     telemetry.API
}

func NewRouter(opts Options) http.Handler {
	assert.NotNil(opts.Scraper)
	assert.NotNil(opts.Cards)
	assert.NotNil(opts.Tel)

	h := &handler{
		scraper: opts.Scraper,
		cards:   opts.Cards,
		tel:     telemetry.NewScopedAPI("api", opts.Tel),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/api", h.Index)
	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/", h.User)
		r.Get("/friends", h.Friends)
		r.Get("/sets", h.Sets)
		r.Get("/sets/{set}", h.UserSet)
	})
	r.Get("/api/cards", h.SearchCards)
	r.Get("/api/cards/{name}", h.Card)
	r.Get("/api/filters", h.Filters)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
	})

	return otelhttp.NewHandler(r, "deckbox-api")
}
