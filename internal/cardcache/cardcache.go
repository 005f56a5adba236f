package cardcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deckbox-api/internal/cardcache/db"
	"deckbox-api/internal/components/assert"
	"deckbox-api/internal/components/chrono"
	"deckbox-api/internal/components/telemetry"
	"deckbox-api/internal/scrapers/deckbox"
	"deckbox-api/pkg/textutil"
)

const (
	report_cache_get   = "cache.get"
	report_cache_put   = "cache.put"
	report_cache_evict = "cache.evict"
	report_cache_size  = "cache.size"
)

const DefaultTTL = 7 * 24 * time.Hour

// Source is where cache misses are filled from, usually a *deckbox.Client.
type Source interface {
	Card(ctx context.Context, name string) (deckbox.CardDetail, error)
}

type Options struct {
	DB     *sql.DB
	Source Source
	// defaults to DefaultTTL
	TTL    time.Duration
	Chrono chrono.API
	Tel    telemetry.API
}

// Cache keeps card details keyed by normalized card name. Card details rarely
// change so a stale row is only refreshed once it outlives the TTL.
type Cache struct {
	qry    *db.Queries
	source Source
	ttl    time.Duration
	chrono chrono.API
	tel    telemetry.API
}

// New creates the cache table if it doesn't exist yet.
func New(ctx context.Context, opts Options) (*Cache, error) {
	assert.NotNil(opts.DB)
	assert.NotNil(opts.Source)
	assert.NotNil(opts.Chrono)
	assert.NotNil(opts.Tel)
	assert.NonNegative(opts.TTL, "ttl")

	_, err := opts.DB.ExecContext(ctx, db.Schema)
	if err != nil {
		return nil, fmt.Errorf("create card cache schema: %w", err)
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		qry:    db.New(opts.DB),
		source: opts.Source,
		ttl:    ttl,
		chrono: opts.Chrono,
		tel:    telemetry.NewScopedAPI("card_cache", opts.Tel),
	}, nil
}

func cacheKey(name string) string {
	return textutil.NormalizeKey(name)
}

// Card returns the cached details when they are fresh and falls through to
// the source otherwise. Cache failures are reported, never returned.
func (c *Cache) Card(ctx context.Context, name string) (deckbox.CardDetail, error) {
	key := cacheKey(name)

	row, err := c.qry.GetCard(ctx, key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		c.tel.ReportBroken(report_cache_get, err, key)
	case c.chrono.Now().Sub(time.Unix(row.FetchedAt, 0)) < c.ttl:
		var card deckbox.CardDetail
		err = json.Unmarshal([]byte(row.Detail), &card)
		if err == nil {
			c.tel.ReportDebug(report_cache_get, "hit", key)
			return card, nil
		}
		c.tel.ReportBroken(report_cache_get, fmt.Errorf("unmarshal: %w", err), key)
	}

	card, err := c.source.Card(ctx, name)
	if err != nil {
		return deckbox.CardDetail{}, err
	}
	c.put(ctx, key, card)
	return card, nil
}

func (c *Cache) put(ctx context.Context, key string, card deckbox.CardDetail) {
	detail, err := json.Marshal(card)
	if err != nil {
		c.tel.ReportBroken(report_cache_put, fmt.Errorf("marshal: %w", err), key)
		return
	}
	err = c.qry.PutCard(ctx, db.PutCardParams{
		Key:       key,
		Name:      card.Name,
		Detail:    string(detail),
		FetchedAt: c.chrono.Now().Unix(),
	})
	if err != nil {
		c.tel.ReportBroken(report_cache_put, err, key)
	}
}

// Evict deletes every row older than the TTL and returns how many went. Both
// the deleted count and the remaining size are reported.
func (c *Cache) Evict(ctx context.Context) (int64, error) {
	deleted, err := c.qry.DeleteCardsBefore(ctx, c.chrono.Now().Add(-c.ttl).Unix())
	if err != nil {
		c.tel.ReportBroken(report_cache_evict, err)
		return 0, err
	}
	c.tel.ReportCount(report_cache_evict, deleted)

	size, err := c.qry.CountCards(ctx)
	if err != nil {
		c.tel.ReportWarning(report_cache_size, err)
		return deleted, nil
	}
	c.tel.ReportCount(report_cache_size, size)
	return deleted, nil
}

// EvictDaemon evicts on every tick until ctx is done.
func (c *Cache) EvictDaemon(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// failures and counts are reported by Evict
			_, _ = c.Evict(ctx)
		}
	}
}
