package main

import (
	"context"
	"flag"
	"time"
	_ "time/tzdata"

	"deckbox-api/internal/api"
	"deckbox-api/internal/cardcache"
	"deckbox-api/internal/components/chrono"
	"deckbox-api/internal/components/configutil"
	"deckbox-api/internal/components/serviceutil"
	"deckbox-api/internal/components/telemetry"
	"deckbox-api/internal/scrapers/deckbox"
)

func main() {
	configPath := flag.String("config", "deckbox.json5", "specify the path to a config file")
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	jsonLogs := flag.Bool("json", false, "Write logs as json.")
	flag.Parse()

	telemetry.InitSlog(*verbose, *jsonLogs)

	ctx := serviceutil.SignalContext()

	cfg, err := configutil.ReadWithDefaults(*configPath, defaultConfig())
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	otel, err := telemetry.Setup(ctx, "deckbox-api", cfg.Telemetry)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer otel.Shutdown(context.Background())

	tel := telemetry.NewSlogAPI(nil)
	telemetry.InstrumentPerfStats(ctx, tel, 30*time.Second)

	clock, err := chrono.NewStandardImpl(cfg.Location)
	if err != nil {
		serviceutil.Fatal("load location", err)
	}

	client, err := deckbox.NewClient(deckbox.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Fetcher: deckbox.NewHttpFetcher(deckbox.HttpFetcherOptions{
			RequestsPerSecond: cfg.RequestsPerSecond,
			Timeout:           cfg.timeout(),
			Tel:               tel,
		}),
		Tel:    tel,
		Chrono: clock,
	})
	if err != nil {
		serviceutil.Fatal("init deckbox client", err)
	}

	db, err := cfg.Cache.OpenDB()
	if err != nil {
		serviceutil.Fatal("open card cache", err)
	}
	defer db.Close()

	cache, err := cardcache.New(ctx, cardcache.Options{
		DB:     db,
		Source: client,
		TTL:    cfg.cacheTTL(),
		Chrono: clock,
		Tel:    tel,
	})
	if err != nil {
		serviceutil.Fatal("init card cache", err)
	}
	go cache.EvictDaemon(ctx, time.Hour)

	router := api.NewRouter(api.Options{
		Scraper: client,
		Cards:   cache,
		Tel:     tel,
	})

	err = serviceutil.StartHttpServer(ctx, cfg.Port, router)
	if err != nil {
		serviceutil.Fatal("http server", err)
	}
}
