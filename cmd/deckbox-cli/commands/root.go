package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"deckbox-api/internal/components/chrono"
	"deckbox-api/internal/components/configutil"
	"deckbox-api/internal/components/telemetry"
	"deckbox-api/internal/scrapers/deckbox"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	Location          string  `json:"location"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

var (
	client   *deckbox.Client
	verbose  bool
	location string
)

var rootCmd = &cobra.Command{
	Use:   "deckbox-cli",
	Short: "deckbox-cli scrapes deckbox.org and prints what it finds.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			telemetry.InitSlog(true, false)
		}

		cfg := Config{RequestsPerSecond: 2}
		path, err := configutil.FindRecursively("deckbox.json5")
		if err == nil {
			cfg, err = configutil.ReadWithDefaults(path, cfg)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
		if location != "" {
			cfg.Location = location
		}

		clock, err := chrono.NewStandardImpl(cfg.Location)
		if err != nil {
			return fmt.Errorf("load location: %w", err)
		}

		tel := telemetry.NewSlogAPI(slog.Default())
		client, err = deckbox.NewClient(deckbox.ClientOptions{
			BaseUrl: cfg.BaseUrl,
			Fetcher: deckbox.NewHttpFetcher(deckbox.HttpFetcherOptions{
				RequestsPerSecond: cfg.RequestsPerSecond,
				Timeout:           30 * time.Second,
				Tel:               tel,
			}),
			Tel:    tel,
			Chrono: clock,
		})
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&location, "location", "", "IANA time zone for dates, overrides the config.")
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	t.SetStyle(table.StyleRounded)
	return t
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
