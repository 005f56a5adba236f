package deckbox

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"deckbox-api/internal/components/assert"
	"deckbox-api/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const report_fetcher_fetch = "fetcher.fetch"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher retrieves one upstream page and parses it.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, link string) (*goquery.Document, error)
}

type HttpFetcherOptions struct {
	// 0 disables the limiter
	RequestsPerSecond float64
	// 0 leaves the http client default (no timeout), bound latency with ctx instead
	Timeout   time.Duration
	UserAgent string
	Tel       telemetry.API
}

// HttpFetcher is safe for concurrent use, it holds no per-request state.
type HttpFetcher struct {
	http *resty.Client
	tel  telemetry.API
}

func NewHttpFetcher(opts HttpFetcherOptions) *HttpFetcher {
	assert.NotNil(opts.Tel)
	assert.NonNegative(opts.RequestsPerSecond, "requests per second")
	assert.NonNegative(opts.Timeout, "timeout")
	tel := telemetry.NewScopedAPI("fetcher", opts.Tel)

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		// burst of 1 so requests are spread out rather than dropped
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "deckbox/http", tel)

	return &HttpFetcher{http: client, tel: tel}
}

func (f *HttpFetcher) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		f.tel.ReportBroken(report_fetcher_fetch, fmt.Errorf("request: %w", err), link)
		return nil, &FetchError{URL: link, Err: err}
	}
	if !res.IsSuccess() {
		f.tel.ReportWarning(report_fetcher_fetch, res.Status(), link)
		return nil, &FetchError{
			URL:        link,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		f.tel.ReportBroken(report_fetcher_fetch, fmt.Errorf("parse: %w", err), link)
		return nil, &FetchError{URL: link, Err: fmt.Errorf("parse html: %w", err)}
	}

	doc.Url, _ = url.Parse(link)
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		// after redirects
		doc.Url = res.RawResponse.Request.URL
	}
	return doc, nil
}
