package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nordicstocks/internal/cache"
	"nordicstocks/internal/httpx"
	"nordicstocks/internal/provider"
	"nordicstocks/internal/quote"
)

const (
	defaultBaseURL = "https://cdn.opennordicstocks.net"

	cacheKeyPrefix = "stock-quotes-"
	dateLayout     = "2006-01-02"
)

// Client serves the published quote snapshot for a calendar date, collapsing
// repeat same-day lookups onto one cached upstream fetch.
type Client struct {
	baseURL    string
	httpClient provider.Doer
	store      *cache.Store[[]quote.Quote]
	ttl        cache.Options
}

// Option is a configuration option for the snapshot client.
type Option func(*Client)

// WithBaseURL sets the CDN base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for snapshot fetches.
func WithHTTPClient(d provider.Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithTTL sets the shared (global staleness bound) and local (process-local
// staleness bound) cache horizons.
func WithTTL(shared, local time.Duration) Option {
	return func(c *Client) {
		c.ttl = cache.Options{SharedTTL: shared, LocalTTL: local}
	}
}

func New(options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpx.New(30 * time.Second),
		store:      cache.New[[]quote.Quote](),
		ttl:        cache.Options{SharedTTL: time.Hour, LocalTTL: 15 * time.Minute},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Quotes returns the quote list for at's calendar date, or the latest
// published snapshot when at is the zero time. Lookups for the same calendar
// date share one cache entry regardless of time of day; concurrent misses
// for one date trigger exactly one upstream fetch.
func (c *Client) Quotes(ctx context.Context, at time.Time) ([]quote.Quote, error) {
	day := at
	if day.IsZero() {
		day = time.Now().UTC()
	}
	key := cacheKeyPrefix + day.Format(dateLayout)

	return c.store.GetOrCreate(ctx, key, c.ttl, func(ctx context.Context) ([]quote.Quote, error) {
		return c.fetchSnapshot(ctx, at)
	})
}

func (c *Client) snapshotURL(at time.Time) string {
	if at.IsZero() {
		return c.baseURL + "/data/latest.json"
	}
	return fmt.Sprintf("%s/data/%s.json", c.baseURL, at.Format(dateLayout))
}

func (c *Client) fetchSnapshot(ctx context.Context, at time.Time) ([]quote.Quote, error) {
	u := c.snapshotURL(at)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &RetrievalError{Resource: u, Reason: ReasonFetch, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RetrievalError{Resource: u, Reason: ReasonFetch, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &RetrievalError{Resource: u, Reason: ReasonFetch, Err: fmt.Errorf("unexpected status code: %d", res.StatusCode)}
	}

	var rows []quote.Quote
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RetrievalError{Resource: u, Reason: ReasonParse, Err: err}
	}
	if rows == nil {
		// A body of literal null parses fine but carries nothing.
		return nil, &RetrievalError{Resource: u, Reason: ReasonNoData}
	}
	return rows, nil
}
