package nasdaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"nordicstocks/internal/provider"
	"nordicstocks/internal/quote"
)

const (
	defaultURL = "https://api.nasdaq.com/api/nordic/screener/shares"

	// pageSize rows are requested per page; a shorter page marks the end.
	pageSize = 100
	// maxPages is a safety valve against an upstream that paginates forever,
	// not a tuning knob.
	maxPages = 100
)

// Config controls the Nasdaq Nordic screener provider.
type Config struct {
	Name    string
	URL     string
	Headers map[string]string // optional extra headers sent with each page request
}

// Provider walks the paginated Nasdaq Nordic main-market listing and returns
// the accumulated rows in page order.
type Provider struct {
	cfg    Config
	client provider.Doer
}

func New(cfg Config, client provider.Doer) *Provider {
	if cfg.Name == "" {
		cfg.Name = "NasdaqNordic"
	}
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	return &Provider{cfg: cfg, client: client}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Fetch retrieves every listing page until the upstream signals end of data
// or a page bound is reached. On any failure the whole fetch is aborted and
// no partial rows are returned. Cancellation is checked before each page
// request and always surfaces as the context's own error.
func (p *Provider) Fetch(ctx context.Context) ([]quote.Quote, error) {
	var all []quote.Quote
	totalPages := 0 // 0 until the upstream has stated one

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		listing, err := p.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, listing.Rows...)
		if totalPages == 0 && listing.TotalPages > 0 {
			totalPages = listing.TotalPages
		}
		if stopAfter(page, len(listing.Rows), totalPages) != stopNone {
			break
		}
	}
	return all, nil
}

// stopReason names the three independent ways page iteration ends.
type stopReason int

const (
	stopNone      stopReason = iota
	stopEmptyPage            // no rows returned: normal end of data
	stopShortPage            // fewer rows than a full page: final page heuristic
	stopPageBound            // reached min(stated total pages, maxPages)
)

// stopAfter decides whether iteration ends once the given page's row count
// is known. totalPages is 0 while the upstream has not stated one; a stated
// count never overrides the maxPages safety valve.
func stopAfter(page, rows, totalPages int) stopReason {
	if rows == 0 {
		return stopEmptyPage
	}
	if rows < pageSize {
		return stopShortPage
	}
	bound := maxPages
	if totalPages > 0 && totalPages < bound {
		bound = totalPages
	}
	if page >= bound {
		return stopPageBound
	}
	return stopNone
}

type screenerResponse struct {
	Data struct {
		InstrumentListing instrumentListing `json:"instrumentListing"`
	} `json:"data"`
}

type instrumentListing struct {
	Rows         []quote.Quote `json:"rows"`
	TotalRecords int           `json:"totalRecords"`
	TotalPages   int           `json:"totalPages"`
}

func (p *Provider) fetchPage(ctx context.Context, page int) (*instrumentListing, error) {
	q := url.Values{}
	q.Set("category", "MAIN_MARKET")
	q.Set("tableonly", "false")
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(pageSize))
	q.Set("lang", "en")
	u := p.cfg.URL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}

	res, err := p.client.Do(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FetchError{URL: u, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, &FetchError{URL: u, Err: fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, b)}
	}

	var body screenerResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ParseError{Err: err}
	}
	return &body.Data.InstrumentListing, nil
}
