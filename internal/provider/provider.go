package provider

import (
	"context"
	"net/http"

	"nordicstocks/internal/quote"
)

// Doer issues a single HTTP exchange. *httpx.Client satisfies it, as do the
// pacing decorators in the ratelimit package.
//
//go:generate mockgen -package=nasdaq_test -destination=nasdaq/mock_provider_test.go -source=provider.go
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Provider produces the full quote listing in one call.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]quote.Quote, error)
}
