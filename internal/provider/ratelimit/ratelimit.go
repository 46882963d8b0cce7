package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"time"

	"nordicstocks/internal/provider"
)

// MinInterval wraps a Doer and enforces a minimum time between HTTP
// exchanges. Concurrent calls wait until the interval has elapsed since the
// last exchange, or return early if the context is canceled.
type MinInterval struct {
	Next     provider.Doer
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (m *MinInterval) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if m.Interval > 0 {
		// simple gate: ensure at least Interval since last
		m.mu.Lock()
		wait := time.Until(m.last.Add(m.Interval))
		m.mu.Unlock()
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	res, err := m.Next.Do(ctx, req)
	if m.Interval > 0 {
		m.mu.Lock()
		m.last = time.Now()
		m.mu.Unlock()
	}
	return res, err
}
