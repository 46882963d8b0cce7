package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Options sets the two expiry horizons for a stored entry. SharedTTL bounds
// how stale a value may ever get; LocalTTL bounds staleness within this
// process. With a purely in-process store the effective lifetime is the
// smaller of the two, but both remain configurable since they express
// different guarantees. A horizon <= 0 disables caching on that axis.
type Options struct {
	SharedTTL time.Duration
	LocalTTL  time.Duration
}

func (o Options) lifetime() time.Duration {
	ttl := o.LocalTTL
	if o.SharedTTL > 0 && (ttl <= 0 || o.SharedTTL < ttl) {
		ttl = o.SharedTTL
	}
	return ttl
}

type entry[T any] struct {
	value T
	until time.Time
}

// Store is an in-process single-flight TTL cache. Concurrent GetOrCreate
// calls for the same key collapse into one factory invocation and every
// caller observes its single result. Errors are not cached.
type Store[T any] struct {
	mu    sync.RWMutex
	sf    singleflight.Group
	items map[string]entry[T]
}

func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]entry[T])}
}

// GetOrCreate returns the live value stored under key, or invokes factory to
// compute and store one. The first caller's context is the one the factory
// observes; cancellation surfaces as the context's own error, never wrapped.
func (s *Store[T]) GetOrCreate(ctx context.Context, key string, opt Options, factory func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := s.get(key); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		// Double-check: another flight may have stored a value between the
		// read above and acquiring this one.
		if v, ok := s.get(key); ok {
			return v, nil
		}
		v, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		s.put(key, v, opt.lifetime())
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (s *Store[T]) get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	if !ok || time.Now().After(e.until) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) put(key string, v T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.items[key] = entry[T]{value: v, until: time.Now().Add(ttl)}
	s.mu.Unlock()
}
