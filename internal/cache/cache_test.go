package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptions_Lifetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Options
		want time.Duration
	}{
		{name: "local only", opt: Options{LocalTTL: time.Minute}, want: time.Minute},
		{name: "shared only", opt: Options{SharedTTL: time.Hour}, want: time.Hour},
		{name: "local below shared", opt: Options{SharedTTL: time.Hour, LocalTTL: 15 * time.Minute}, want: 15 * time.Minute},
		{name: "shared below local", opt: Options{SharedTTL: time.Minute, LocalTTL: time.Hour}, want: time.Minute},
		{name: "both zero disables", opt: Options{}, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, tt.opt.lifetime())
		})
	}
}

func TestGetOrCreate_HitWithinTTL(t *testing.T) {
	t.Parallel()

	s := New[int]()
	calls := 0
	factory := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}
	opt := Options{LocalTTL: time.Minute}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrCreate(context.Background(), "k", opt, factory)
		require.NoError(t, err)
		require.Equal(t, 42, v)
	}
	require.Equal(t, 1, calls)
}

func TestGetOrCreate_ExpiryRecomputes(t *testing.T) {
	t.Parallel()

	s := New[int]()
	calls := 0
	factory := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}
	opt := Options{LocalTTL: 10 * time.Millisecond}

	v, err := s.GetOrCreate(context.Background(), "k", opt, factory)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	time.Sleep(20 * time.Millisecond)

	v, err = s.GetOrCreate(context.Background(), "k", opt, factory)
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, 2, calls)
}

func TestGetOrCreate_ConcurrentMissesShareOneFlight(t *testing.T) {
	t.Parallel()

	s := New[int]()
	var calls atomic.Int32
	factory := func(context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return 7, nil
	}
	opt := Options{LocalTTL: time.Minute}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetOrCreate(context.Background(), "k", opt, factory)
			require.NoError(t, err)
			require.Equal(t, 7, v)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}

func TestGetOrCreate_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	s := New[int]()
	boom := errors.New("boom")
	calls := 0
	factory := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 9, nil
	}
	opt := Options{LocalTTL: time.Minute}

	_, err := s.GetOrCreate(context.Background(), "k", opt, factory)
	require.ErrorIs(t, err, boom)

	v, err := s.GetOrCreate(context.Background(), "k", opt, factory)
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, 2, calls)
}

func TestGetOrCreate_DistinctKeys(t *testing.T) {
	t.Parallel()

	s := New[string]()
	opt := Options{LocalTTL: time.Minute}

	a, err := s.GetOrCreate(context.Background(), "a", opt, func(context.Context) (string, error) { return "alpha", nil })
	require.NoError(t, err)
	b, err := s.GetOrCreate(context.Background(), "b", opt, func(context.Context) (string, error) { return "beta", nil })
	require.NoError(t, err)

	require.Equal(t, "alpha", a)
	require.Equal(t, "beta", b)
}

func TestGetOrCreate_CancelledBeforeCompute(t *testing.T) {
	t.Parallel()

	s := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetOrCreate(ctx, "k", Options{LocalTTL: time.Minute}, func(context.Context) (int, error) {
		t.Fatal("factory must not run on a cancelled context")
		return 0, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetOrCreate_ZeroTTLNeverStores(t *testing.T) {
	t.Parallel()

	s := New[int]()
	calls := 0
	factory := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := s.GetOrCreate(context.Background(), "k", Options{}, factory)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = s.GetOrCreate(context.Background(), "k", Options{}, factory)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}
