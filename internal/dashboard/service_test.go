package dashboard

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	calls   atomic.Int64
	release chan struct{}
	summary Summary
}

func (r *countingRepo) Summary(ctx context.Context, year, month int) (Summary, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	s := r.summary
	s.Year = year
	s.Month = month
	return s, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMiniredisCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl), mr
}

func TestSummaryServedFromCacheOnSecondCall(t *testing.T) {
	ctx := context.Background()
	cache, _ := newMiniredisCache(t, time.Minute)
	repo := &countingRepo{summary: Summary{ActiveStaff: 4, MonthPayroll: 200000}}
	svc := NewService(repo, cache, testLogger())

	first, err := svc.SummaryFor(ctx, 2024, 5)
	require.NoError(t, err)
	require.Equal(t, 4, first.ActiveStaff)
	require.Equal(t, int64(1), repo.calls.Load())

	second, err := svc.SummaryFor(ctx, 2024, 5)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int64(1), repo.calls.Load(), "second read hits the cache")
}

func TestSummaryRebuildsAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newMiniredisCache(t, time.Minute)
	repo := &countingRepo{summary: Summary{ActiveStaff: 4}}
	svc := NewService(repo, cache, testLogger())

	_, err := svc.SummaryFor(ctx, 2024, 5)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 2024, 5))

	_, err = svc.SummaryFor(ctx, 2024, 5)
	require.NoError(t, err)
	require.Equal(t, int64(2), repo.calls.Load())
}

func TestConcurrentRebuildsCollapse(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{summary: Summary{ActiveStaff: 4}, release: make(chan struct{})}
	// nil client: every read is a cache miss, so collapsing falls entirely
	// on the singleflight group.
	svc := NewService(repo, NewCache(nil, 0), testLogger())

	const callers = 5
	var wg sync.WaitGroup
	results := make([]Summary, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.SummaryFor(ctx, 2024, 5)
		}(i)
	}

	// Let every caller queue up behind the in-flight query before it returns.
	for repo.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	require.Equal(t, int64(1), repo.calls.Load(), "concurrent callers share one query")
	for i, s := range results {
		require.NoError(t, errs[i])
		require.Equal(t, 4, s.ActiveStaff)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, mr := newMiniredisCache(t, time.Minute)

	_, err := cache.GetSummary(ctx, 2024, 5)
	require.ErrorIs(t, err, ErrCacheMiss)

	want := Summary{ActiveStaff: 3, MonthPurchases: 120000, MonthPayroll: 450000.5, MonthPayments: 3, Year: 2024, Month: 5}
	require.NoError(t, cache.SetSummary(ctx, want))

	got, err := cache.GetSummary(ctx, 2024, 5)
	require.NoError(t, err)
	require.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetSummary(ctx, 2024, 5)
	require.ErrorIs(t, err, ErrCacheMiss, "entries expire with the TTL")
}

func TestCacheNilClientDegrades(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(nil, time.Minute)

	require.NoError(t, cache.SetSummary(ctx, Summary{Year: 2024, Month: 5}))
	_, err := cache.GetSummary(ctx, 2024, 5)
	require.ErrorIs(t, err, ErrCacheMiss)
	require.NoError(t, cache.Invalidate(ctx, 2024, 5))
}
