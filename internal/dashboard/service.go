package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service serves dashboard summaries from cache, rebuilding on miss.
// Concurrent rebuilds for the same period collapse into one query.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewService constructs the dashboard service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// CurrentSummary returns the summary for the current month.
func (s *Service) CurrentSummary(ctx context.Context) (Summary, error) {
	now := s.now()
	return s.SummaryFor(ctx, now.Year(), int(now.Month()))
}

// SummaryFor returns the summary for a specific period.
func (s *Service) SummaryFor(ctx context.Context, year, month int) (Summary, error) {
	if cached, err := s.cache.GetSummary(ctx, year, month); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) && s.logger != nil {
		s.logger.Warn("dashboard cache read", slog.Any("error", err))
	}

	key := fmt.Sprintf("%04d-%02d", year, month)
	value, err, _ := s.group.Do(key, func() (any, error) {
		summary, err := s.repo.Summary(ctx, year, month)
		if err != nil {
			return Summary{}, err
		}
		if err := s.cache.SetSummary(ctx, summary); err != nil && s.logger != nil {
			s.logger.Warn("dashboard cache write", slog.Any("error", err))
		}
		return summary, nil
	})
	if err != nil {
		return Summary{}, err
	}
	return value.(Summary), nil
}
