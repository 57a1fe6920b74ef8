package service

import (
	"context" // Request scoped cancellation
	"sort"    // Ordering buckets
	"time"    // Month boundaries

	"vocab_system/internal/domain" // Importing domain models

	"github.com/samber/lo" // Collection helpers
)

// CatalogCounter reports catalog sizes
type CatalogCounter interface {
	CountCategories(ctx context.Context) (int64, error)
	CountVocab(ctx context.Context) (int64, error)
}

// SavedCounter reports the number of saved words
type SavedCounter interface {
	Count(ctx context.Context) (int64, error)
}

// RegistrationSource lists registration times in a range
type RegistrationSource interface {
	RegisteredBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// StatsService builds the admin dashboard summary
type StatsService struct {
	catalog CatalogCounter
	saved   SavedCounter
	users   RegistrationSource
	clock   Clock
}

// NewStatsService creates a stats service
func NewStatsService(catalog CatalogCounter, saved SavedCounter, users RegistrationSource) *StatsService {
	return &StatsService{catalog: catalog, saved: saved, users: users, clock: utcNow}
}

// WithClock replaces the service clock
func (s *StatsService) WithClock(clock Clock) *StatsService {
	s.clock = clock
	return s
}

// AdminStats returns catalog totals and registrations per day for the current UTC month
func (s *StatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	categories, err := s.catalog.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	vocab, err := s.catalog.CountVocab(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.saved.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	registered, err := s.users.RegisteredBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	byDay := lo.GroupBy(registered, func(t time.Time) int { return t.UTC().Day() })
	buckets := lo.MapToSlice(byDay, func(day int, ts []time.Time) domain.DayCount {
		return domain.DayCount{Day: day, Count: int64(len(ts))}
	})
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day < buckets[j].Day })

	return &domain.AdminStats{
		TotalCategories: categories,
		TotalVocab:      vocab,
		TotalSavedWords: saved,
		CurrentMonth:    monthStart.Format("2006-01"),
		UserStats:       buckets,
	}, nil
}
