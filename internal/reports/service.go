package reports

import (
	"context"
	"database/sql"
)

// ReportStore is what the service needs from the aggregate queries; *Store
// implements it, tests substitute a fake.
type ReportStore interface {
	MostIssuedBooks(ctx context.Context) ([]BookIssueStat, error)
	MonthlyIssueCounts(ctx context.Context) ([]MonthlyStat, error)
	MemberActivity(ctx context.Context) ([]MemberActivityStat, error)
}

type Service struct {
	store ReportStore
}

func NewService(db *sql.DB) *Service { return &Service{store: NewStore(db)} }

// MostIssuedBooks ranks books by open-loan count, descending. An empty store
// yields an empty list, never an error. A positive limit truncates the
// ranking (the dashboards show the top 5).
func (s *Service) MostIssuedBooks(ctx context.Context, limit int) ([]BookIssueStat, error) {
	stats, err := s.store.MostIssuedBooks(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []BookIssueStat{}
	}
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// MonthlyIssueCounts reports the six most recent months in chronological
// order. The store returns them newest first; reversing here keeps the SQL
// LIMIT anchored on the latest months.
func (s *Service) MonthlyIssueCounts(ctx context.Context) ([]MonthlyStat, error) {
	stats, err := s.store.MonthlyIssueCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MonthlyStat, 0, len(stats))
	for i := len(stats) - 1; i >= 0; i-- {
		out = append(out, stats[i])
	}
	return out, nil
}

// MemberActivity ranks the five most active members, descending.
func (s *Service) MemberActivity(ctx context.Context) ([]MemberActivityStat, error) {
	stats, err := s.store.MemberActivity(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []MemberActivityStat{}
	}
	return stats, nil
}
