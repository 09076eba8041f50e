package service

import (
	"context"
	"time"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/repository"
)

// StatsService computes aggregate reporting figures for supervisors.
type StatsService struct {
	submissions repository.SubmissionRepository
}

// NewStatsService constructs the service.
func NewStatsService(submissions repository.SubmissionRepository) *StatsService {
	return &StatsService{submissions: submissions}
}

// Overview returns counters across all submissions. Today's count uses the
// current UTC calendar day.
func (s *StatsService) Overview(ctx context.Context) (*domain.VisitStats, error) {
	dayStart, dayEnd := utcDayBounds(time.Now())
	return s.submissions.Stats(ctx, dayStart, dayEnd)
}

// utcDayBounds returns the half-open [start, end) interval of the UTC
// calendar day containing t.
func utcDayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
