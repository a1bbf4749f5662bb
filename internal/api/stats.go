package api

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// StatsService computes the dashboard counters. The backend has no stats
// endpoint, so the numbers come from the list endpoints, fetched
// concurrently.
type StatsService struct {
	users      *UserService
	cards      *CardService
	attendance *AttendanceService
}

// Collect fetches users, cards, attendance and the monthly total in
// parallel and aggregates them. The first failing fetch cancels the rest.
func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	var (
		users   []User
		cards   []Card
		records []AttendanceRecord
		monthly int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.cards.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendance.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.attendance.Monthly(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:        len(users),
		TotalCards:        len(cards),
		MonthlyAttendance: monthly,
	}
	for _, u := range users {
		if u.Status == "active" {
			stats.ActiveUsers++
		}
	}
	today := time.Now().Format("2006-01-02")
	for _, r := range records {
		if strings.HasPrefix(r.Time, today) {
			stats.TodayAttendance++
		}
	}
	return stats, nil
}
