package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

// latestOpenEntry returns the open time-clock entry with the latest clock-in
// for userID. Equal clock-in times resolve to the later inserted entry.
func latestOpenEntry(entries []domain.TimeClockEntry, userID string) (domain.TimeClockEntry, bool) {
	var (
		latest domain.TimeClockEntry
		found  bool
	)
	for _, e := range entries {
		if e.UserID != userID || !e.Open() {
			continue
		}
		if !found || !e.ClockIn.Before(latest.ClockIn) {
			latest, found = e, true
		}
	}
	return latest, found
}

func openShift(tx Transaction, userID string) (domain.TimeClockEntry, error) {
	entry, ok := latestOpenEntry(tx.TimeClock().List(), userID)
	if !ok {
		return domain.TimeClockEntry{}, fmt.Errorf("user %s: %w", userID, domain.ErrNoOpenShift)
	}
	return entry, nil
}

// ClockIn opens a new time-clock entry for userID at the transaction time.
func (s *Service) ClockIn(ctx context.Context, userID string) (domain.TimeClockEntry, Result, error) {
	var entry domain.TimeClockEntry
	res, err := s.run(ctx, operation{"clock_in", domain.EntityTimeClockEntry, domain.ActionCreate}, func(tx Transaction) (string, error) {
		if userID == "" {
			return "", fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
		}
		var err error
		entry, err = tx.TimeClock().Create(domain.TimeClockEntry{UserID: userID, ClockIn: tx.Now()})
		return entry.ID, err
	})
	return entry, res, err
}

// ClockOut closes the user's latest open entry, ending any running break and
// deriving total hours. It fails with ErrNoOpenShift when nothing is open.
func (s *Service) ClockOut(ctx context.Context, userID string) (domain.TimeClockEntry, Result, error) {
	var entry domain.TimeClockEntry
	res, err := s.run(ctx, operation{"clock_out", domain.EntityTimeClockEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		open, err := openShift(tx, userID)
		if err != nil {
			return "", err
		}
		now := tx.Now()
		entry, err = tx.TimeClock().Update(open.ID, func(e *domain.TimeClockEntry) error {
			e.CloseAt(now)
			return nil
		})
		return open.ID, err
	})
	return entry, res, err
}

// StartBreak starts a break on the user's open shift.
func (s *Service) StartBreak(ctx context.Context, userID string) (domain.TimeClockEntry, Result, error) {
	var entry domain.TimeClockEntry
	res, err := s.run(ctx, operation{"start_break", domain.EntityTimeClockEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		open, err := openShift(tx, userID)
		if err != nil {
			return "", err
		}
		if open.OnBreak() {
			return open.ID, fmt.Errorf("user %s: %w", userID, domain.ErrBreakInProgress)
		}
		now := tx.Now()
		entry, err = tx.TimeClock().Update(open.ID, func(e *domain.TimeClockEntry) error {
			e.BreakStart = ptr(now)
			e.BreakEnd = nil
			return nil
		})
		return open.ID, err
	})
	return entry, res, err
}

// EndBreak ends the running break on the user's open shift and adds its
// length to the entry's break minutes.
func (s *Service) EndBreak(ctx context.Context, userID string) (domain.TimeClockEntry, Result, error) {
	var entry domain.TimeClockEntry
	res, err := s.run(ctx, operation{"end_break", domain.EntityTimeClockEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		open, err := openShift(tx, userID)
		if err != nil {
			return "", err
		}
		if !open.OnBreak() {
			return open.ID, fmt.Errorf("user %s: %w", userID, domain.ErrNoActiveBreak)
		}
		now := tx.Now()
		entry, err = tx.TimeClock().Update(open.ID, func(e *domain.TimeClockEntry) error {
			e.EndBreakAt(now)
			return nil
		})
		return open.ID, err
	})
	return entry, res, err
}
