package core

import (
	"context"
	"fmt"
	"strings"

	"restaurantcore/internal/analytics"
	"restaurantcore/internal/qrcode"
	"restaurantcore/pkg/domain"
)

// ClearTable frees a table once its current order is finished. The table
// shows as cleaning for a short window afterwards.
func (s *Service) ClearTable(ctx context.Context, tableID string) (domain.Table, Result, error) {
	var cleared domain.Table
	res, err := s.run(ctx, operation{"clear_table", domain.EntityTable, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		table, ok := tx.Tables().Get(tableID)
		if !ok {
			return tableID, domain.NotFoundError{Entity: domain.EntityTable, ID: tableID}
		}
		if table.CurrentOrderID != nil {
			if o, ok := tx.Orders().Get(*table.CurrentOrderID); ok && orderOpen(o) {
				return tableID, fmt.Errorf("%w: order %s is still %s", domain.ErrTableOccupied, o.ID, o.Status)
			}
		}
		now := tx.Now()
		var err error
		cleared, err = tx.Tables().Update(tableID, func(t *domain.Table) error {
			t.Status = domain.TableAvailable
			t.CurrentOrderID = nil
			t.ClearedAt = ptr(now)
			return nil
		})
		return tableID, err
	})
	return cleared, res, err
}

// TableStatuses derives the display status of every table now.
func (s *Service) TableStatuses(ctx context.Context) ([]analytics.TableState, error) {
	var states []analytics.TableState
	now := s.clock.Now()
	err := s.view(ctx, "table_statuses", func(view TransactionView) error {
		states = analytics.TableStates(view.Tables().List(), view.Reservations().List(), view.Orders().List(), now)
		return nil
	})
	return states, err
}

// AddToWaitlist queues a walk-in party and quotes a wait from the parties
// already waiting.
func (s *Service) AddToWaitlist(ctx context.Context, entry domain.WaitlistEntry) (domain.WaitlistEntry, Result, error) {
	var added domain.WaitlistEntry
	res, err := s.run(ctx, operation{"add_to_waitlist", domain.EntityWaitlistEntry, domain.ActionCreate}, func(tx Transaction) (string, error) {
		if strings.TrimSpace(entry.CustomerName) == "" {
			return "", fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
		}
		if entry.PartySize <= 0 {
			return "", fmt.Errorf("%w: party size must be positive", domain.ErrInvalidInput)
		}
		if entry.Priority == "" {
			entry.Priority = domain.PriorityStandard
		}
		entry.Status = domain.WaitlistWaiting
		entry.JoinedAt = tx.Now()
		entry.QuotedWaitMinutes = analytics.QuoteWait(tx.Waitlist().List())
		entry.TableID = nil
		entry.NotifiedAt = nil
		entry.SeatedAt = nil
		entry.RemovedAt = nil
		var err error
		added, err = tx.Waitlist().Create(entry)
		return added.ID, err
	})
	return added, res, err
}

func moveWaitlist(tx Transaction, id string, next domain.WaitlistStatus, apply func(*domain.WaitlistEntry)) (domain.WaitlistEntry, error) {
	return tx.Waitlist().Update(id, func(e *domain.WaitlistEntry) error {
		if err := domain.CheckWaitlistTransition(e.Status, next); err != nil {
			return err
		}
		e.Status = next
		apply(e)
		return nil
	})
}

// NotifyWaitlistCustomer marks a waiting party as notified and raises a
// waitlist notification for the host stand.
func (s *Service) NotifyWaitlistCustomer(ctx context.Context, id string) (domain.WaitlistEntry, Result, error) {
	var notified domain.WaitlistEntry
	res, err := s.run(ctx, operation{"notify_waitlist_customer", domain.EntityWaitlistEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		notified, err = moveWaitlist(tx, id, domain.WaitlistNotified, func(e *domain.WaitlistEntry) {
			e.NotifiedAt = ptr(now)
		})
		if err != nil {
			return id, err
		}
		msg := fmt.Sprintf("%s (party of %d) has been told a table is ready", notified.CustomerName, notified.PartySize)
		return id, notify(tx, domain.NotifyWaitlist, domain.EntityWaitlistEntry, id, "Party notified", msg)
	})
	return notified, res, err
}

// SeatWaitlistCustomer seats a waiting or notified party at a free table large
// enough for it, and marks the table occupied.
func (s *Service) SeatWaitlistCustomer(ctx context.Context, entryID, tableID string) (domain.WaitlistEntry, Result, error) {
	var seated domain.WaitlistEntry
	res, err := s.run(ctx, operation{"seat_waitlist_customer", domain.EntityWaitlistEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		entry, ok := tx.Waitlist().Get(entryID)
		if !ok {
			return entryID, domain.NotFoundError{Entity: domain.EntityWaitlistEntry, ID: entryID}
		}
		table, ok := tx.Tables().Get(tableID)
		if !ok {
			return entryID, domain.NotFoundError{Entity: domain.EntityTable, ID: tableID}
		}
		if entry.PartySize > table.Capacity {
			return entryID, fmt.Errorf("%w: party of %d at table %d seats %d", domain.ErrCapacityExceeded, entry.PartySize, table.Number, table.Capacity)
		}
		if table.Status == domain.TableOccupied {
			return entryID, fmt.Errorf("%w: table %d", domain.ErrTableOccupied, table.Number)
		}
		now := tx.Now()
		var err error
		seated, err = moveWaitlist(tx, entryID, domain.WaitlistSeated, func(e *domain.WaitlistEntry) {
			e.SeatedAt = ptr(now)
			e.TableID = ptr(tableID)
		})
		if err != nil {
			return entryID, err
		}
		_, err = tx.Tables().Update(tableID, func(t *domain.Table) error {
			t.Status = domain.TableOccupied
			t.CurrentOrderID = nil
			t.ClearedAt = nil
			return nil
		})
		return entryID, err
	})
	return seated, res, err
}

// RemoveFromWaitlist drops a party that left without being seated.
func (s *Service) RemoveFromWaitlist(ctx context.Context, id string) (domain.WaitlistEntry, Result, error) {
	var removed domain.WaitlistEntry
	res, err := s.run(ctx, operation{"remove_from_waitlist", domain.EntityWaitlistEntry, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		removed, err = moveWaitlist(tx, id, domain.WaitlistRemoved, func(e *domain.WaitlistEntry) {
			e.RemovedAt = ptr(now)
		})
		return id, err
	})
	return removed, res, err
}

// RecordQRScan counts a scan of an active QR code.
func (s *Service) RecordQRScan(ctx context.Context, id string) (domain.QRCode, Result, error) {
	var scanned domain.QRCode
	res, err := s.run(ctx, operation{"record_qr_scan", domain.EntityQRCode, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		scanned, err = tx.QRCodes().Update(id, func(q *domain.QRCode) error {
			if !q.Active {
				return fmt.Errorf("qr code %s: %w", id, domain.ErrInactive)
			}
			q.Scans++
			q.LastScannedAt = ptr(now)
			return nil
		})
		return id, err
	})
	return scanned, res, err
}

// RenderQRCode returns the PNG image of a QR code, size pixels square. Zero
// selects the default size.
func (s *Service) RenderQRCode(ctx context.Context, id string, size int) ([]byte, error) {
	code, err := Get(ctx, s, domain.EntityQRCode, TransactionView.QRCodes, id)
	if err != nil {
		return nil, err
	}
	return qrcode.PNG(code, size)
}

// MarkNotificationRead marks a notification read. Repeating it keeps the
// first read time.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, Result, error) {
	var read domain.Notification
	res, err := s.run(ctx, operation{"mark_notification_read", domain.EntityNotification, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		read, err = tx.Notifications().Update(id, func(n *domain.Notification) error {
			if !n.Read {
				n.Read = true
				n.ReadAt = ptr(now)
			}
			return nil
		})
		return id, err
	})
	return read, res, err
}

// RespondToFeedback stores the reply to a guest's feedback.
func (s *Service) RespondToFeedback(ctx context.Context, id, response string) (domain.Feedback, Result, error) {
	var answered domain.Feedback
	res, err := s.run(ctx, operation{"respond_to_feedback", domain.EntityFeedback, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		if strings.TrimSpace(response) == "" {
			return id, fmt.Errorf("%w: response is empty", domain.ErrInvalidInput)
		}
		now := tx.Now()
		var err error
		answered, err = tx.Feedback().Update(id, func(f *domain.Feedback) error {
			f.Status = domain.FeedbackResponded
			f.Response = response
			f.RespondedAt = ptr(now)
			return nil
		})
		return id, err
	})
	return answered, res, err
}
