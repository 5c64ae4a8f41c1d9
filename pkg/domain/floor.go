package domain

import (
	"fmt"
	"time"
)

// TableStatus is the displayed state of a dining table.
type TableStatus string

// Table statuses. Only available and occupied are stored; the rest are derived
// by DeriveTableStatus.
const (
	TableAvailable      TableStatus = "available"
	TableOccupied       TableStatus = "occupied"
	TableReserved       TableStatus = "reserved"
	TableCleaning       TableStatus = "cleaning"
	TableNeedsAttention TableStatus = "needs_attention"
)

// Floor timing windows used when deriving table status.
const (
	ReservationHoldWindow = 60 * time.Minute
	CleaningWindow        = 10 * time.Minute
	AttentionAfter        = 90 * time.Minute
)

// Table is a seating position on the floor.
type Table struct {
	Base
	Number         int         `json:"number"`
	Capacity       int         `json:"capacity"`
	Section        string      `json:"section,omitempty"`
	LocationID     string      `json:"location_id,omitempty"`
	Status         TableStatus `json:"status"`
	CurrentOrderID *string     `json:"current_order_id"`
	ClearedAt      *time.Time  `json:"cleared_at"`
}

// ReservationStatus tracks a booking.
type ReservationStatus string

// Reservation statuses.
const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// Reservation is a booking for a party at a given time.
type Reservation struct {
	Base
	CustomerName    string            `json:"customer_name"`
	CustomerID      *string           `json:"customer_id"`
	Phone           string            `json:"phone,omitempty"`
	Email           string            `json:"email,omitempty"`
	PartySize       int               `json:"party_size"`
	TableID         *string           `json:"table_id"`
	StartsAt        time.Time         `json:"starts_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          ReservationStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
}

// WaitlistStatus tracks a walk-in party waiting for a table.
type WaitlistStatus string

// Waitlist statuses. Seated and removed are terminal.
const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistSeated   WaitlistStatus = "seated"
	WaitlistRemoved  WaitlistStatus = "removed"
)

// WaitlistPriority orders parties of equal arrival.
type WaitlistPriority string

// Waitlist priority tiers.
const (
	PriorityStandard WaitlistPriority = "standard"
	PriorityVIP      WaitlistPriority = "vip"
	PriorityAccess   WaitlistPriority = "accessibility"
)

// WaitlistEntry is a party waiting to be seated.
type WaitlistEntry struct {
	Base
	CustomerName      string           `json:"customer_name"`
	Phone             string           `json:"phone,omitempty"`
	PartySize         int              `json:"party_size"`
	PreferredTime     *time.Time       `json:"preferred_time"`
	Priority          WaitlistPriority `json:"priority"`
	Status            WaitlistStatus   `json:"status"`
	QuotedWaitMinutes int              `json:"quoted_wait_minutes"`
	TableID           *string          `json:"table_id"`
	JoinedAt          time.Time        `json:"joined_at"`
	NotifiedAt        *time.Time       `json:"notified_at"`
	SeatedAt          *time.Time       `json:"seated_at"`
	RemovedAt         *time.Time       `json:"removed_at"`
}

var waitlistTransitions = map[WaitlistStatus][]WaitlistStatus{
	WaitlistWaiting:  {WaitlistNotified, WaitlistSeated, WaitlistRemoved},
	WaitlistNotified: {WaitlistSeated, WaitlistRemoved},
}

// CheckWaitlistTransition validates a waitlist status change.
func CheckWaitlistTransition(from, next WaitlistStatus) error {
	if from == next {
		return nil
	}
	for _, allowed := range waitlistTransitions[from] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: waitlist entry cannot move from %s to %s", ErrInvalidTransition, from, next)
}

// DeriveTableStatus computes the displayed table status at now. Stored
// occupancy wins over reservation holds; an occupied table escalates to
// needs_attention when its current order is ready or has been open too long.
func DeriveTableStatus(t Table, now time.Time, reservations []Reservation, orders map[string]Order) TableStatus {
	if t.Status == TableOccupied {
		if t.CurrentOrderID != nil {
			if o, ok := orders[*t.CurrentOrderID]; ok {
				if o.Status == OrderReady {
					return TableNeedsAttention
				}
				open := o.Status != OrderServed && o.Status != OrderCancelled && o.Status != OrderRefunded
				if open && now.Sub(o.OrderTime) > AttentionAfter {
					return TableNeedsAttention
				}
			}
		}
		return TableOccupied
	}
	if t.ClearedAt != nil && now.Sub(*t.ClearedAt) < CleaningWindow && !now.Before(*t.ClearedAt) {
		return TableCleaning
	}
	for _, r := range reservations {
		if r.TableID == nil || *r.TableID != t.ID || r.Status != ReservationConfirmed {
			continue
		}
		until := r.StartsAt.Sub(now)
		if until >= 0 && until <= ReservationHoldWindow {
			return TableReserved
		}
	}
	return TableAvailable
}

// QRCodeKind identifies what a QR code links to.
type QRCodeKind string

// QR code kinds.
const (
	QRMenu     QRCodeKind = "menu"
	QRTable    QRCodeKind = "table"
	QRFeedback QRCodeKind = "feedback"
	QRPayment  QRCodeKind = "payment"
)

// QRCode is a printable code placed on a table or marketing material.
type QRCode struct {
	Base
	Label         string     `json:"label"`
	Kind          QRCodeKind `json:"kind"`
	URL           string     `json:"url"`
	TableID       *string    `json:"table_id"`
	Active        bool       `json:"active"`
	Scans         int        `json:"scans"`
	LastScannedAt *time.Time `json:"last_scanned_at"`
}

// FeedbackStatus tracks whether feedback has been answered.
type FeedbackStatus string

// Feedback statuses.
const (
	FeedbackNew       FeedbackStatus = "new"
	FeedbackResponded FeedbackStatus = "responded"
)

// Feedback is a guest's rating and comment.
type Feedback struct {
	Base
	CustomerID  *string        `json:"customer_id"`
	OrderID     *string        `json:"order_id"`
	Rating      int            `json:"rating"`
	Category    string         `json:"category,omitempty"`
	Comment     string         `json:"comment,omitempty"`
	Status      FeedbackStatus `json:"status"`
	Response    string         `json:"response,omitempty"`
	RespondedAt *time.Time     `json:"responded_at"`
}

// NotificationKind classifies staff notifications.
type NotificationKind string

// Notification kinds.
const (
	NotifyLowStock   NotificationKind = "low_stock"
	NotifyWaitlist   NotificationKind = "waitlist"
	NotifyOrderReady NotificationKind = "order_ready"
	NotifySystem     NotificationKind = "system"
)

// Notification is a message surfaced to staff.
type Notification struct {
	Base
	Kind     NotificationKind `json:"kind"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Entity   EntityType       `json:"entity,omitempty"`
	EntityID string           `json:"entity_id,omitempty"`
	Read     bool             `json:"read"`
	ReadAt   *time.Time       `json:"read_at"`
}
