package analytics

import (
	"time"

	"restaurantcore/pkg/domain"
)

// WaitPerParty is the quoted wait added for each active party ahead.
const WaitPerParty = 15 * time.Minute

// TableState pairs a table with its derived display status.
type TableState struct {
	Table  domain.Table       `json:"table"`
	Status domain.TableStatus `json:"status"`
}

// TableStates derives the display status of every table at now.
func TableStates(tables []domain.Table, reservations []domain.Reservation, orders []domain.Order, now time.Time) []TableState {
	byID := IndexOrders(orders)
	out := make([]TableState, 0, len(tables))
	for _, t := range tables {
		out = append(out, TableState{Table: t, Status: domain.DeriveTableStatus(t, now, reservations, byID)})
	}
	return out
}

// QuoteWait estimates the wait in minutes for a party joining behind the
// currently waiting or notified entries.
func QuoteWait(entries []domain.WaitlistEntry) int {
	ahead := 0
	for _, e := range entries {
		if e.Status == domain.WaitlistWaiting || e.Status == domain.WaitlistNotified {
			ahead++
		}
	}
	return int((time.Duration(ahead+1) * WaitPerParty).Minutes())
}
