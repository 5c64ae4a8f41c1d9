package domain

import (
	"fmt"
	"time"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

// Canonical order statuses. Served ends the kitchen flow; cancelled and
// refunded end the payment flow.
const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// PaymentStatus tracks settlement of an order.
type PaymentStatus string

// Canonical payment statuses.
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderType distinguishes dine-in orders from counter and delivery orders.
type OrderType string

// Supported order types.
const (
	OrderDineIn       OrderType = "dine_in"
	OrderTakeout      OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
)

// ItemStatus tracks kitchen progress of a single order line.
type ItemStatus string

// Per-line kitchen statuses.
const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemServed    ItemStatus = "served"
)

// OrderItem is one ordered line.
type OrderItem struct {
	MenuItemID string     `json:"menu_item_id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	UnitPrice  float64    `json:"unit_price"`
	Status     ItemStatus `json:"status"`
	Notes      string     `json:"notes,omitempty"`
}

// LineTotal returns quantity times unit price.
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// OrderClaim records the staff member who took ownership of a ready order.
type OrderClaim struct {
	StaffID   string    `json:"staff_id"`
	ClaimedAt time.Time `json:"claimed_at"`
}

// OrderDelivery records who handed the order over and when.
type OrderDelivery struct {
	StaffID     string    `json:"staff_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// Order is a customer order from placement to settlement.
type Order struct {
	Base
	TableID       *string        `json:"table_id"`
	CustomerID    *string        `json:"customer_id"`
	LocationID    string         `json:"location_id,omitempty"`
	Type          OrderType      `json:"type"`
	Items         []OrderItem    `json:"items"`
	Status        OrderStatus    `json:"status"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Tip           float64        `json:"tip"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	PromotionID   *string        `json:"promotion_id"`
	OrderTime     time.Time      `json:"order_time"`
	CompletedAt   *time.Time     `json:"completed_at"`
	Claim         *OrderClaim    `json:"claim"`
	Delivery      *OrderDelivery `json:"delivery"`
	Notes         string         `json:"notes,omitempty"`
}

// RecalculateTotals derives subtotal from the lines and total from the components.
func (o *Order) RecalculateTotals() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.LineTotal()
	}
	o.Subtotal = roundCents(subtotal)
	total := o.Subtotal + o.Tax + o.Tip - o.Discount
	if total < 0 {
		total = 0
	}
	o.Total = roundCents(total)
}

// ClaimedBy returns the claiming staff id, or "" when unclaimed.
func (o Order) ClaimedBy() string {
	if o.Claim == nil {
		return ""
	}
	return o.Claim.StaffID
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
}

// ValidOrderStatus reports whether s is one of the canonical statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// CheckOrderTransition validates moving an order from its current status to next.
// Refunds are permitted from any status once the order is paid, unless the
// order was already cancelled or refunded.
func CheckOrderTransition(from OrderStatus, payment PaymentStatus, next OrderStatus) error {
	if !ValidOrderStatus(next) {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidTransition, next)
	}
	if next == OrderRefunded {
		if payment != PaymentPaid || from == OrderCancelled || from == OrderRefunded {
			return fmt.Errorf("%w: order %s with payment %s cannot be refunded", ErrInvalidTransition, from, payment)
		}
		return nil
	}
	for _, allowed := range orderTransitions[from] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: order cannot move from %s to %s", ErrInvalidTransition, from, next)
}

func roundCents(v float64) float64 {
	if v < 0 {
		return -roundCents(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
