package core

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

func ptr[T any](v T) *T { return &v }

func orderOpen(o domain.Order) bool {
	switch o.Status {
	case domain.OrderServed, domain.OrderCancelled, domain.OrderRefunded:
		return false
	}
	return true
}

func notify(tx Transaction, kind domain.NotificationKind, entity domain.EntityType, id, title, msg string) error {
	_, err := tx.Notifications().Create(domain.Notification{
		Kind:     kind,
		Title:    title,
		Message:  msg,
		Entity:   entity,
		EntityID: id,
	})
	return err
}

// PlaceOrder validates the lines against the menu, prices them, and creates a
// pending order. A dine-in order occupies its table.
func (s *Service) PlaceOrder(ctx context.Context, order domain.Order) (domain.Order, Result, error) {
	var placed domain.Order
	res, err := s.run(ctx, operation{"place_order", domain.EntityOrder, domain.ActionCreate}, func(tx Transaction) (string, error) {
		if len(order.Items) == 0 {
			return "", fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
		}
		order.Items = slices.Clone(order.Items)
		menu := tx.MenuItems()
		for i := range order.Items {
			line := &order.Items[i]
			if line.Quantity <= 0 {
				return "", fmt.Errorf("%w: quantity for %s must be positive", domain.ErrInvalidInput, line.MenuItemID)
			}
			item, ok := menu.Get(line.MenuItemID)
			if !ok {
				return "", domain.NotFoundError{Entity: domain.EntityMenuItem, ID: line.MenuItemID}
			}
			if !item.Available {
				return "", fmt.Errorf("%w: menu item %s is unavailable", domain.ErrInactive, item.Name)
			}
			line.Name = item.Name
			line.UnitPrice = item.Price
			line.Status = domain.ItemPending
		}
		if order.CustomerID != nil {
			if _, ok := tx.Customers().Get(*order.CustomerID); !ok {
				return "", domain.NotFoundError{Entity: domain.EntityCustomerProfile, ID: *order.CustomerID}
			}
		}
		if order.TableID != nil {
			table, ok := tx.Tables().Get(*order.TableID)
			if !ok {
				return "", domain.NotFoundError{Entity: domain.EntityTable, ID: *order.TableID}
			}
			if table.CurrentOrderID != nil {
				if current, ok := tx.Orders().Get(*table.CurrentOrderID); ok && orderOpen(current) {
					return "", fmt.Errorf("%w: table %d holds order %s", domain.ErrTableOccupied, table.Number, current.ID)
				}
			}
			if order.LocationID == "" {
				order.LocationID = table.LocationID
			}
			if order.Type == "" {
				order.Type = domain.OrderDineIn
			}
		}
		if order.Type == "" {
			order.Type = domain.OrderTakeout
		}
		order.Status = domain.OrderPending
		order.PaymentStatus = domain.PaymentPending
		order.PromotionID = nil
		order.Discount = 0
		order.Claim = nil
		order.Delivery = nil
		order.CompletedAt = nil
		if order.OrderTime.IsZero() {
			order.OrderTime = tx.Now()
		}
		order.RecalculateTotals()

		created, err := tx.Orders().Create(order)
		if err != nil {
			return "", err
		}
		if created.TableID != nil {
			if _, err := tx.Tables().Update(*created.TableID, func(t *domain.Table) error {
				t.Status = domain.TableOccupied
				t.CurrentOrderID = ptr(created.ID)
				t.ClearedAt = nil
				return nil
			}); err != nil {
				return created.ID, err
			}
		}
		placed = created
		return created.ID, nil
	})
	return placed, res, err
}

// TransitionOrder moves an order along its lifecycle. Ready raises an
// order_ready notification; cancelling or refunding releases the table. A
// claimed order can only be served through MarkDelivered.
func (s *Service) TransitionOrder(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, Result, error) {
	var updated domain.Order
	res, err := s.run(ctx, operation{"transition_order", domain.EntityOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		updated, err = tx.Orders().Update(id, func(o *domain.Order) error {
			if err := domain.CheckOrderTransition(o.Status, o.PaymentStatus, next); err != nil {
				return fmt.Errorf("order %s: %w", id, err)
			}
			if next == domain.OrderServed && o.Claim != nil {
				return fmt.Errorf("order %s is claimed by %s, serve it with MarkDelivered: %w", id, o.ClaimedBy(), domain.ErrNotClaimant)
			}
			o.Status = next
			switch next {
			case domain.OrderPreparing:
				setItemStatus(o, domain.ItemPreparing)
			case domain.OrderReady:
				setItemStatus(o, domain.ItemReady)
			case domain.OrderServed:
				setItemStatus(o, domain.ItemServed)
				o.CompletedAt = ptr(now)
			case domain.OrderCancelled:
				o.CompletedAt = ptr(now)
			case domain.OrderRefunded:
				o.PaymentStatus = domain.PaymentRefunded
			}
			return nil
		})
		if err != nil {
			return id, err
		}
		switch next {
		case domain.OrderReady:
			err = notify(tx, domain.NotifyOrderReady, domain.EntityOrder, id, "Order ready", fmt.Sprintf("order %s is ready for pickup", id))
		case domain.OrderCancelled, domain.OrderRefunded:
			err = releaseTable(tx, updated, now)
		}
		return id, err
	})
	return updated, res, err
}

func setItemStatus(o *domain.Order, status domain.ItemStatus) {
	for i := range o.Items {
		o.Items[i].Status = status
	}
}

// releaseTable frees the table still pointing at o, if any.
func releaseTable(tx Transaction, o domain.Order, now time.Time) error {
	if o.TableID == nil {
		return nil
	}
	table, ok := tx.Tables().Get(*o.TableID)
	if !ok || table.CurrentOrderID == nil || *table.CurrentOrderID != o.ID {
		return nil
	}
	_, err := tx.Tables().Update(table.ID, func(t *domain.Table) error {
		t.Status = domain.TableAvailable
		t.CurrentOrderID = nil
		t.ClearedAt = ptr(now)
		return nil
	})
	return err
}

// ClaimOrder assigns a ready order to staffID. The claim is a compare-and-set:
// it succeeds only while the order is unclaimed, and repeating it as the same
// staff member is a no-op that returns the order unchanged, even once the
// order has been served or cancelled.
func (s *Service) ClaimOrder(ctx context.Context, orderID, staffID string) (domain.Order, Result, error) {
	var claimed domain.Order
	res, err := s.run(ctx, operation{"claim_order", domain.EntityOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		if staffID == "" {
			return orderID, fmt.Errorf("%w: staff id is required", domain.ErrInvalidInput)
		}
		current, ok := tx.Orders().Get(orderID)
		if !ok {
			return orderID, domain.NotFoundError{Entity: domain.EntityOrder, ID: orderID}
		}
		switch claimant := current.ClaimedBy(); {
		case claimant == staffID:
			claimed = current
			return orderID, nil
		case claimant != "":
			return orderID, fmt.Errorf("order %s is claimed by %s: %w", orderID, claimant, domain.ErrAlreadyClaimed)
		}
		if current.Status != domain.OrderReady {
			return orderID, fmt.Errorf("%w: order %s is %s, only ready orders can be claimed", domain.ErrInvalidTransition, orderID, current.Status)
		}
		now := tx.Now()
		var err error
		claimed, err = tx.Orders().Update(orderID, func(o *domain.Order) error {
			o.Claim = &domain.OrderClaim{StaffID: staffID, ClaimedAt: now}
			return nil
		})
		return orderID, err
	})
	return claimed, res, err
}

// MarkDelivered serves a claimed order. Only the claimant may deliver it.
func (s *Service) MarkDelivered(ctx context.Context, orderID, staffID string) (domain.Order, Result, error) {
	var delivered domain.Order
	res, err := s.run(ctx, operation{"mark_delivered", domain.EntityOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		now := tx.Now()
		var err error
		delivered, err = tx.Orders().Update(orderID, func(o *domain.Order) error {
			if claimant := o.ClaimedBy(); claimant == "" || claimant != staffID {
				return fmt.Errorf("order %s claimed by %q, delivered by %q: %w", orderID, claimant, staffID, domain.ErrNotClaimant)
			}
			if err := domain.CheckOrderTransition(o.Status, o.PaymentStatus, domain.OrderServed); err != nil {
				return fmt.Errorf("order %s: %w", orderID, err)
			}
			o.Status = domain.OrderServed
			setItemStatus(o, domain.ItemServed)
			o.Delivery = &domain.OrderDelivery{StaffID: staffID, DeliveredAt: now}
			o.CompletedAt = ptr(now)
			return nil
		})
		return orderID, err
	})
	return delivered, res, err
}

// RecordPayment settles an order with method and tip, then credits the
// customer's spend, visits and loyalty points.
func (s *Service) RecordPayment(ctx context.Context, orderID, method string, tip float64) (domain.Order, Result, error) {
	var paid domain.Order
	res, err := s.run(ctx, operation{"record_payment", domain.EntityOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		if tip < 0 {
			return orderID, fmt.Errorf("%w: tip cannot be negative", domain.ErrInvalidInput)
		}
		var err error
		paid, err = tx.Orders().Update(orderID, func(o *domain.Order) error {
			if o.PaymentStatus != domain.PaymentPending {
				return fmt.Errorf("order %s is %s: %w", orderID, o.PaymentStatus, domain.ErrAlreadySettled)
			}
			if o.Status == domain.OrderCancelled {
				return fmt.Errorf("%w: order %s is cancelled", domain.ErrInvalidTransition, orderID)
			}
			o.PaymentStatus = domain.PaymentPaid
			o.PaymentMethod = method
			o.Tip = tip
			o.RecalculateTotals()
			return nil
		})
		if err != nil || paid.CustomerID == nil {
			return orderID, err
		}
		program, hasProgram := activeProgram(tx.LoyaltyPrograms().List())
		now := tx.Now()
		_, err = tx.Customers().Update(*paid.CustomerID, func(c *domain.CustomerProfile) error {
			c.TotalSpent = roundCents(c.TotalSpent + paid.Total)
			c.VisitCount++
			c.LastVisit = ptr(now)
			if hasProgram {
				c.LoyaltyPoints += analytics.PointsEarned(program, c.LoyaltyTier, paid.Total)
				if tier := program.TierFor(c.LoyaltyPoints); tier != "" {
					c.LoyaltyTier = tier
				}
			}
			return nil
		})
		return orderID, err
	})
	return paid, res, err
}

func activeProgram(programs []domain.LoyaltyProgram) (domain.LoyaltyProgram, bool) {
	for _, p := range programs {
		if p.Active {
			return p, true
		}
	}
	return domain.LoyaltyProgram{}, false
}

// ApplyPromotion validates the promotion with code against an unpaid order and
// applies its discount. Codes match case-insensitively.
func (s *Service) ApplyPromotion(ctx context.Context, orderID, code string) (domain.Order, Result, error) {
	var discounted domain.Order
	res, err := s.run(ctx, operation{"apply_promotion", domain.EntityOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		promo, ok := findPromotion(tx.Promotions().List(), code)
		if !ok {
			return orderID, domain.NotFoundError{Entity: domain.EntityPromotion, ID: code}
		}
		now := tx.Now()
		var err error
		discounted, err = tx.Orders().Update(orderID, func(o *domain.Order) error {
			if o.PaymentStatus != domain.PaymentPending {
				return fmt.Errorf("order %s is %s: %w", orderID, o.PaymentStatus, domain.ErrAlreadySettled)
			}
			if o.PromotionID != nil {
				return fmt.Errorf("%w: order %s already has promotion %s", domain.ErrPromotionNotValid, orderID, *o.PromotionID)
			}
			o.RecalculateTotals()
			discount, err := promo.DiscountFor(o.Subtotal, now)
			if err != nil {
				return err
			}
			o.Discount = discount
			o.PromotionID = ptr(promo.ID)
			o.RecalculateTotals()
			return nil
		})
		if err != nil {
			return orderID, err
		}
		_, err = tx.Promotions().Update(promo.ID, func(p *domain.Promotion) error {
			p.UsageCount++
			return nil
		})
		return orderID, err
	})
	return discounted, res, err
}

func findPromotion(promotions []domain.Promotion, code string) (domain.Promotion, bool) {
	code = strings.TrimSpace(code)
	for _, p := range promotions {
		if strings.EqualFold(p.Code, code) {
			return p, true
		}
	}
	return domain.Promotion{}, false
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
