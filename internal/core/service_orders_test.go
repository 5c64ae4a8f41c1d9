package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"restaurantcore/pkg/domain"
)

func TestPlaceOrderPricesLinesAndOccupiesTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	order, _, err := f.svc.PlaceOrder(ctx, domain.Order{
		TableID: &f.table.ID,
		Items:   []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 2, UnitPrice: 999}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Items[0].UnitPrice != 12.5 || order.Items[0].Name != "Burger" {
		t.Fatalf("expected menu pricing, got %+v", order.Items[0])
	}
	if order.Subtotal != 25 || order.Total != 25 {
		t.Fatalf("expected totals of 25, got subtotal=%v total=%v", order.Subtotal, order.Total)
	}
	if order.Status != domain.OrderPending || order.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected pending order, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.Type != domain.OrderDineIn || order.LocationID != "loc-1" {
		t.Fatalf("expected dine-in at table location, got %s %q", order.Type, order.LocationID)
	}
	if !order.OrderTime.Equal(testNow) {
		t.Fatalf("expected order time %v, got %v", testNow, order.OrderTime)
	}

	table, err := Get(ctx, f.svc, domain.EntityTable, TransactionView.Tables, f.table.ID)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if table.Status != domain.TableOccupied || table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
		t.Fatalf("expected table occupied by %s, got %+v", order.ID, table)
	}

	if _, _, err := f.svc.PlaceOrder(ctx, domain.Order{
		TableID: &f.table.ID,
		Items:   []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 1}},
	}); !errors.Is(err, domain.ErrTableOccupied) {
		t.Fatalf("expected occupied table error, got %v", err)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	off := must[domain.MenuItem](t)(f.svc.CreateMenuItem(ctx, domain.MenuItem{Name: "Special", Price: 20}))
	missing := "nope"

	cases := []struct {
		name  string
		order domain.Order
		check func(error) bool
	}{
		{"no items", domain.Order{}, func(err error) bool { return errors.Is(err, domain.ErrInvalidInput) }},
		{"zero quantity", domain.Order{Items: []domain.OrderItem{{MenuItemID: f.burger.ID}}}, func(err error) bool { return errors.Is(err, domain.ErrInvalidInput) }},
		{"unknown menu item", domain.Order{Items: []domain.OrderItem{{MenuItemID: missing, Quantity: 1}}}, domain.IsNotFound},
		{"unavailable item", domain.Order{Items: []domain.OrderItem{{MenuItemID: off.ID, Quantity: 1}}}, func(err error) bool { return errors.Is(err, domain.ErrInactive) }},
		{"unknown table", domain.Order{TableID: &missing, Items: []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 1}}}, domain.IsNotFound},
		{"unknown customer", domain.Order{CustomerID: &missing, Items: []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 1}}}, domain.IsNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := f.svc.PlaceOrder(ctx, tc.order); !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
	if orders := listOf(t, f.svc, TransactionView.Orders); len(orders) != 0 {
		t.Fatalf("rejected orders must not be stored, got %d", len(orders))
	}
}

func TestTransitionOrderFollowsLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)

	if _, _, err := f.svc.TransitionOrder(ctx, order.ID, domain.OrderReady); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition pending -> ready, got %v", err)
	}
	ready := f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)
	if ready.Items[0].Status != domain.ItemReady {
		t.Fatalf("expected items ready, got %s", ready.Items[0].Status)
	}
	notes := listOf(t, f.svc, TransactionView.Notifications)
	if len(notes) != 1 || notes[0].Kind != domain.NotifyOrderReady || notes[0].EntityID != order.ID {
		t.Fatalf("expected one order_ready notification, got %+v", notes)
	}

	served := f.advanceTo(t, order.ID, domain.OrderServed)
	if served.CompletedAt == nil || !served.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completion time, got %v", served.CompletedAt)
	}
	if _, _, err := f.svc.TransitionOrder(ctx, order.ID, domain.OrderCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("served orders cannot be cancelled, got %v", err)
	}
	if _, _, err := f.svc.TransitionOrder(ctx, "missing", domain.OrderConfirmed); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelOrderReleasesTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	f.advanceTo(t, order.ID, domain.OrderCancelled)

	table, err := Get(ctx, f.svc, domain.EntityTable, TransactionView.Tables, f.table.ID)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if table.Status != domain.TableAvailable || table.CurrentOrderID != nil {
		t.Fatalf("expected table released, got %+v", table)
	}
	f.placeAtTable(t, 1)
}

func TestClaimOrderIsExclusiveUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)

	const claimants = 16
	errs := make([]error, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = f.svc.ClaimOrder(ctx, order.ID, fmt.Sprintf("staff-%d", i))
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		switch {
		case err == nil:
			if winner != -1 {
				t.Fatalf("both staff-%d and staff-%d claimed the order", winner, i)
			}
			winner = i
		case !errors.Is(err, domain.ErrAlreadyClaimed):
			t.Fatalf("unexpected claim error: %v", err)
		}
	}
	if winner == -1 {
		t.Fatalf("expected exactly one successful claim")
	}
	got, err := Get(ctx, f.svc, domain.EntityOrder, TransactionView.Orders, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if want := fmt.Sprintf("staff-%d", winner); got.ClaimedBy() != want {
		t.Fatalf("expected claim by %s, got %s", want, got.ClaimedBy())
	}

	again, _, err := f.svc.ClaimOrder(ctx, order.ID, got.ClaimedBy())
	if err != nil || again.Revision != got.Revision {
		t.Fatalf("repeat claim by owner should be a no-op, got rev %d (%v)", again.Revision, err)
	}
}

func TestClaimOrderRequiresReady(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	if _, _, err := f.svc.ClaimOrder(ctx, order.ID, "staff-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for pending order, got %v", err)
	}
	if _, _, err := f.svc.ClaimOrder(ctx, "missing", "staff-1"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := f.svc.ClaimOrder(ctx, order.ID, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty staff, got %v", err)
	}
}

func TestMarkDeliveredRequiresClaimant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)

	if _, _, err := f.svc.MarkDelivered(ctx, order.ID, "staff-1"); !errors.Is(err, domain.ErrNotClaimant) {
		t.Fatalf("unclaimed order cannot be delivered, got %v", err)
	}
	must[domain.Order](t)(f.svc.ClaimOrder(ctx, order.ID, "staff-1"))
	if _, _, err := f.svc.MarkDelivered(ctx, order.ID, "staff-2"); !errors.Is(err, domain.ErrNotClaimant) {
		t.Fatalf("expected not claimant, got %v", err)
	}
	delivered := must[domain.Order](t)(f.svc.MarkDelivered(ctx, order.ID, "staff-1"))
	if delivered.Status != domain.OrderServed || delivered.Delivery == nil || delivered.Delivery.StaffID != "staff-1" {
		t.Fatalf("expected served order delivered by staff-1, got %+v", delivered)
	}
	if delivered.ClaimedBy() != "staff-1" {
		t.Fatalf("delivery must keep the claim, got %q", delivered.ClaimedBy())
	}
}

func TestClaimedOrderIsServedOnlyByClaimant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)
	must[domain.Order](t)(f.svc.ClaimOrder(ctx, order.ID, "staff-1"))

	if _, _, err := f.svc.TransitionOrder(ctx, order.ID, domain.OrderServed); !errors.Is(err, domain.ErrNotClaimant) {
		t.Fatalf("expected not claimant for transition of claimed order, got %v", err)
	}

	var blocked domain.RuleViolationError
	_, _, err := f.svc.UpdateOrder(ctx, order.ID, func(o *domain.Order) error {
		o.Status = domain.OrderServed
		return nil
	})
	if !errors.As(err, &blocked) {
		t.Fatalf("expected serving without delivery to be blocked, got %v", err)
	}
	_, _, err = f.svc.UpdateOrder(ctx, order.ID, func(o *domain.Order) error {
		o.Status = domain.OrderServed
		o.Delivery = &domain.OrderDelivery{StaffID: "staff-2", DeliveredAt: testNow}
		return nil
	})
	if !errors.As(err, &blocked) {
		t.Fatalf("expected delivery by another staff member to be blocked, got %v", err)
	}
	current, err := Get(ctx, f.svc, domain.EntityOrder, TransactionView.Orders, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if current.Status != domain.OrderReady || current.Delivery != nil {
		t.Fatalf("blocked writes must leave the order ready, got %+v", current)
	}

	delivered := must[domain.Order](t)(f.svc.MarkDelivered(ctx, order.ID, "staff-1"))
	if delivered.Status != domain.OrderServed || delivered.Delivery.StaffID != "staff-1" {
		t.Fatalf("expected delivery by staff-1, got %+v", delivered)
	}

	other := f.placeAtTable(t, 1)
	f.advanceTo(t, other.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)
	served := f.advanceTo(t, other.ID, domain.OrderServed)
	if served.Status != domain.OrderServed || served.Claim != nil {
		t.Fatalf("unclaimed ready order should transition to served, got %+v", served)
	}
}

func TestRepeatClaimOnTerminalOrderIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)
	must[domain.Order](t)(f.svc.ClaimOrder(ctx, order.ID, "staff-1"))
	delivered := must[domain.Order](t)(f.svc.MarkDelivered(ctx, order.ID, "staff-1"))

	again, _, err := f.svc.ClaimOrder(ctx, order.ID, "staff-1")
	if err != nil || again.Status != domain.OrderServed || again.Revision != delivered.Revision {
		t.Fatalf("repeat claim of served order should return it unchanged, got %+v (%v)", again, err)
	}
	if _, _, err := f.svc.ClaimOrder(ctx, order.ID, "staff-2"); !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("expected already claimed for another staff member, got %v", err)
	}
}

func TestGenericOrderUpdatesCannotBypassLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	order := f.placeAtTable(t, 1)

	_, _, err := f.svc.UpdateOrder(ctx, order.ID, func(o *domain.Order) error {
		o.Status = domain.OrderServed
		return nil
	})
	var blocked domain.RuleViolationError
	if !errors.As(err, &blocked) || blocked.Result.Violations[0].Rule != orderLifecycleRule {
		t.Fatalf("expected order_lifecycle violation, got %v", err)
	}

	_, _, err = f.svc.UpdateOrder(ctx, order.ID, func(o *domain.Order) error {
		o.Claim = &domain.OrderClaim{StaffID: "staff-9", ClaimedAt: testNow}
		return nil
	})
	if !errors.As(err, &blocked) {
		t.Fatalf("expected claim of pending order to be blocked, got %v", err)
	}
	if pending, _ := Get(ctx, f.svc, domain.EntityOrder, TransactionView.Orders, order.ID); pending.Claim != nil {
		t.Fatalf("blocked claim must not stick, got %q", pending.ClaimedBy())
	}
	for name, preset := range map[string]func(*domain.Order){
		"claim":    func(o *domain.Order) { o.Claim = &domain.OrderClaim{StaffID: "staff-9", ClaimedAt: testNow} },
		"delivery": func(o *domain.Order) { o.Delivery = &domain.OrderDelivery{StaffID: "staff-9", DeliveredAt: testNow} },
	} {
		o := domain.Order{Status: domain.OrderReady, Items: []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 1}}}
		preset(&o)
		if _, _, err := f.svc.CreateOrder(ctx, o); !errors.As(err, &blocked) {
			t.Fatalf("expected create with preset %s to be blocked, got %v", name, err)
		}
	}

	f.advanceTo(t, order.ID, domain.OrderConfirmed, domain.OrderPreparing, domain.OrderReady)
	must[domain.Order](t)(f.svc.ClaimOrder(ctx, order.ID, "staff-1"))
	current, err := Get(ctx, f.svc, domain.EntityOrder, TransactionView.Orders, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	current.Claim = &domain.OrderClaim{StaffID: "staff-2", ClaimedAt: testNow}
	if _, _, err := f.svc.SaveOrder(ctx, current); !errors.As(err, &blocked) {
		t.Fatalf("expected claim overwrite to be blocked, got %v", err)
	}
	after, _ := Get(ctx, f.svc, domain.EntityOrder, TransactionView.Orders, order.ID)
	if after.ClaimedBy() != "staff-1" {
		t.Fatalf("blocked write must leave the claim, got %q", after.ClaimedBy())
	}
}

func TestRecordPaymentCreditsCustomerAndRefund(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	must[domain.LoyaltyProgram](t)(f.svc.CreateLoyaltyProgram(ctx, domain.LoyaltyProgram{
		Name: "Club", PointsPerDollar: 1, Active: true,
		Tiers: []domain.LoyaltyTier{{Name: "bronze", MinPoints: 0, Multiplier: 1}, {Name: "silver", MinPoints: 20, Multiplier: 1.5}},
	}))
	customer := must[domain.CustomerProfile](t)(f.svc.CreateCustomer(ctx, domain.CustomerProfile{Name: "Ada"}))
	order := must[domain.Order](t)(f.svc.PlaceOrder(ctx, domain.Order{
		TableID:    &f.table.ID,
		CustomerID: &customer.ID,
		Items:      []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 2}},
	}))

	paid := must[domain.Order](t)(f.svc.RecordPayment(ctx, order.ID, "card", 5))
	if paid.PaymentStatus != domain.PaymentPaid || paid.Total != 30 {
		t.Fatalf("expected paid total of 30, got %s %v", paid.PaymentStatus, paid.Total)
	}
	got, err := Get(ctx, f.svc, domain.EntityCustomerProfile, TransactionView.Customers, customer.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.TotalSpent != 30 || got.VisitCount != 1 || got.LoyaltyPoints != 30 || got.LoyaltyTier != "silver" {
		t.Fatalf("unexpected customer after payment: %+v", got)
	}
	if _, _, err := f.svc.RecordPayment(ctx, order.ID, "cash", 0); !errors.Is(err, domain.ErrAlreadySettled) {
		t.Fatalf("expected already settled, got %v", err)
	}

	refunded := f.advanceTo(t, order.ID, domain.OrderRefunded)
	if refunded.PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("expected refunded payment, got %s", refunded.PaymentStatus)
	}
	table, _ := Get(ctx, f.svc, domain.EntityTable, TransactionView.Tables, f.table.ID)
	if table.CurrentOrderID != nil {
		t.Fatalf("refund should release the table")
	}
}

func TestRefundRequiresPayment(t *testing.T) {
	f := newFixture(t)
	order := f.placeAtTable(t, 1)
	if _, _, err := f.svc.TransitionOrder(context.Background(), order.ID, domain.OrderRefunded); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("unpaid order cannot be refunded, got %v", err)
	}
}

func TestApplyPromotion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	promo := must[domain.Promotion](t)(f.svc.CreatePromotion(ctx, domain.Promotion{
		Name: "Ten off", Code: "SAVE10", DiscountType: domain.DiscountPercentage, DiscountValue: 10,
		StartDate: testNow.AddDate(0, 0, -1), EndDate: testNow.AddDate(0, 0, 1), Active: true,
	}))
	order := f.placeAtTable(t, 2)

	discounted := must[domain.Order](t)(f.svc.ApplyPromotion(ctx, order.ID, " save10 "))
	if discounted.Discount != 2.5 || discounted.Total != 22.5 || discounted.PromotionID == nil || *discounted.PromotionID != promo.ID {
		t.Fatalf("unexpected discounted order: %+v", discounted)
	}
	stored, _ := Get(ctx, f.svc, domain.EntityPromotion, TransactionView.Promotions, promo.ID)
	if stored.UsageCount != 1 {
		t.Fatalf("expected usage count 1, got %d", stored.UsageCount)
	}
	if _, _, err := f.svc.ApplyPromotion(ctx, order.ID, "SAVE10"); !errors.Is(err, domain.ErrPromotionNotValid) {
		t.Fatalf("expected second promotion to be rejected, got %v", err)
	}
	if _, _, err := f.svc.ApplyPromotion(ctx, order.ID, "BOGUS"); !domain.IsNotFound(err) {
		t.Fatalf("expected unknown code to be not found, got %v", err)
	}
}
