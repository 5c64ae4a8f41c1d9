package redis

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/go-redis/redis/v8"

	"restaurantcore/pkg/domain"
)

type fakeKV struct {
	data    map[string]string
	failGet error
	failSet error
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) MGet(_ context.Context, keys ...string) *goredis.SliceCmd {
	if f.failGet != nil {
		return goredis.NewSliceResult(nil, f.failGet)
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			out[i] = v
		}
	}
	return goredis.NewSliceResult(out, nil)
}

func (f *fakeKV) MSet(_ context.Context, values ...interface{}) *goredis.StatusCmd {
	if f.failSet != nil {
		return goredis.NewStatusResult("", f.failSet)
	}
	for i := 0; i+1 < len(values); i += 2 {
		f.data[values[i].(string)] = string(values[i+1].([]byte))
	}
	return goredis.NewStatusResult("OK", nil)
}

func TestRedisStorePersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store, err := NewStoreWithClient(ctx, kv, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.Reservations().Create(domain.Reservation{CustomerName: "Okafor", PartySize: 4, Status: domain.ReservationConfirmed})
		return err
	}); err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	if _, ok := kv.data["restaurantcore:state:reservations"]; !ok {
		t.Fatalf("expected reservations bucket written, got keys %v", kv.data)
	}
	if len(kv.data) != 1 {
		t.Fatalf("only the touched bucket should be written, got keys %v", kv.data)
	}

	reloaded, err := NewStoreWithClient(ctx, kv, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	_ = reloaded.View(ctx, func(v domain.TransactionView) error {
		list := v.Reservations().List()
		if len(list) != 1 || list[0].CustomerName != "Okafor" {
			t.Fatalf("expected reservation restored, got %+v", list)
		}
		return nil
	})
	if err := reloaded.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.failGet = errors.New("down")
	if _, err := NewStoreWithClient(ctx, kv, nil); err == nil {
		t.Fatalf("expected load error")
	}

	kv.failGet = nil
	store, err := NewStoreWithClient(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	kv.failSet = errors.New("readonly")
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.MenuItems().Create(domain.MenuItem{Name: "Tea"})
		return err
	})
	if err == nil {
		t.Fatalf("expected write error")
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.Feedback().Create(domain.Feedback{Rating: 5})
		return err
	}); err != nil {
		t.Fatalf("session-only change should not touch redis: %v", err)
	}
}

func TestNewStoreRejectsBadURL(t *testing.T) {
	if _, err := NewStore(context.Background(), "not-a-url://", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
