package domain

import (
	"errors"
	"math"
	"testing"
)

func TestConvertQuantity(t *testing.T) {
	got, err := ConvertQuantity(500, "Grams", "kg")
	if err != nil || got != 0.5 {
		t.Fatalf("expected 0.5 kg, got %v (%v)", got, err)
	}
	got, err = ConvertQuantity(2, "l", "ml")
	if err != nil || got != 2000 {
		t.Fatalf("expected 2000 ml, got %v (%v)", got, err)
	}
	got, err = ConvertQuantity(1, "lb", "oz")
	if err != nil || math.Abs(got-16) > 1e-9 {
		t.Fatalf("expected 16 oz, got %v (%v)", got, err)
	}
	got, err = ConvertQuantity(3, "bunch", "bunch")
	if err != nil || got != 3 {
		t.Fatalf("identical units should pass through, got %v (%v)", got, err)
	}
	if _, err := ConvertQuantity(1, "g", "ml"); !errors.Is(err, ErrUnitMismatch) {
		t.Fatalf("expected unit mismatch, got %v", err)
	}
}

func TestNotFoundErrorMatching(t *testing.T) {
	err := error(NotFoundError{Entity: EntityRecipe, ID: "r1"})
	if !IsNotFound(err) {
		t.Fatalf("expected not found match")
	}
	if entity, ok := NotFoundEntity(err); !ok || entity != EntityRecipe {
		t.Fatalf("expected recipe entity, got %q", entity)
	}
	stale := StaleRevisionError{Entity: EntityInventoryItem, ID: "i1", Expected: 3, Actual: 2}
	if !errors.Is(stale, ErrStaleRevision) || IsNotFound(stale) {
		t.Fatalf("unexpected stale revision matching")
	}
}
