package service

import (
	"errors"
	"testing"

	"github.com/tripcart/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

func activeState() models.AppState {
	state := models.NewAppState()
	state.Trip = models.ActiveTrip(models.Trip{ID: "trip-1", Name: "Test"})
	return state
}

func TestComputeTotalsExample(t *testing.T) {
	state := activeState()
	products := testCatalog()
	if _, err := AddOrUpdateItem(&state, products, "milk", 2); err != nil {
		t.Fatalf("add milk failed: %v", err)
	}
	if _, err := AddOrUpdateItem(&state, products, "eggs", 1); err != nil {
		t.Fatalf("add eggs failed: %v", err)
	}
	totals := ComputeTotals(state.Cart)
	if !totals.Subtotal.Equal(decimal.RequireFromString("7.98")) {
		t.Fatalf("subtotal want 7.98 got %s", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.RequireFromString("0.65835")) {
		t.Fatalf("tax want 0.65835 got %s", totals.Tax)
	}
	if !totals.Total.Equal(decimal.RequireFromString("8.63835")) {
		t.Fatalf("total want 8.63835 got %s", totals.Total)
	}
	if totals.Total.Display() != "8.64" {
		t.Fatalf("display total want 8.64 got %s", totals.Total.Display())
	}
	if totals.ItemCount != 3 {
		t.Fatalf("item count want 3 got %d", totals.ItemCount)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() || !totals.Total.IsZero() || totals.ItemCount != 0 {
		t.Fatalf("empty cart totals should be zero, got %+v", totals)
	}
}

func TestAddOrUpdateItemRequiresActiveTrip(t *testing.T) {
	state := models.NewAppState()
	_, err := AddOrUpdateItem(&state, testCatalog(), "milk", 1)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("want ErrInvalidState got %v", err)
	}
	if len(state.Cart) != 0 {
		t.Fatalf("cart should stay empty")
	}
}

func TestAddOrUpdateItemRejectsUnknownProductAndBadQuantity(t *testing.T) {
	state := activeState()
	if _, err := AddOrUpdateItem(&state, testCatalog(), "unicorn", 1); !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
	if _, err := AddOrUpdateItem(&state, testCatalog(), "milk", 0); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("zero quantity want ErrInvalidState got %v", err)
	}
	if len(state.Cart) != 0 {
		t.Fatalf("cart should stay empty, got %d items", len(state.Cart))
	}
}

func TestAddOrUpdateItemSetsAbsoluteQuantity(t *testing.T) {
	state := activeState()
	products := testCatalog()
	if _, err := AddOrUpdateItem(&state, products, "milk", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item, err := AddOrUpdateItem(&state, products, "milk", 5)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(state.Cart) != 1 || item.Quantity != 5 || state.Cart[0].Quantity != 5 {
		t.Fatalf("quantity should be replaced with 5, got %+v", state.Cart)
	}
	if item.Name != "Milk" || item.Unit != "gallon" || item.Price.String() != "3.49" {
		t.Fatalf("line item should snapshot product fields, got %+v", item)
	}
}

func TestAdjustQuantity(t *testing.T) {
	state := activeState()
	products := testCatalog()
	if _, err := AddOrUpdateItem(&state, products, "milk", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	item, removed, err := AdjustQuantity(&state, "milk", 3)
	if err != nil || removed || item.Quantity != 5 {
		t.Fatalf("adjust +3 want qty 5 got item=%+v removed=%v err=%v", item, removed, err)
	}
	_, removed, err = AdjustQuantity(&state, "milk", -5)
	if err != nil || !removed {
		t.Fatalf("adjust -5 should remove item, removed=%v err=%v", removed, err)
	}
	if len(state.Cart) != 0 {
		t.Fatalf("cart should be empty after removal")
	}
	if _, _, err := AdjustQuantity(&state, "milk", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("adjust missing item want ErrNotFound got %v", err)
	}
}

func TestAdjustQuantityRemovesAtZeroFromTwo(t *testing.T) {
	state := activeState()
	if _, err := AddOrUpdateItem(&state, testCatalog(), "bread", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, removed, err := AdjustQuantity(&state, "bread", -2); err != nil || !removed {
		t.Fatalf("adjust -2 should remove bread, removed=%v err=%v", removed, err)
	}
	if len(state.Cart) != 0 {
		t.Fatalf("cart should be empty")
	}
}

func TestRemoveItem(t *testing.T) {
	state := activeState()
	products := testCatalog()
	for _, id := range []string{"milk", "eggs", "bread"} {
		if _, err := AddOrUpdateItem(&state, products, id, 1); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}
	name, err := RemoveItem(&state, "eggs")
	if err != nil || name != "Eggs" {
		t.Fatalf("remove eggs want name Eggs got %q err=%v", name, err)
	}
	if len(state.Cart) != 2 || state.Cart[0].ProductID != "milk" || state.Cart[1].ProductID != "bread" {
		t.Fatalf("remaining items out of order: %+v", state.Cart)
	}
	if _, err := RemoveItem(&state, "eggs"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove want ErrNotFound got %v", err)
	}
}

func TestCartInvariantsUnderRandomOperations(t *testing.T) {
	faker := gofakeit.New(20260314)
	products := testCatalog()
	ids := []string{"milk", "eggs", "bread", "apples", "coffee", "unknown"}

	for round := 0; round < 50; round++ {
		state := activeState()
		for step := 0; step < 40; step++ {
			id := ids[faker.IntRange(0, len(ids)-1)]
			switch faker.IntRange(0, 2) {
			case 0:
				_, _ = AddOrUpdateItem(&state, products, id, faker.IntRange(-2, 6))
			case 1:
				_, _, _ = AdjustQuantity(&state, id, faker.IntRange(-4, 4))
			case 2:
				_, _ = RemoveItem(&state, id)
			}

			seen := map[string]bool{}
			expected := decimal.Zero
			for _, item := range state.Cart {
				if seen[item.ProductID] {
					t.Fatalf("round %d step %d: duplicate line item %s", round, step, item.ProductID)
				}
				seen[item.ProductID] = true
				if item.Quantity <= 0 {
					t.Fatalf("round %d step %d: non-positive quantity %d", round, step, item.Quantity)
				}
				expected = expected.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
			totals := ComputeTotals(state.Cart)
			if !totals.Subtotal.Equal(expected) {
				t.Fatalf("subtotal want %s got %s", expected, totals.Subtotal)
			}
			if !totals.Total.Equal(totals.Subtotal.Add(totals.Tax.Decimal)) {
				t.Fatalf("total should equal subtotal + tax")
			}
		}
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	state := activeState()
	products := testCatalog()
	for i, id := range []string{"milk", "eggs", "bread", "apples", "coffee"} {
		if _, err := AddOrUpdateItem(&state, products, id, i+1); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}
	forward := ComputeTotals(state.Cart)
	reversed := make([]models.CartLineItem, len(state.Cart))
	for i, item := range state.Cart {
		reversed[len(state.Cart)-1-i] = item
	}
	backward := ComputeTotals(reversed)
	if !forward.Total.Equal(backward.Total.Decimal) || forward.ItemCount != backward.ItemCount {
		t.Fatalf("totals depend on order: %+v vs %+v", forward, backward)
	}
	if again := ComputeTotals(state.Cart); !again.Total.Equal(forward.Total.Decimal) {
		t.Fatalf("totals not idempotent")
	}
}
