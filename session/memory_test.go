package session

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreCartRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	lines := []CartLine{
		{ProductID: 1, Name: "Chicken Shawarma", UnitPrice: decimal.RequireFromString("18.50"), Quantity: 2},
		{ProductID: 2, Name: "Fries", UnitPrice: decimal.RequireFromString("9.00"), Quantity: 1},
	}
	if err := store.SaveCart(ctx, "sid-1", 5, lines); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	got, err := store.Cart(ctx, "sid-1", 5)
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Chicken Shawarma" || got[1].Quantity != 1 {
		t.Fatalf("unexpected cart contents: %+v", got)
	}

	// returned slice is a copy; mutating it must not touch the store
	got[0].Quantity = 99
	again, _ := store.Cart(ctx, "sid-1", 5)
	if again[0].Quantity != 2 {
		t.Fatalf("store mutated through returned slice: %+v", again)
	}

	// carts are scoped per session and per website
	other, _ := store.Cart(ctx, "sid-2", 5)
	if len(other) != 0 {
		t.Fatalf("cart leaked across sessions: %+v", other)
	}
	other, _ = store.Cart(ctx, "sid-1", 6)
	if len(other) != 0 {
		t.Fatalf("cart leaked across websites: %+v", other)
	}

	if err := store.ClearCart(ctx, "sid-1", 5); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cleared, _ := store.Cart(ctx, "sid-1", 5)
	if len(cleared) != 0 {
		t.Fatalf("cart not cleared: %+v", cleared)
	}
}

func TestMemoryStoreMetaRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	empty, err := store.Meta(ctx, "sid-1", 5)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if empty.OrderMethod != "" || empty.LastOrderID != 0 {
		t.Fatalf("fresh meta not zero: %+v", empty)
	}

	meta := CartMeta{
		OrderMethod:     "pickup",
		BranchID:        3,
		GuestName:       "Sara",
		GuestPhone:      "0551234567",
		CheckoutSession: "cs_abc",
	}
	if err := store.SaveMeta(ctx, "sid-1", 5, meta); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}

	got, _ := store.Meta(ctx, "sid-1", 5)
	if got != meta {
		t.Fatalf("meta round trip mismatch: %+v", got)
	}

	// clearing the cart leaves the meta alone
	_ = store.ClearCart(ctx, "sid-1", 5)
	got, _ = store.Meta(ctx, "sid-1", 5)
	if got.CheckoutSession != "cs_abc" {
		t.Fatalf("meta lost after cart clear: %+v", got)
	}
}

func TestTotal(t *testing.T) {
	lines := []CartLine{
		{UnitPrice: decimal.RequireFromString("50.00"), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("12.34"), Quantity: 1},
	}
	want := decimal.RequireFromString("112.34")
	if got := Total(lines); !got.Equal(want) {
		t.Fatalf("Total = %s, want %s", got, want)
	}

	if got := Total(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("Total(nil) = %s, want 0", got)
	}
}
