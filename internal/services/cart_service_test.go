package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rg-thatha/storefront/internal/domain"
)

func newTestCartService(t *testing.T) CartService {
	t.Helper()
	svc, err := NewCartService(CartServiceDeps{Repository: newStubCatalog()})
	if err != nil {
		t.Fatalf("NewCartService() error = %v", err)
	}
	return svc
}

func TestSetQuantityClampsInvalidInput(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()

	cases := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"0", 1},
		{"-5", 1},
		{"abc", 1},
		{"", 1},
		{"2.5", 2},
		{"10kg", 10},
		{"+4", 4},
	}
	for _, tc := range cases {
		state := domain.NewCartState()
		got, err := svc.SetQuantity(ctx, state, 1, tc.raw)
		if err != nil {
			t.Fatalf("SetQuantity(%q) error = %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("SetQuantity(%q) = %d, want %d", tc.raw, got, tc.want)
		}
		if state.Entries[1].Quantity != tc.want {
			t.Fatalf("SetQuantity(%q) stored %d, want %d", tc.raw, state.Entries[1].Quantity, tc.want)
		}
	}
}

func TestSetQuantityPutsProductInCart(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()
	state := domain.NewCartState()

	if _, err := svc.SetQuantity(ctx, state, 1, "3"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	cart, err := svc.Cart(ctx, state, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("cart after SetQuantity = %+v, want one line", cart.Lines)
	}
	if cart.Lines[0].ID != 1 || cart.Lines[0].Quantity != 3 {
		t.Fatalf("line = %+v, want product 1 at quantity 3", cart.Lines[0])
	}

	// Editing the quantity of a line already in the cart must not duplicate
	// its position.
	if _, err := svc.SetQuantity(ctx, state, 1, "5"); err != nil {
		t.Fatalf("second SetQuantity() error = %v", err)
	}
	if len(state.Order) != 1 {
		t.Fatalf("Order = %v, want a single entry", state.Order)
	}
	if state.Entries[1].Quantity != 5 {
		t.Fatalf("quantity after edit = %d, want 5", state.Entries[1].Quantity)
	}
}

func TestSetQuantityRejectsUnknownProduct(t *testing.T) {
	svc := newTestCartService(t)
	state := domain.NewCartState()
	if _, err := svc.SetQuantity(context.Background(), state, 999, "2"); !errors.Is(err, ErrCartUnknownProduct) {
		t.Fatalf("SetQuantity(999) error = %v, want ErrCartUnknownProduct", err)
	}
	if len(state.Entries) != 0 {
		t.Fatalf("unknown product must not create an entry, got %d entries", len(state.Entries))
	}
}

func TestAddToCartIsIdempotent(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()
	state := domain.NewCartState()

	if _, err := svc.SetQuantity(ctx, state, 1, "4"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if err := svc.AddToCart(ctx, state, 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := svc.AddToCart(ctx, state, 1); err != nil {
		t.Fatalf("second AddToCart() error = %v", err)
	}

	entry := state.Entries[1]
	if !entry.InCart || entry.Quantity != 4 {
		t.Fatalf("entry after double add = %+v, want in cart at quantity 4", entry)
	}
	if len(state.Order) != 1 {
		t.Fatalf("Order = %v, want a single entry", state.Order)
	}
}

func TestRemoveFromCartResetsQuantity(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()
	state := domain.NewCartState()

	if _, err := svc.SetQuantity(ctx, state, 2, "7"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if err := svc.AddToCart(ctx, state, 2); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := svc.RemoveFromCart(ctx, state, 2); err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}

	entry := state.Entries[2]
	if entry.InCart {
		t.Fatalf("entry still in cart after removal")
	}
	if entry.Quantity != 1 {
		t.Fatalf("quantity after removal = %d, want reset to 1", entry.Quantity)
	}
	if len(state.Order) != 0 {
		t.Fatalf("Order after removal = %v, want empty", state.Order)
	}

	// Removing again, or removing something never added, is a no-op.
	if err := svc.RemoveFromCart(ctx, state, 2); err != nil {
		t.Fatalf("repeat RemoveFromCart() error = %v", err)
	}
	if err := svc.RemoveFromCart(ctx, state, 3); err != nil {
		t.Fatalf("RemoveFromCart(absent) error = %v", err)
	}
}

func TestSetCartQuantity(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()
	state := domain.NewCartState()

	if err := svc.AddToCart(ctx, state, 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	removed, err := svc.SetCartQuantity(ctx, state, 1, 5)
	if err != nil {
		t.Fatalf("SetCartQuantity(5) error = %v", err)
	}
	if removed || state.Entries[1].Quantity != 5 {
		t.Fatalf("SetCartQuantity(5): removed=%v quantity=%d", removed, state.Entries[1].Quantity)
	}

	// Zero or negative removes the line and resets the quantity.
	removed, err = svc.SetCartQuantity(ctx, state, 1, 0)
	if err != nil {
		t.Fatalf("SetCartQuantity(0) error = %v", err)
	}
	if !removed {
		t.Fatalf("SetCartQuantity(0) removed = false, want true")
	}
	if state.Entries[1].InCart || state.Entries[1].Quantity != 1 {
		t.Fatalf("entry after zero quantity = %+v, want out of cart at quantity 1", state.Entries[1])
	}

	if _, err := svc.SetCartQuantity(ctx, state, 1, 2); !errors.Is(err, ErrCartNotInCart) {
		t.Fatalf("SetCartQuantity on removed line error = %v, want ErrCartNotInCart", err)
	}
	if _, err := svc.SetCartQuantity(ctx, state, 3, 2); !errors.Is(err, ErrCartNotInCart) {
		t.Fatalf("SetCartQuantity on absent line error = %v, want ErrCartNotInCart", err)
	}
}

func TestCartPreservesInsertionOrderAndLocalizes(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()
	state := domain.NewCartState()

	for _, id := range []int{3, 1, 2} {
		if err := svc.AddToCart(ctx, state, id); err != nil {
			t.Fatalf("AddToCart(%d) error = %v", id, err)
		}
	}
	if _, err := svc.SetQuantity(ctx, state, 2, "3"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	cart, err := svc.Cart(ctx, state, domain.LanguageTanglish)
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if len(cart.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(cart.Lines))
	}
	wantNames := []string{"Kirambu", "Paatham", "Milagu"}
	for i, want := range wantNames {
		if cart.Lines[i].Name != want {
			t.Fatalf("Lines[%d].Name = %q, want %q", i, cart.Lines[i].Name, want)
		}
	}
	if cart.Total() != 60+150+600 {
		t.Fatalf("Total() = %v, want %v", cart.Total(), 60+150+600)
	}
	if cart.ItemCount() != 5 {
		t.Fatalf("ItemCount() = %d, want 5", cart.ItemCount())
	}
}

func TestCartRejectsUnknownLanguage(t *testing.T) {
	svc := newTestCartService(t)
	state := domain.NewCartState()
	if err := svc.AddToCart(context.Background(), state, 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if _, err := svc.Cart(context.Background(), state, domain.Language("french")); !errors.Is(err, ErrCartInvalidInput) {
		t.Fatalf("Cart(french) error = %v, want ErrCartInvalidInput", err)
	}
}
