package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/rg-thatha/storefront/internal/domain"
)

type recordingOpener struct {
	links []string
	err   error
}

func (r *recordingOpener) Open(_ context.Context, link string) error {
	r.links = append(r.links, link)
	return r.err
}

func newTestOrderService(t *testing.T, opener LinkOpener) OrderService {
	t.Helper()
	repo := newStubCatalog()
	cart, err := NewCartService(CartServiceDeps{Repository: repo})
	if err != nil {
		t.Fatalf("NewCartService() error = %v", err)
	}
	svc, err := NewOrderService(OrderServiceDeps{
		Cart:          cart,
		Repository:    repo,
		Opener:        opener,
		MessagingBase: "https://wa.me",
		OrderPhone:    "919514083145",
		StoreName:     "R.G THATHA",
		CatalogURL:    "https://rg-thatha.netlify.app/",
	})
	if err != nil {
		t.Fatalf("NewOrderService() error = %v", err)
	}
	return svc
}

func TestPlaceOrderFormatsMessage(t *testing.T) {
	opener := &recordingOpener{}
	svc := newTestOrderService(t, opener)
	cartSvc := newTestCartService(t)
	ctx := context.Background()

	state := domain.NewCartState()
	if _, err := cartSvc.SetQuantity(ctx, state, 2, "3"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if err := cartSvc.AddToCart(ctx, state, 2); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	result, err := svc.PlaceOrder(ctx, state, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if !strings.Contains(result.Message, "Pepper - Qty: 3 - ₹600") {
		t.Fatalf("message missing line, got:\n%s", result.Message)
	}
	if !strings.HasPrefix(result.Message, "Order Request:\n") {
		t.Fatalf("message missing header, got:\n%s", result.Message)
	}
	if !strings.HasSuffix(result.Message, "Total: ₹600") {
		t.Fatalf("message missing total, got:\n%s", result.Message)
	}
	if !strings.HasPrefix(result.Link, "https://wa.me/919514083145?text=") {
		t.Fatalf("link = %q", result.Link)
	}

	// The encoded text must round-trip back to the plain message.
	encoded := strings.TrimPrefix(result.Link, "https://wa.me/919514083145?text=")
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("QueryUnescape() error = %v", err)
	}
	if decoded != result.Message {
		t.Fatalf("decoded link text = %q, want %q", decoded, result.Message)
	}

	if len(opener.links) != 1 || opener.links[0] != result.Link {
		t.Fatalf("opener recorded %v, want the order link", opener.links)
	}
}

func TestPlaceOrderMultiLineTotals(t *testing.T) {
	svc := newTestOrderService(t, &recordingOpener{})
	cartSvc := newTestCartService(t)
	ctx := context.Background()

	state := domain.NewCartState()
	for _, id := range []int{1, 2} {
		if err := cartSvc.AddToCart(ctx, state, id); err != nil {
			t.Fatalf("AddToCart(%d) error = %v", id, err)
		}
	}
	if _, err := cartSvc.SetQuantity(ctx, state, 2, "2"); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	result, err := svc.PlaceOrder(ctx, state, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if !strings.Contains(result.Message, "Almond - Qty: 1 - ₹150\nPepper - Qty: 2 - ₹400") {
		t.Fatalf("message lines wrong:\n%s", result.Message)
	}
	if !strings.HasSuffix(result.Message, "Total: ₹550") {
		t.Fatalf("total wrong:\n%s", result.Message)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	opener := &recordingOpener{}
	svc := newTestOrderService(t, opener)
	if _, err := svc.PlaceOrder(context.Background(), domain.NewCartState(), domain.LanguageEnglish); !errors.Is(err, ErrOrderCartEmpty) {
		t.Fatalf("PlaceOrder(empty) error = %v, want ErrOrderCartEmpty", err)
	}
	if len(opener.links) != 0 {
		t.Fatalf("empty cart must not open a link, got %v", opener.links)
	}
}

func TestPlaceOrderIgnoresOpenerFailure(t *testing.T) {
	opener := &recordingOpener{err: errors.New("boom")}
	svc := newTestOrderService(t, opener)
	cartSvc := newTestCartService(t)
	ctx := context.Background()

	state := domain.NewCartState()
	if err := cartSvc.AddToCart(ctx, state, 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, state, domain.LanguageEnglish); err != nil {
		t.Fatalf("PlaceOrder() error = %v, want fire-and-forget", err)
	}
}

func TestShareProduct(t *testing.T) {
	opener := &recordingOpener{}
	svc := newTestOrderService(t, opener)

	result, err := svc.ShareProduct(context.Background(), domain.LanguageEnglish, 1)
	if err != nil {
		t.Fatalf("ShareProduct() error = %v", err)
	}
	for _, want := range []string{
		"*Almond*",
		"Type: Dry Fruit",
		"Price: ₹150",
		"Variant: 100g",
		"Slots: 4",
		"Slot Price: ₹500",
		"*R.G THATHA*",
		"https://rg-thatha.netlify.app/",
	} {
		if !strings.Contains(result.Message, want) {
			t.Fatalf("share message missing %q:\n%s", want, result.Message)
		}
	}
	if !strings.HasPrefix(result.Link, "https://wa.me/?text=") {
		t.Fatalf("share link = %q, want no fixed recipient", result.Link)
	}
}

func TestShareProductNotFound(t *testing.T) {
	svc := newTestOrderService(t, &recordingOpener{})
	if _, err := svc.ShareProduct(context.Background(), domain.LanguageEnglish, 99); !errors.Is(err, ErrOrderProductNotFound) {
		t.Fatalf("ShareProduct(99) error = %v, want ErrOrderProductNotFound", err)
	}
}
