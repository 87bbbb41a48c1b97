package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/repositories"
)

var (
	errOrderCartServiceRequired = errors.New("order service: cart service is required")
	errOrderRepositoryRequired  = errors.New("order service: repository is required")
	errOrderPhoneRequired       = errors.New("order service: order phone is required")
)

// ErrOrderUnavailable indicates the order service cannot fulfil the request.
var ErrOrderUnavailable = errors.New("order service: unavailable")

// ErrOrderCartEmpty indicates an order was placed against an empty cart.
var ErrOrderCartEmpty = errors.New("order service: cart is empty")

// ErrOrderProductNotFound indicates a share request for an unknown product.
var ErrOrderProductNotFound = errors.New("order service: product not found")

// OrderServiceDeps wires the cart, catalog and link-opening capability for
// the messaging hand-off.
type OrderServiceDeps struct {
	Cart       CartService
	Repository repositories.CatalogRepository
	Opener     LinkOpener

	// MessagingBase is the messaging deep-link origin, e.g. "https://wa.me".
	MessagingBase string
	// OrderPhone is the fixed recipient of order messages.
	OrderPhone string
	// StoreName appears in the share message footer.
	StoreName string
	// CatalogURL is the public storefront address included in shares.
	CatalogURL string

	Logger func(context.Context, string, map[string]any)
}

type orderService struct {
	cart   CartService
	repo   repositories.CatalogRepository
	opener LinkOpener

	base       string
	orderPhone string
	storeName  string
	catalogURL string

	logger func(context.Context, string, map[string]any)
}

// NewOrderService constructs an OrderService enforcing dependency validation.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Cart == nil {
		return nil, errOrderCartServiceRequired
	}
	if deps.Repository == nil {
		return nil, errOrderRepositoryRequired
	}
	phone := strings.TrimSpace(deps.OrderPhone)
	if phone == "" {
		return nil, errOrderPhoneRequired
	}

	base := strings.TrimRight(strings.TrimSpace(deps.MessagingBase), "/")
	if base == "" {
		base = "https://wa.me"
	}
	opener := deps.Opener
	if opener == nil {
		opener = LinkOpenerFunc(func(context.Context, string) error { return nil })
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &orderService{
		cart:       deps.Cart,
		repo:       deps.Repository,
		opener:     opener,
		base:       base,
		orderPhone: phone,
		storeName:  strings.TrimSpace(deps.StoreName),
		catalogURL: strings.TrimSpace(deps.CatalogURL),
		logger:     logger,
	}, nil
}

// PlaceOrder formats the cart into an order message and hands the resulting
// link to the opener. The hand-off is fire and forget: a failing opener is
// logged, not surfaced.
func (s *orderService) PlaceOrder(ctx context.Context, state *domain.CartState, lang domain.Language) (OrderResult, error) {
	if s == nil || s.cart == nil {
		return OrderResult{}, ErrOrderUnavailable
	}
	cart, err := s.cart.Cart(ctx, state, lang)
	if err != nil {
		return OrderResult{}, ErrOrderUnavailable
	}
	if cart.IsEmpty() {
		return OrderResult{}, ErrOrderCartEmpty
	}

	lines := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, fmt.Sprintf("%s - Qty: %d - ₹%s", line.Name, line.Quantity, domain.FormatAmount(line.LineTotal())))
	}
	message := fmt.Sprintf("Order Request:\n%s\n\nTotal: ₹%s", strings.Join(lines, "\n"), domain.FormatAmount(cart.Total()))
	link := fmt.Sprintf("%s/%s?text=%s", s.base, s.orderPhone, url.QueryEscape(message))

	if err := s.opener.Open(ctx, link); err != nil {
		s.logger(ctx, "order.open_failed", map[string]any{"error": err.Error()})
	}
	s.logger(ctx, "order.placed", map[string]any{"lines": len(cart.Lines), "total": cart.Total()})
	return OrderResult{Message: message, Link: link}, nil
}

// ShareProduct formats one product into a share message with no fixed
// recipient, letting the user's messaging app choose.
func (s *orderService) ShareProduct(ctx context.Context, lang domain.Language, productID int) (ShareResult, error) {
	if s == nil || s.repo == nil {
		return ShareResult{}, ErrOrderUnavailable
	}
	p, err := s.repo.Product(lang, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ShareResult{}, ErrOrderProductNotFound
		}
		return ShareResult{}, ErrOrderUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎁 *%s*\n\n", p.Name)
	fmt.Fprintf(&b, "📦 Type: %s\n", p.Type)
	fmt.Fprintf(&b, "💰 Price: ₹%s\n", domain.FormatAmount(p.UnitPrice))
	fmt.Fprintf(&b, "📊 Variant: %s\n", p.Variant)
	fmt.Fprintf(&b, "🎯 Slots: %d\n", p.SlotCount)
	fmt.Fprintf(&b, "💵 Slot Price: ₹%s\n\n", domain.FormatAmount(p.SlotPrice))
	fmt.Fprintf(&b, "✨ Check out this amazing product from *%s*!\n\n", s.storeName)
	fmt.Fprintf(&b, "🛍️ Visit our catalog to order: %s", s.catalogURL)
	message := b.String()
	link := fmt.Sprintf("%s/?text=%s", s.base, url.QueryEscape(message))

	if err := s.opener.Open(ctx, link); err != nil {
		s.logger(ctx, "share.open_failed", map[string]any{"error": err.Error()})
	}
	return ShareResult{Message: message, Link: link}, nil
}
