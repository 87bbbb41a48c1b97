package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/repositories"
)

var errCartRepositoryRequired = errors.New("cart service: repository is required")

// ErrCartUnavailable indicates the cart service cannot fulfil the request.
var ErrCartUnavailable = errors.New("cart service: unavailable")

// ErrCartInvalidInput indicates the caller supplied invalid input.
var ErrCartInvalidInput = errors.New("cart service: invalid input")

// ErrCartUnknownProduct indicates the product id does not exist in the catalog.
var ErrCartUnknownProduct = errors.New("cart service: unknown product")

// ErrCartNotInCart indicates the operation targets a product that is not in the cart.
var ErrCartNotInCart = errors.New("cart service: product not in cart")

// CartServiceDeps wires the catalog dependency for cart operations.
type CartServiceDeps struct {
	Repository repositories.CatalogRepository
	Logger     func(context.Context, string, map[string]any)
}

type cartService struct {
	repo   repositories.CatalogRepository
	logger func(context.Context, string, map[string]any)
}

// NewCartService constructs a CartService enforcing dependency validation.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Repository == nil {
		return nil, errCartRepositoryRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &cartService{repo: deps.Repository, logger: logger}, nil
}

// SetQuantity records the desired quantity for a product and puts the
// product in the cart: a quantity edit is a cart edit, there is no staged
// quantity waiting for a separate add. The raw value comes straight from a
// text input; anything without a leading integer of at least 1 clamps to 1.
// The applied quantity is returned.
func (s *cartService) SetQuantity(ctx context.Context, state *domain.CartState, productID int, raw string) (int, error) {
	if s == nil || s.repo == nil {
		return 0, ErrCartUnavailable
	}
	if state == nil {
		return 0, ErrCartInvalidInput
	}
	if err := s.requireProduct(productID); err != nil {
		return 0, err
	}

	qty := parseQuantity(raw)
	entry := state.Entry(productID)
	entry.Quantity = qty
	if !entry.InCart {
		entry.InCart = true
		state.Order = appendIfAbsent(state.Order, productID)
		s.logger(ctx, "cart.add", map[string]any{"product_id": productID, "quantity": qty})
	}
	return qty, nil
}

// parseQuantity reads the leading integer of a raw text-input value, so a
// fractional entry like "2.5" truncates to 2. No leading integer, or a value
// below 1, clamps to 1.
func parseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	parsed, err := strconv.Atoi(raw[:end])
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}

// AddToCart marks the product as in the cart at its current desired
// quantity. Adding a product already in the cart is a no-op.
func (s *cartService) AddToCart(ctx context.Context, state *domain.CartState, productID int) error {
	if s == nil || s.repo == nil {
		return ErrCartUnavailable
	}
	if state == nil {
		return ErrCartInvalidInput
	}
	if err := s.requireProduct(productID); err != nil {
		return err
	}

	entry := state.Entry(productID)
	if entry.InCart {
		return nil
	}
	entry.InCart = true
	state.Order = appendIfAbsent(state.Order, productID)
	s.logger(ctx, "cart.add", map[string]any{"product_id": productID, "quantity": entry.Quantity})
	return nil
}

// RemoveFromCart takes the product out of the cart and resets its desired
// quantity to 1. Removing a product that is not in the cart is a no-op.
func (s *cartService) RemoveFromCart(ctx context.Context, state *domain.CartState, productID int) error {
	if s == nil || s.repo == nil {
		return ErrCartUnavailable
	}
	if state == nil {
		return ErrCartInvalidInput
	}

	entry, ok := state.Entries[productID]
	if !ok || !entry.InCart {
		return nil
	}
	entry.InCart = false
	entry.Quantity = 1
	state.Order = removeID(state.Order, productID)
	s.logger(ctx, "cart.remove", map[string]any{"product_id": productID})
	return nil
}

// SetCartQuantity changes the quantity of a line already in the cart. A
// quantity of zero or less removes the line, reported via the removed flag.
func (s *cartService) SetCartQuantity(ctx context.Context, state *domain.CartState, productID int, quantity int) (bool, error) {
	if s == nil || s.repo == nil {
		return false, ErrCartUnavailable
	}
	if state == nil {
		return false, ErrCartInvalidInput
	}

	entry, ok := state.Entries[productID]
	if !ok || !entry.InCart {
		return false, ErrCartNotInCart
	}
	if quantity <= 0 {
		if err := s.RemoveFromCart(ctx, state, productID); err != nil {
			return false, err
		}
		return true, nil
	}
	entry.Quantity = quantity
	return false, nil
}

// Cart derives the ordered cart view for the given language. Lines appear in
// the order products were first added.
func (s *cartService) Cart(ctx context.Context, state *domain.CartState, lang domain.Language) (domain.Cart, error) {
	if s == nil || s.repo == nil {
		return domain.Cart{}, ErrCartUnavailable
	}
	if state == nil {
		return domain.Cart{}, ErrCartInvalidInput
	}

	cart := domain.Cart{Lines: make([]domain.CartLine, 0, len(state.Order))}
	for _, id := range state.Order {
		entry, ok := state.Entries[id]
		if !ok || !entry.InCart {
			continue
		}
		p, err := s.repo.Product(lang, id)
		if err != nil {
			if errors.Is(err, repositories.ErrLanguageUnknown) {
				return domain.Cart{}, ErrCartInvalidInput
			}
			// A cart entry for a product missing from the catalog means the
			// state and the data files disagree; drop the line rather than
			// failing the whole cart.
			s.logger(ctx, "cart.orphan_line", map[string]any{"product_id": id})
			continue
		}
		cart.Lines = append(cart.Lines, domain.CartLine{Product: p, Quantity: entry.Quantity})
	}
	return cart, nil
}

func (s *cartService) requireProduct(id int) error {
	_, err := s.repo.Product(domain.LanguageEnglish, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrCartUnknownProduct
		}
		return ErrCartUnavailable
	}
	return nil
}

func appendIfAbsent(order []int, id int) []int {
	for _, existing := range order {
		if existing == id {
			return order
		}
	}
	return append(order, id)
}

func removeID(order []int, id int) []int {
	out := order[:0]
	for _, existing := range order {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
