package services

import (
	"context"

	"github.com/rg-thatha/storefront/internal/domain"
)

// ProductImages carries the resolved image paths for one product alongside
// the placeholder shown when a load fails.
type ProductImages struct {
	Single      string `json:"single"`
	Slot        string `json:"slot"`
	Placeholder string `json:"placeholder"`
}

// ProductView is a catalog product together with its resolved image paths.
type ProductView struct {
	domain.Product
	Images ProductImages `json:"images"`
}

// CatalogService serves the localized product catalog.
type CatalogService interface {
	Languages() []domain.Language
	Products(ctx context.Context, lang domain.Language) ([]ProductView, error)
	Product(ctx context.Context, lang domain.Language, id int) (ProductView, error)
}

// CartService mutates and derives the per-session cart state. The state
// pointer is owned by the caller, which holds the session lock for the
// duration of the call.
type CartService interface {
	SetQuantity(ctx context.Context, state *domain.CartState, productID int, raw string) (int, error)
	AddToCart(ctx context.Context, state *domain.CartState, productID int) error
	RemoveFromCart(ctx context.Context, state *domain.CartState, productID int) error
	SetCartQuantity(ctx context.Context, state *domain.CartState, productID int, quantity int) (removed bool, err error)
	Cart(ctx context.Context, state *domain.CartState, lang domain.Language) (domain.Cart, error)
}

// ImageryService records image load outcomes and reports effective display
// paths once failures are taken into account.
type ImageryService interface {
	RecordResult(ctx context.Context, status *domain.ImageStatus, slot domain.ImageSlot, outcome domain.LoadStatus) error
	DisplayImages(ctx context.Context, productID int, status *domain.ImageStatus) (ProductImages, error)
}

// GalleryService drives the two-image gallery viewer for a session.
type GalleryService interface {
	Open(ctx context.Context, lang domain.Language, productID int, start int, status *domain.ImageStatus) (*domain.Gallery, error)
	Next(ctx context.Context, g *domain.Gallery) error
	Prev(ctx context.Context, g *domain.Gallery) error
	Select(ctx context.Context, g *domain.Gallery, index int) error
	SlideFailed(ctx context.Context, g *domain.Gallery, index int) error
}

// OrderResult is the outcome of handing a cart off to the messaging channel.
type OrderResult struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// ShareResult is the outcome of sharing a single product.
type ShareResult struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// OrderService formats carts and products into messaging hand-off links.
type OrderService interface {
	PlaceOrder(ctx context.Context, state *domain.CartState, lang domain.Language) (OrderResult, error)
	ShareProduct(ctx context.Context, lang domain.Language, productID int) (ShareResult, error)
}

// LinkOpener is the capability used to hand a link to the outside world,
// typically by recording it for the client to follow.
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}

// LinkOpenerFunc adapts a function to the LinkOpener interface.
type LinkOpenerFunc func(ctx context.Context, link string) error

// Open implements LinkOpener.
func (f LinkOpenerFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }
