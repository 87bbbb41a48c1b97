package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/platform/assets"
	"github.com/rg-thatha/storefront/internal/repositories"
)

var (
	errGalleryRepositoryRequired = errors.New("gallery service: repository is required")
	errGalleryResolverRequired   = errors.New("gallery service: asset resolver is required")
)

// ErrGalleryUnavailable indicates the gallery service cannot fulfil the request.
var ErrGalleryUnavailable = errors.New("gallery service: unavailable")

// ErrGalleryInvalidInput indicates the caller supplied an out-of-range index.
var ErrGalleryInvalidInput = errors.New("gallery service: invalid input")

// ErrGalleryProductNotFound indicates the product does not exist in the catalog.
var ErrGalleryProductNotFound = errors.New("gallery service: product not found")

// ErrGalleryImagesFailed indicates every image of the product failed to load,
// so there is nothing to view.
var ErrGalleryImagesFailed = errors.New("gallery service: all images failed")

// ErrGalleryNotOpen indicates a navigation call against a closed gallery.
var ErrGalleryNotOpen = errors.New("gallery service: gallery not open")

// GalleryServiceDeps wires the catalog and asset resolver for the viewer.
type GalleryServiceDeps struct {
	Repository repositories.CatalogRepository
	Resolver   *assets.Resolver
}

type galleryService struct {
	repo     repositories.CatalogRepository
	resolver *assets.Resolver
}

// NewGalleryService constructs a GalleryService enforcing dependency validation.
func NewGalleryService(deps GalleryServiceDeps) (GalleryService, error) {
	if deps.Repository == nil {
		return nil, errGalleryRepositoryRequired
	}
	if deps.Resolver == nil {
		return nil, errGalleryResolverRequired
	}
	return &galleryService{repo: deps.Repository, resolver: deps.Resolver}, nil
}

// Open builds the two-slide gallery for a product. Opening is refused when
// both images already failed to load; a single failed slide still opens with
// the placeholder in its position.
func (s *galleryService) Open(ctx context.Context, lang domain.Language, productID int, start int, status *domain.ImageStatus) (*domain.Gallery, error) {
	if s == nil || s.repo == nil {
		return nil, ErrGalleryUnavailable
	}
	p, err := s.repo.Product(lang, productID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			return nil, ErrGalleryProductNotFound
		case errors.Is(err, repositories.ErrLanguageUnknown):
			return nil, ErrGalleryInvalidInput
		default:
			return nil, ErrGalleryUnavailable
		}
	}
	if status != nil && status.AllFailed() {
		return nil, ErrGalleryImagesFailed
	}

	slides := []domain.GallerySlide{
		{Source: s.resolver.SinglePath(p), Label: p.Name},
		{Source: s.resolver.SlotPath(p), Label: fmt.Sprintf("%s (%d pack)", p.Name, p.SlotCount)},
	}
	if status != nil {
		if status.Single == domain.LoadFailed {
			slides[0].Failed = true
			slides[0].Source = s.resolver.PlaceholderPath()
		}
		if status.Slot == domain.LoadFailed {
			slides[1].Failed = true
			slides[1].Source = s.resolver.PlaceholderPath()
		}
	}
	if start < 0 || start >= len(slides) {
		return nil, ErrGalleryInvalidInput
	}
	return &domain.Gallery{ProductID: productID, Current: start, Slides: slides}, nil
}

// Next advances to the following slide, wrapping past the last one.
// Navigation is a no-op once every slide has failed.
func (s *galleryService) Next(ctx context.Context, g *domain.Gallery) error {
	if g == nil {
		return ErrGalleryNotOpen
	}
	if g.AllFailed() {
		return nil
	}
	g.Current = (g.Current + 1) % len(g.Slides)
	return nil
}

// Prev steps back to the previous slide, wrapping before the first one.
func (s *galleryService) Prev(ctx context.Context, g *domain.Gallery) error {
	if g == nil {
		return ErrGalleryNotOpen
	}
	if g.AllFailed() {
		return nil
	}
	g.Current = (g.Current - 1 + len(g.Slides)) % len(g.Slides)
	return nil
}

// Select jumps straight to the slide at index.
func (s *galleryService) Select(ctx context.Context, g *domain.Gallery, index int) error {
	if g == nil {
		return ErrGalleryNotOpen
	}
	if index < 0 || index >= len(g.Slides) {
		return ErrGalleryInvalidInput
	}
	if g.AllFailed() {
		return nil
	}
	g.Current = index
	return nil
}

// SlideFailed records a load failure for the slide at index and swaps its
// source for the placeholder.
func (s *galleryService) SlideFailed(ctx context.Context, g *domain.Gallery, index int) error {
	if g == nil {
		return ErrGalleryNotOpen
	}
	if index < 0 || index >= len(g.Slides) {
		return ErrGalleryInvalidInput
	}
	g.Slides[index].Failed = true
	g.Slides[index].Source = s.resolver.PlaceholderPath()
	return nil
}
