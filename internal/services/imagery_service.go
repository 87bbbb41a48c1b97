package services

import (
	"context"
	"errors"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/platform/assets"
	"github.com/rg-thatha/storefront/internal/repositories"
)

var (
	errImageryRepositoryRequired = errors.New("imagery service: repository is required")
	errImageryResolverRequired   = errors.New("imagery service: asset resolver is required")
)

// ErrImageryUnavailable indicates the imagery service cannot fulfil the request.
var ErrImageryUnavailable = errors.New("imagery service: unavailable")

// ErrImageryInvalidInput indicates the caller supplied an unknown slot or outcome.
var ErrImageryInvalidInput = errors.New("imagery service: invalid input")

// ErrImageryProductNotFound indicates the product does not exist in the catalog.
var ErrImageryProductNotFound = errors.New("imagery service: product not found")

// ImageryServiceDeps wires the catalog and asset resolver for image tracking.
type ImageryServiceDeps struct {
	Repository repositories.CatalogRepository
	Resolver   *assets.Resolver
}

type imageryService struct {
	repo     repositories.CatalogRepository
	resolver *assets.Resolver
}

// NewImageryService constructs an ImageryService enforcing dependency validation.
func NewImageryService(deps ImageryServiceDeps) (ImageryService, error) {
	if deps.Repository == nil {
		return nil, errImageryRepositoryRequired
	}
	if deps.Resolver == nil {
		return nil, errImageryResolverRequired
	}
	return &imageryService{repo: deps.Repository, resolver: deps.Resolver}, nil
}

// RecordResult stores the load outcome reported by the client for one image
// slot. Outcomes only move forward: a slot already marked failed stays failed
// even if a later report claims success, so a flapping image cannot reopen a
// gallery that was gated off.
func (s *imageryService) RecordResult(ctx context.Context, status *domain.ImageStatus, slot domain.ImageSlot, outcome domain.LoadStatus) error {
	if s == nil {
		return ErrImageryUnavailable
	}
	if status == nil {
		return ErrImageryInvalidInput
	}
	if outcome != domain.LoadLoaded && outcome != domain.LoadFailed {
		return ErrImageryInvalidInput
	}
	switch slot {
	case domain.SlotSingle:
		if status.Single != domain.LoadFailed {
			status.Single = outcome
		}
	case domain.SlotBundle:
		if status.Slot != domain.LoadFailed {
			status.Slot = outcome
		}
	default:
		return ErrImageryInvalidInput
	}
	return nil
}

// DisplayImages resolves the paths the client should render for a product,
// substituting the placeholder for any slot that reported a failure.
func (s *imageryService) DisplayImages(ctx context.Context, productID int, status *domain.ImageStatus) (ProductImages, error) {
	if s == nil || s.repo == nil {
		return ProductImages{}, ErrImageryUnavailable
	}
	p, err := s.repo.Product(domain.LanguageEnglish, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ProductImages{}, ErrImageryProductNotFound
		}
		return ProductImages{}, ErrImageryUnavailable
	}

	images := ProductImages{
		Single:      s.resolver.SinglePath(p),
		Slot:        s.resolver.SlotPath(p),
		Placeholder: s.resolver.PlaceholderPath(),
	}
	if status != nil {
		if status.Single == domain.LoadFailed {
			images.Single = images.Placeholder
		}
		if status.Slot == domain.LoadFailed {
			images.Slot = images.Placeholder
		}
	}
	return images, nil
}
