package services

import (
	"context"
	"errors"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/platform/assets"
	"github.com/rg-thatha/storefront/internal/repositories"
)

var (
	errCatalogRepositoryRequired = errors.New("catalog service: repository is required")
	errCatalogResolverRequired   = errors.New("catalog service: asset resolver is required")
)

// ErrCatalogUnavailable indicates the catalog service cannot fulfil the request.
var ErrCatalogUnavailable = errors.New("catalog service: unavailable")

// ErrCatalogLanguageUnknown indicates the requested catalog language does not exist.
var ErrCatalogLanguageUnknown = errors.New("catalog service: unknown language")

// ErrCatalogProductNotFound indicates the requested product does not exist.
var ErrCatalogProductNotFound = errors.New("catalog service: product not found")

// CatalogServiceDeps wires the repository and asset resolver for catalog reads.
type CatalogServiceDeps struct {
	Repository repositories.CatalogRepository
	Resolver   *assets.Resolver
}

type catalogService struct {
	repo     repositories.CatalogRepository
	resolver *assets.Resolver
}

// NewCatalogService constructs a CatalogService enforcing dependency validation.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Repository == nil {
		return nil, errCatalogRepositoryRequired
	}
	if deps.Resolver == nil {
		return nil, errCatalogResolverRequired
	}
	return &catalogService{repo: deps.Repository, resolver: deps.Resolver}, nil
}

func (s *catalogService) Languages() []domain.Language {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Languages()
}

// Products returns the catalog for the given language with image paths
// resolved for every product.
func (s *catalogService) Products(ctx context.Context, lang domain.Language) ([]ProductView, error) {
	if s == nil || s.repo == nil {
		return nil, ErrCatalogUnavailable
	}
	list, err := s.repo.Products(lang)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	views := make([]ProductView, 0, len(list))
	for _, p := range list {
		views = append(views, s.view(p))
	}
	return views, nil
}

func (s *catalogService) Product(ctx context.Context, lang domain.Language, id int) (ProductView, error) {
	if s == nil || s.repo == nil {
		return ProductView{}, ErrCatalogUnavailable
	}
	p, err := s.repo.Product(lang, id)
	if err != nil {
		return ProductView{}, s.translateRepoError(err)
	}
	return s.view(p), nil
}

func (s *catalogService) view(p domain.Product) ProductView {
	return ProductView{
		Product: p,
		Images: ProductImages{
			Single:      s.resolver.SinglePath(p),
			Slot:        s.resolver.SlotPath(p),
			Placeholder: s.resolver.PlaceholderPath(),
		},
	}
}

func (s *catalogService) translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrLanguageUnknown):
		return ErrCatalogLanguageUnknown
	case errors.Is(err, repositories.ErrProductNotFound):
		return ErrCatalogProductNotFound
	default:
		return ErrCatalogUnavailable
	}
}
