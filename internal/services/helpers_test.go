package services

import (
	"fmt"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/platform/assets"
	"github.com/rg-thatha/storefront/internal/repositories"
)

// stubCatalog is an in-memory CatalogRepository for service tests.
type stubCatalog struct {
	products map[domain.Language][]domain.Product
	folders  map[int]string
}

func newStubCatalog() *stubCatalog {
	english := []domain.Product{
		{ID: 1, Name: "Almond", Type: "Dry Fruit", UnitPrice: 150, Variant: "100g", SlotCount: 4, SlotPrice: 500},
		{ID: 2, Name: "Pepper", Type: "Spice", UnitPrice: 200, Variant: "250g", SlotCount: 4, SlotPrice: 760},
		{ID: 3, Name: "Cloves", Type: "Spice", UnitPrice: 60, Variant: "50g", SlotCount: 10, SlotPrice: 550},
	}
	tanglish := []domain.Product{
		{ID: 1, Name: "Paatham", Type: "Dry Fruit", UnitPrice: 150, Variant: "100g", SlotCount: 4, SlotPrice: 500},
		{ID: 2, Name: "Milagu", Type: "Masala", UnitPrice: 200, Variant: "250g", SlotCount: 4, SlotPrice: 760},
		{ID: 3, Name: "Kirambu", Type: "Masala", UnitPrice: 60, Variant: "50g", SlotCount: 10, SlotPrice: 550},
	}
	return &stubCatalog{
		products: map[domain.Language][]domain.Product{
			domain.LanguageEnglish:  english,
			domain.LanguageTamil:    english,
			domain.LanguageTanglish: tanglish,
		},
		folders: map[int]string{1: "Paatham", 2: "Milagu", 3: "Kirambu"},
	}
}

func (s *stubCatalog) Languages() []domain.Language { return domain.Languages() }

func (s *stubCatalog) Products(lang domain.Language) ([]domain.Product, error) {
	list, ok := s.products[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrLanguageUnknown, lang)
	}
	return list, nil
}

func (s *stubCatalog) Product(lang domain.Language, id int) (domain.Product, error) {
	list, ok := s.products[lang]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", repositories.ErrLanguageUnknown, lang)
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: id %d", repositories.ErrProductNotFound, id)
}

func (s *stubCatalog) FolderTable() map[int]string { return s.folders }

func newTestResolver(repo repositories.CatalogRepository) *assets.Resolver {
	return assets.NewResolver("/assets", "no-image/No_Image_Available.jpg", repo.FolderTable())
}
