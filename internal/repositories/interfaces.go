package repositories

import (
	"errors"

	"github.com/rg-thatha/storefront/internal/domain"
)

// Sentinel errors returned by catalog repositories. Callers are expected to
// branch with errors.Is rather than inspecting concrete types.
var (
	// ErrLanguageUnknown indicates the repository carries no catalog for the
	// requested language.
	ErrLanguageUnknown = errors.New("repositories: unknown catalog language")
	// ErrProductNotFound indicates no product with the requested id exists.
	ErrProductNotFound = errors.New("repositories: product not found")
)

// CatalogRepository provides read access to the product catalog. The catalog
// is immutable once loaded, so implementations return data directly without a
// context parameter.
type CatalogRepository interface {
	// Languages lists the catalog languages in presentation order.
	Languages() []domain.Language
	// Products returns every product for the given language in catalog order.
	Products(lang domain.Language) ([]domain.Product, error)
	// Product returns the product with the given id for the given language.
	Product(lang domain.Language, id int) (domain.Product, error)
	// FolderTable maps product ids to their image folder names. Folder names
	// are shared between products that are variants of the same item.
	FolderTable() map[int]string
}
