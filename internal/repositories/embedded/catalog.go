// Package embedded provides a CatalogRepository backed by data files compiled
// into the binary. The catalog is fully validated at load time so the rest of
// the application can treat it as trusted.
package embedded

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/repositories"
)

//go:embed data/*.json data/folders.yaml
var dataFS embed.FS

var catalogFiles = map[domain.Language]string{
	domain.LanguageEnglish:  "data/english.json",
	domain.LanguageTamil:    "data/tamil.json",
	domain.LanguageTanglish: "data/tanglish.json",
}

// Catalog is an immutable in-memory catalog loaded from the embedded data
// files. It implements repositories.CatalogRepository.
type Catalog struct {
	products map[domain.Language][]domain.Product
	byID     map[domain.Language]map[int]domain.Product
	folders  map[int]string
}

var _ repositories.CatalogRepository = (*Catalog)(nil)

// LoadCatalog parses and validates the embedded data files. It returns an
// error when the files disagree with each other so a broken build fails at
// startup rather than serving a partial catalog.
func LoadCatalog() (*Catalog, error) {
	cat := &Catalog{
		products: make(map[domain.Language][]domain.Product, len(catalogFiles)),
		byID:     make(map[domain.Language]map[int]domain.Product, len(catalogFiles)),
	}
	for lang, path := range catalogFiles {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("embedded: read %s: %w", path, err)
		}
		var list []domain.Product
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("embedded: parse %s: %w", path, err)
		}
		index := make(map[int]domain.Product, len(list))
		for _, p := range list {
			if p.ID <= 0 {
				return nil, fmt.Errorf("embedded: %s: product %q has invalid id %d", path, p.Name, p.ID)
			}
			if p.Name == "" {
				return nil, fmt.Errorf("embedded: %s: product %d has empty name", path, p.ID)
			}
			if p.UnitPrice <= 0 {
				return nil, fmt.Errorf("embedded: %s: product %d has invalid price %v", path, p.ID, p.UnitPrice)
			}
			if _, dup := index[p.ID]; dup {
				return nil, fmt.Errorf("embedded: %s: duplicate product id %d", path, p.ID)
			}
			index[p.ID] = p
		}
		cat.products[lang] = list
		cat.byID[lang] = index
	}

	if err := cat.checkAlignment(); err != nil {
		return nil, err
	}

	folders, err := loadFolders()
	if err != nil {
		return nil, err
	}
	for id := range cat.byID[domain.LanguageEnglish] {
		if folders[id] == "" {
			return nil, fmt.Errorf("embedded: product %d has no image folder", id)
		}
	}
	cat.folders = folders
	return cat, nil
}

// MustLoadCatalog is LoadCatalog for main wiring: the data files ship with
// the binary, so a load failure is a build defect.
func MustLoadCatalog() *Catalog {
	cat, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return cat
}

// checkAlignment verifies every language carries the same id set in the same
// order with the same prices. Names and types are the only fields allowed to
// differ between languages.
func (c *Catalog) checkAlignment() error {
	base := c.products[domain.LanguageEnglish]
	for lang, list := range c.products {
		if lang == domain.LanguageEnglish {
			continue
		}
		if len(list) != len(base) {
			return fmt.Errorf("embedded: %s catalog has %d products, english has %d", lang, len(list), len(base))
		}
		for i, p := range list {
			ref := base[i]
			if p.ID != ref.ID {
				return fmt.Errorf("embedded: %s catalog position %d has id %d, english has %d", lang, i, p.ID, ref.ID)
			}
			if p.UnitPrice != ref.UnitPrice || p.SlotPrice != ref.SlotPrice || p.SlotCount != ref.SlotCount {
				return fmt.Errorf("embedded: %s catalog product %d pricing differs from english", lang, p.ID)
			}
		}
	}
	return nil
}

func loadFolders() (map[int]string, error) {
	raw, err := dataFS.ReadFile("data/folders.yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded: read folders.yaml: %w", err)
	}
	var doc struct {
		Folders map[int]string `yaml:"folders"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("embedded: parse folders.yaml: %w", err)
	}
	if len(doc.Folders) == 0 {
		return nil, fmt.Errorf("embedded: folders.yaml has no entries")
	}
	return doc.Folders, nil
}

// Languages lists the catalog languages in presentation order.
func (c *Catalog) Languages() []domain.Language {
	return domain.Languages()
}

// Products returns every product for the given language in catalog order.
// The returned slice is a copy, so callers may reorder it freely.
func (c *Catalog) Products(lang domain.Language) ([]domain.Product, error) {
	list, ok := c.products[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrLanguageUnknown, lang)
	}
	out := make([]domain.Product, len(list))
	copy(out, list)
	return out, nil
}

// Product returns the product with the given id for the given language.
func (c *Catalog) Product(lang domain.Language, id int) (domain.Product, error) {
	index, ok := c.byID[lang]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", repositories.ErrLanguageUnknown, lang)
	}
	p, ok := index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: id %d", repositories.ErrProductNotFound, id)
	}
	return p, nil
}

// FolderTable maps product ids to their image folder names. The returned map
// is a copy.
func (c *Catalog) FolderTable() map[int]string {
	out := make(map[int]string, len(c.folders))
	for id, name := range c.folders {
		out[id] = name
	}
	return out
}

// IDs returns every product id in ascending order. Handy for validation and
// tests.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.byID[domain.LanguageEnglish]))
	for id := range c.byID[domain.LanguageEnglish] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
