package assets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rg-thatha/storefront/internal/domain"
)

const imageExt = "jpg"

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	nonAmountChars = regexp.MustCompile(`[^\d.]`)
)

// Resolver derives product image paths deterministically. Folder names come
// from a fixed identifier lookup table so that every language variant of a
// product resolves to the same asset directory.
type Resolver struct {
	root        string
	placeholder string
	folders     map[int]string
}

// NewResolver constructs a Resolver rooted at the public asset prefix.
func NewResolver(root, placeholder string, folders map[int]string) *Resolver {
	normalized := make(map[int]string, len(folders))
	for id, name := range folders {
		normalized[id] = NormalizeFolder(name)
	}
	return &Resolver{
		root:        strings.TrimRight(strings.TrimSpace(root), "/"),
		placeholder: strings.TrimLeft(strings.TrimSpace(placeholder), "/"),
		folders:     normalized,
	}
}

// Folder resolves the canonical asset folder for a product identifier. An
// unmapped identifier yields the empty string, which produces a path that
// falls through the image-not-found handling downstream.
func (r *Resolver) Folder(id int) string {
	return r.folders[id]
}

// HasFolder reports whether the identifier is present in the lookup table.
func (r *Resolver) HasFolder(id int) bool {
	folder, ok := r.folders[id]
	return ok && folder != ""
}

// SinglePath returns the single-unit image path for the product.
func (r *Resolver) SinglePath(p domain.Product) string {
	return r.imagePath(p.ID, "Single", p.UnitPrice)
}

// SlotPath returns the slot-bundle image path for the product.
func (r *Resolver) SlotPath(p domain.Product) string {
	return r.imagePath(p.ID, "Slot", p.SlotPrice)
}

// PlaceholderPath returns the fixed fallback image shown when a product image
// fails to load.
func (r *Resolver) PlaceholderPath() string {
	return fmt.Sprintf("%s/%s", r.root, r.placeholder)
}

func (r *Resolver) imagePath(id int, kind string, amount float64) string {
	return fmt.Sprintf("%s/%s/%s(Rs_%s).%s", r.root, r.Folder(id), kind, normalizeAmount(amount), imageExt)
}

// NormalizeFolder produces a filesystem/URL-safe directory name from a
// canonical product label: trim, collapse whitespace runs to underscores,
// strip anything outside [A-Za-z0-9_-].
func NormalizeFolder(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = whitespaceRuns.ReplaceAllString(name, "_")
	return unsafeChars.ReplaceAllString(name, "")
}

// normalizeAmount renders a price for use in a file name, keeping only
// digits and decimal points.
func normalizeAmount(v float64) string {
	return nonAmountChars.ReplaceAllString(domain.FormatAmount(v), "")
}
