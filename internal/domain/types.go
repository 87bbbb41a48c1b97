package domain

import "strconv"

// Language identifies one of the parallel catalog translations.
type Language string

const (
	// LanguageEnglish is the default storefront language.
	LanguageEnglish Language = "english"
	// LanguageTamil renders the catalog in Tamil script.
	LanguageTamil Language = "tamil"
	// LanguageTanglish renders the catalog as romanised Tamil.
	LanguageTanglish Language = "tanglish"
)

// Languages returns every supported catalog language in preference order.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageTamil, LanguageTanglish}
}

// ParseLanguage validates a raw language key against the supported set.
func ParseLanguage(raw string) (Language, bool) {
	switch Language(raw) {
	case LanguageEnglish, LanguageTamil, LanguageTanglish:
		return Language(raw), true
	default:
		return "", false
	}
}

// Product is one read-only catalog record. The identifier is stable across
// every language list and denotes the same real-world product.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"product_name"`
	Type      string  `json:"product_type"`
	UnitPrice float64 `json:"price_per_product"`
	Variant   string  `json:"variant"`
	SlotCount int     `json:"slot_count"`
	SlotPrice float64 `json:"slot_total_price"`
}

// FormatAmount renders a price the way the storefront displays it: whole
// rupee values without a decimal tail, fractional values as written.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ImageSlot names one of the two fixed image positions on a product tile.
type ImageSlot string

const (
	// SlotSingle is the single-unit product image.
	SlotSingle ImageSlot = "single"
	// SlotBundle is the slot-bundle (multi-unit pack) image.
	SlotBundle ImageSlot = "slot"
)

// ParseImageSlot validates a raw slot key.
func ParseImageSlot(raw string) (ImageSlot, bool) {
	switch ImageSlot(raw) {
	case SlotSingle, SlotBundle:
		return ImageSlot(raw), true
	default:
		return "", false
	}
}

// LoadStatus tracks the terminal outcome of an image fetch.
type LoadStatus string

const (
	// LoadUnknown means no load or error callback has fired yet.
	LoadUnknown LoadStatus = "unknown"
	// LoadLoaded means the image rendered successfully.
	LoadLoaded LoadStatus = "loaded"
	// LoadFailed means the image fetch ended in an error callback.
	LoadFailed LoadStatus = "failed"
)

// ImageStatus records the per-slot load state for one product.
type ImageStatus struct {
	Single LoadStatus `json:"single"`
	Slot   LoadStatus `json:"slot"`
}

// AllFailed reports whether the product has no available imagery: both slots
// reached the failed state.
func (s ImageStatus) AllFailed() bool {
	return s.Single == LoadFailed && s.Slot == LoadFailed
}

// CartEntry is the authoritative per-product record of desired quantity and
// cart membership. Quantity defaults to 1 and never drops below it.
type CartEntry struct {
	Quantity int
	InCart   bool
}

// CartState unifies the quantity map and the cart into one mapping keyed by
// product identifier. Order preserves first-add sequence so the derived cart
// renders lines in a stable order.
type CartState struct {
	Entries map[int]*CartEntry
	Order   []int
}

// NewCartState returns an empty cart state.
func NewCartState() *CartState {
	return &CartState{Entries: map[int]*CartEntry{}}
}

// Entry returns the record for id, lazily creating it at the default
// quantity of 1.
func (c *CartState) Entry(id int) *CartEntry {
	if c.Entries == nil {
		c.Entries = map[int]*CartEntry{}
	}
	e, ok := c.Entries[id]
	if !ok {
		e = &CartEntry{Quantity: 1}
		c.Entries[id] = e
	}
	return e
}

// CartLine is one derived cart row: a copy of the product plus the desired
// quantity. At most one line exists per product identifier.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the extended price for the line.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is the ordered view over the in-cart entries of a CartState.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// ItemCount sums quantities across all lines; it backs the cart badge.
func (c Cart) ItemCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total sums unit price times quantity across all lines.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	return total
}

// GallerySlide is one image in an open gallery.
type GallerySlide struct {
	Source string `json:"src"`
	Label  string `json:"label"`
	Failed bool   `json:"failed"`
}

// Gallery is the open state of the image viewer. A nil *Gallery means the
// viewer is closed. The gallery always operates over exactly the two images
// of the product that opened it.
type Gallery struct {
	ProductID int            `json:"product_id"`
	Current   int            `json:"current"`
	Slides    []GallerySlide `json:"slides"`
}

// AllFailed reports whether every slide in the gallery reached the failed
// state, which suppresses navigation and collapses the viewer to a single
// placeholder.
func (g *Gallery) AllFailed() bool {
	if g == nil || len(g.Slides) == 0 {
		return false
	}
	for _, s := range g.Slides {
		if !s.Failed {
			return false
		}
	}
	return true
}
