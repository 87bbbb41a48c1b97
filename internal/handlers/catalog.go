package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/i18n"
	"github.com/rg-thatha/storefront/internal/platform/httpx"
	"github.com/rg-thatha/storefront/internal/services"
)

// CatalogHandlers exposes the localized product catalog.
type CatalogHandlers struct {
	catalog services.CatalogService
	bundle  *i18n.Bundle
}

// NewCatalogHandlers constructs the catalog endpoints.
func NewCatalogHandlers(catalog services.CatalogService, bundle *i18n.Bundle) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, bundle: bundle}
}

// Routes wires the /catalog endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Get("/languages", h.listLanguages)
	r.Get("/strings", h.uiStrings)
	r.Get("/{productID}", h.getProduct)
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}
	products, err := h.catalog.Products(ctx, lang)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"products": products,
	})
}

func (h *CatalogHandlers) listLanguages(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"languages": h.catalog.Languages()})
}

func (h *CatalogHandlers) uiStrings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.bundle == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "translations are unavailable", http.StatusServiceUnavailable))
		return
	}
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"strings":  h.bundle.Strings(lang),
	})
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	view, err := h.catalog.Product(ctx, lang, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *CatalogHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrCatalogLanguageUnknown):
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", "unknown catalog language", http.StatusBadRequest))
	case errors.Is(err, services.ErrCatalogProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
	}
}
