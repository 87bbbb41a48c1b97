package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/cms"
	"github.com/rg-thatha/storefront/internal/i18n"
	"github.com/rg-thatha/storefront/internal/platform/httpx"
)

// ContentHandlers serves the static storefront pages.
type ContentHandlers struct {
	library *cms.Library
	bundle  *i18n.Bundle
}

// NewContentHandlers constructs the content endpoints.
func NewContentHandlers(library *cms.Library, bundle *i18n.Bundle) *ContentHandlers {
	return &ContentHandlers{library: library, bundle: bundle}
}

// Routes wires the /content endpoints onto the provided router.
func (h *ContentHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listPages)
	r.Get("/{slug}", h.getPage)
}

func (h *ContentHandlers) listPages(w http.ResponseWriter, r *http.Request) {
	if h.library == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("content_unavailable", "content is unavailable", http.StatusServiceUnavailable))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"pages": h.library.Slugs()})
}

func (h *ContentHandlers) getPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.library == nil {
		httpx.WriteError(ctx, w, httpx.NewError("content_unavailable", "content is unavailable", http.StatusServiceUnavailable))
		return
	}
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}
	page, err := h.library.Page(chi.URLParam(r, "slug"), lang)
	if err != nil {
		if errors.Is(err, cms.ErrPageNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("page_not_found", "page not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("content_unavailable", "content is unavailable", http.StatusServiceUnavailable))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}
