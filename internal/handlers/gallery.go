package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/i18n"
	"github.com/rg-thatha/storefront/internal/platform/httpx"
	"github.com/rg-thatha/storefront/internal/platform/requestctx"
	"github.com/rg-thatha/storefront/internal/platform/session"
	"github.com/rg-thatha/storefront/internal/services"
)

// GalleryHandlers exposes the session-scoped image viewer endpoints.
type GalleryHandlers struct {
	store   *session.Store
	gallery services.GalleryService
	bundle  *i18n.Bundle
}

// NewGalleryHandlers constructs the gallery endpoints.
func NewGalleryHandlers(store *session.Store, gallery services.GalleryService, bundle *i18n.Bundle) *GalleryHandlers {
	return &GalleryHandlers{store: store, gallery: gallery, bundle: bundle}
}

// Routes wires the /gallery endpoints onto the provided router.
func (h *GalleryHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.current)
	r.Post("/open", h.open)
	r.Post("/next", h.next)
	r.Post("/prev", h.prev)
	r.Post("/select", h.selectSlide)
	r.Post("/slides/{index}/failed", h.slideFailed)
	r.Delete("/", h.close)
}

type galleryPayload struct {
	Open    bool            `json:"open"`
	Gallery *domain.Gallery `json:"gallery,omitempty"`
}

func (h *GalleryHandlers) current(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var payload galleryPayload
	err := h.store.View(sessionID, func(state *session.State) error {
		if state.Gallery != nil {
			payload = galleryPayload{Open: true, Gallery: state.Gallery}
		}
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h *GalleryHandlers) open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}
	var req struct {
		ProductID int `json:"product_id"`
		Start     int `json:"start"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	var opened *domain.Gallery
	err = h.store.Update(sessionID, func(state *session.State) error {
		g, err := h.gallery.Open(ctx, lang, req.ProductID, req.Start, state.ImageStatus(req.ProductID))
		if err != nil {
			return err
		}
		state.Gallery = g
		opened = g
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, galleryPayload{Open: true, Gallery: opened})
}

func (h *GalleryHandlers) next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(g *domain.Gallery) error { return h.gallery.Next(r.Context(), g) })
}

func (h *GalleryHandlers) prev(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(g *domain.Gallery) error { return h.gallery.Prev(r.Context(), g) })
}

func (h *GalleryHandlers) selectSlide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	h.navigate(w, r, func(g *domain.Gallery) error { return h.gallery.Select(r.Context(), g, req.Index) })
}

func (h *GalleryHandlers) slideFailed(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "invalid slide index", http.StatusBadRequest))
		return
	}
	h.navigate(w, r, func(g *domain.Gallery) error { return h.gallery.SlideFailed(r.Context(), g, index) })
}

func (h *GalleryHandlers) close(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	err := h.store.Update(sessionID, func(state *session.State) error {
		state.Gallery = nil
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, galleryPayload{Open: false})
}

func (h *GalleryHandlers) navigate(w http.ResponseWriter, r *http.Request, move func(*domain.Gallery) error) {
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var payload galleryPayload
	err := h.store.Update(sessionID, func(state *session.State) error {
		if err := move(state.Gallery); err != nil {
			return err
		}
		payload = galleryPayload{Open: true, Gallery: state.Gallery}
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h *GalleryHandlers) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.store == nil || h.gallery == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("gallery_unavailable", "gallery service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	sessionID := requestctx.SessionID(r.Context())
	if sessionID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("session_required", errMissingSession.Error(), http.StatusInternalServerError))
		return "", false
	}
	return sessionID, true
}

func (h *GalleryHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrGalleryProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrGalleryImagesFailed):
		httpx.WriteError(ctx, w, httpx.NewError("images_failed", "all images for this product failed to load", http.StatusConflict))
	case errors.Is(err, services.ErrGalleryNotOpen):
		httpx.WriteError(ctx, w, httpx.NewError("gallery_not_open", "gallery is not open", http.StatusConflict))
	case errors.Is(err, services.ErrGalleryInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid gallery input", http.StatusBadRequest))
	case errors.Is(err, session.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_expired", "session has expired", http.StatusUnauthorized))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("gallery_unavailable", "gallery service is unavailable", http.StatusServiceUnavailable))
	}
}
