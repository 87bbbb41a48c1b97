package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/platform/httpx"
	"github.com/rg-thatha/storefront/internal/platform/requestctx"
	"github.com/rg-thatha/storefront/internal/platform/session"
	"github.com/rg-thatha/storefront/internal/services"
)

// ImageHandlers exposes the image load-status callbacks.
type ImageHandlers struct {
	store   *session.Store
	imagery services.ImageryService
}

// NewImageHandlers constructs the image status endpoints.
func NewImageHandlers(store *session.Store, imagery services.ImageryService) *ImageHandlers {
	return &ImageHandlers{store: store, imagery: imagery}
}

// Routes wires the /images endpoints onto the provided router.
func (h *ImageHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/{productID}", h.getImages)
	r.Post("/{productID}/{slot}", h.recordResult)
}

func (h *ImageHandlers) getImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	var images services.ProductImages
	err = h.store.View(sessionID, func(state *session.State) error {
		images, err = h.imagery.DisplayImages(ctx, id, state.ImageStatus(id))
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product_id": id, "images": images})
}

// recordResult is the callback the client fires when an image finishes
// loading or errors out. It answers with the effective display paths so the
// client can swap in the placeholder immediately.
func (h *ImageHandlers) recordResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	slot, ok := domain.ParseImageSlot(chi.URLParam(r, "slot"))
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "slot must be single or slot", http.StatusBadRequest))
		return
	}
	var req struct {
		Outcome string `json:"outcome"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	var outcome domain.LoadStatus
	switch req.Outcome {
	case "loaded":
		outcome = domain.LoadLoaded
	case "failed":
		outcome = domain.LoadFailed
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "outcome must be loaded or failed", http.StatusBadRequest))
		return
	}

	var images services.ProductImages
	err = h.store.Update(sessionID, func(state *session.State) error {
		status := state.ImageStatus(id)
		if err := h.imagery.RecordResult(ctx, status, slot, outcome); err != nil {
			return err
		}
		images, err = h.imagery.DisplayImages(ctx, id, status)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product_id": id, "images": images})
}

func (h *ImageHandlers) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.store == nil || h.imagery == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("imagery_unavailable", "imagery service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	sessionID := requestctx.SessionID(r.Context())
	if sessionID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("session_required", errMissingSession.Error(), http.StatusInternalServerError))
		return "", false
	}
	return sessionID, true
}

func (h *ImageHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrImageryProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrImageryInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid image report", http.StatusBadRequest))
	case errors.Is(err, session.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_expired", "session has expired", http.StatusUnauthorized))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("imagery_unavailable", "imagery service is unavailable", http.StatusServiceUnavailable))
	}
}
