package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/i18n"
	"github.com/rg-thatha/storefront/internal/platform/httpx"
	"github.com/rg-thatha/storefront/internal/platform/requestctx"
	"github.com/rg-thatha/storefront/internal/platform/session"
	"github.com/rg-thatha/storefront/internal/services"
)

// OrderHandlers exposes the order placement and product share hand-offs.
type OrderHandlers struct {
	store  *session.Store
	orders services.OrderService
	bundle *i18n.Bundle
}

// NewOrderHandlers constructs the order endpoints.
func NewOrderHandlers(store *session.Store, orders services.OrderService, bundle *i18n.Bundle) *OrderHandlers {
	return &OrderHandlers{store: store, orders: orders, bundle: bundle}
}

// Routes wires the order and share endpoints onto the provided router.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/orders", h.placeOrder)
	r.Post("/products/{productID}/share", h.shareProduct)
}

func (h *OrderHandlers) placeOrder(w http.ResponseWriter, r *http.Request) {
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

	var result services.OrderResult
	err = h.store.Update(sessionID, func(state *session.State) error {
		result, err = h.orders.PlaceOrder(ctx, state.Cart, lang)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *OrderHandlers) shareProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("order_unavailable", "order service is unavailable", http.StatusServiceUnavailable))
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

	result, err := h.orders.ShareProduct(ctx, lang, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *OrderHandlers) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.store == nil || h.orders == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("order_unavailable", "order service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	sessionID := requestctx.SessionID(r.Context())
	if sessionID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("session_required", errMissingSession.Error(), http.StatusInternalServerError))
		return "", false
	}
	return sessionID, true
}

func (h *OrderHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrOrderCartEmpty):
		httpx.WriteError(ctx, w, httpx.NewError("cart_empty", "cart is empty", http.StatusConflict))
	case errors.Is(err, services.ErrOrderProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, session.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_expired", "session has expired", http.StatusUnauthorized))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("order_unavailable", "order service is unavailable", http.StatusServiceUnavailable))
	}
}
