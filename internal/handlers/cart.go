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

// CartHandlers exposes the session-scoped cart endpoints.
type CartHandlers struct {
	store  *session.Store
	carts  services.CartService
	bundle *i18n.Bundle
}

// NewCartHandlers constructs the cart endpoints.
func NewCartHandlers(store *session.Store, carts services.CartService, bundle *i18n.Bundle) *CartHandlers {
	return &CartHandlers{store: store, carts: carts, bundle: bundle}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Put("/quantity/{productID}", h.setQuantity)
	r.Post("/items/{productID}", h.addItem)
	r.Delete("/items/{productID}", h.removeItem)
	r.Patch("/items/{productID}", h.setCartQuantity)
}

type cartPayload struct {
	Lines     []domain.CartLine `json:"lines"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func buildCartPayload(cart domain.Cart) cartPayload {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartPayload{Lines: lines, Total: cart.Total(), ItemCount: cart.ItemCount()}
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
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

	var cart domain.Cart
	err = h.store.View(sessionID, func(state *session.State) error {
		cart, err = h.carts.Cart(ctx, state.Cart, lang)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"cart":     buildCartPayload(cart),
	})
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
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

	// The quantity arrives as the raw text-input value; numbers are accepted
	// too and re-rendered so "3" and 3 behave identically.
	var req struct {
		Quantity any `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	raw := ""
	switch v := req.Quantity.(type) {
	case string:
		raw = v
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	}

	var applied int
	err = h.store.Update(sessionID, func(state *session.State) error {
		applied, err = h.carts.SetQuantity(ctx, state.Cart, id, raw)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product_id": id, "quantity": applied})
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(state *session.State, id int) error {
		return h.carts.AddToCart(r.Context(), state.Cart, id)
	})
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, func(state *session.State, id int) error {
		return h.carts.RemoveFromCart(r.Context(), state.Cart, id)
	})
}

func (h *CartHandlers) setCartQuantity(w http.ResponseWriter, r *http.Request) {
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
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	var removed bool
	err = h.store.Update(sessionID, func(state *session.State) error {
		removed, err = h.carts.SetCartQuantity(ctx, state.Cart, id, req.Quantity)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"product_id": id, "removed": removed})
}

func (h *CartHandlers) mutateItem(w http.ResponseWriter, r *http.Request, mutate func(*session.State, int) error) {
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
	lang, err := resolveLanguage(r, h.bundle)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("unknown_language", err.Error(), http.StatusBadRequest))
		return
	}

	var cart domain.Cart
	err = h.store.Update(sessionID, func(state *session.State) error {
		if err := mutate(state, id); err != nil {
			return err
		}
		cart, err = h.carts.Cart(ctx, state.Cart, lang)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"cart":     buildCartPayload(cart),
	})
}

func (h *CartHandlers) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.store == nil || h.carts == nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("cart_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	sessionID := requestctx.SessionID(r.Context())
	if sessionID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("session_required", errMissingSession.Error(), http.StatusInternalServerError))
		return "", false
	}
	return sessionID, true
}

func (h *CartHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrCartUnknownProduct):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCartNotInCart):
		httpx.WriteError(ctx, w, httpx.NewError("not_in_cart", "product is not in the cart", http.StatusNotFound))
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid cart input", http.StatusBadRequest))
	case errors.Is(err, session.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_expired", "session has expired", http.StatusUnauthorized))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
	}
}
