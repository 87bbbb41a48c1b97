package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rg-thatha/storefront/internal/domain"
	"github.com/rg-thatha/storefront/internal/i18n"
)

const maxBodySize = 16 * 1024

var (
	errBodyTooLarge   = errors.New("request body too large")
	errUnknownLang    = errors.New("unknown language")
	errBadProductID   = errors.New("invalid product id")
	errMissingSession = errors.New("session missing from request context")
)

// resolveLanguage picks the catalog language for a request: an explicit
// ?lang= wins, otherwise the Accept-Language header decides, falling back to
// english.
func resolveLanguage(r *http.Request, bundle *i18n.Bundle) (domain.Language, error) {
	if raw := strings.TrimSpace(r.URL.Query().Get("lang")); raw != "" {
		lang, ok := domain.ParseLanguage(raw)
		if !ok {
			return "", fmt.Errorf("%w: %s", errUnknownLang, raw)
		}
		return lang, nil
	}
	if bundle != nil {
		return bundle.Resolve(r.Header.Get("Accept-Language")), nil
	}
	return domain.LanguageEnglish, nil
}

// productIDParam parses the {productID} route parameter.
func productIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadProductID, raw)
	}
	return id, nil
}

// decodeJSON reads a size-limited JSON body into dst. An empty body is an
// error; callers with optional bodies check ContentLength first.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return err
	}
	if int64(len(body)) > maxBodySize {
		return errBodyTooLarge
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, dst)
}
