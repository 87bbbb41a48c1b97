package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/rg-thatha/storefront/internal/platform/requestctx"
)

// CookieCodec signs and verifies the session cookie carrying the session id.
// The cookie holds no state beyond the identifier; all interactive state
// lives server-side in the Store.
type CookieCodec struct {
	name    string
	signKey []byte
	secure  bool
	maxAge  time.Duration
}

// NewCookieCodec builds a codec for the named cookie. An empty signing key
// generates a process-ephemeral one, suitable only for local development.
func NewCookieCodec(name, signingKey string, secure bool, maxAge time.Duration) *CookieCodec {
	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	if maxAge <= 0 {
		maxAge = DefaultTTL
	}
	return &CookieCodec{
		name:    name,
		signKey: key,
		secure:  secure,
		maxAge:  maxAge,
	}
}

// Read extracts and verifies the session id from the request cookie.
func (c *CookieCodec) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	parts := strings.Split(cookie.Value, ".")
	if len(parts) != 2 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ""
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	if !hmac.Equal(sig, c.sign(payload)) {
		return ""
	}
	return string(payload)
}

// Write sets the signed session cookie.
func (c *CookieCodec) Write(w http.ResponseWriter, id string) {
	payload := []byte(id)
	value := base64.RawURLEncoding.EncodeToString(payload) +
		"." + base64.RawURLEncoding.EncodeToString(c.sign(payload))
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.maxAge),
	})
}

func (c *CookieCodec) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.signKey)
	mac.Write(payload)
	return mac.Sum(nil)
}

// Middleware loads or initialises the storefront session and stores its id in
// the request context. New sessions get their cookie set before the handler
// writes the response.
func Middleware(store *Store, codec *CookieCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, created := store.Ensure(codec.Read(r))
			if created {
				codec.Write(w, id)
			}
			ctx := requestctx.WithSessionID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
