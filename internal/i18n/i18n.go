// Package i18n serves the storefront UI strings in the three catalog
// languages. English is the fallback for any missing key.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"

	"github.com/rg-thatha/storefront/internal/domain"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds the loaded translations keyed by catalog language.
type Bundle struct {
	dict     map[domain.Language]map[string]string
	fallback domain.Language
	matcher  language.Matcher
	tags     []domain.Language
}

// Load parses the embedded locale files. Every catalog language must have a
// locale file; a missing or malformed file fails the load.
func Load() (*Bundle, error) {
	b := &Bundle{
		dict:     map[domain.Language]map[string]string{},
		fallback: domain.LanguageEnglish,
	}
	for _, lang := range domain.Languages() {
		raw, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", lang))
		if err != nil {
			return nil, fmt.Errorf("i18n: load locale %s: %w", lang, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", lang, err)
		}
		b.dict[lang] = m
	}

	// Tamil script maps to the tamil catalog; romanised Tamil ("ta-Latn")
	// maps to tanglish. Everything else falls through to english.
	b.tags = []domain.Language{domain.LanguageEnglish, domain.LanguageTamil, domain.LanguageTanglish}
	b.matcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Tamil,
		language.MustParse("ta-Latn"),
	})
	return b, nil
}

// MustLoad is Load for main wiring; the locale files ship with the binary.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Fallback returns the fallback language.
func (b *Bundle) Fallback() domain.Language { return b.fallback }

// T returns the translation for key in lang, falling back to english and
// finally to the key itself.
func (b *Bundle) T(lang domain.Language, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Strings returns the full translation table for lang, with english filling
// any gaps. The result is a copy.
func (b *Bundle) Strings(lang domain.Language) map[string]string {
	out := make(map[string]string, len(b.dict[b.fallback]))
	for key, v := range b.dict[b.fallback] {
		out[key] = v
	}
	for key, v := range b.dict[lang] {
		out[key] = v
	}
	return out
}

// Resolve picks the catalog language best matching an Accept-Language
// header. An empty or unparseable header resolves to the fallback.
func (b *Bundle) Resolve(acceptLanguage string) domain.Language {
	if acceptLanguage == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, index, conf := b.matcher.Match(tags...)
	if conf == language.No || index < 0 || index >= len(b.tags) {
		return b.fallback
	}
	return b.tags[index]
}
