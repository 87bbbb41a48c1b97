// Package cms serves the static storefront pages (about, payment, contact)
// from markdown files compiled into the binary. Pages carry a yaml front
// matter block and are rendered to sanitized HTML at load time.
package cms

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/rg-thatha/storefront/internal/domain"
)

//go:embed content/*.md
var contentFS embed.FS

// ErrPageNotFound indicates no page exists for the requested slug.
var ErrPageNotFound = errors.New("cms: page not found")

// Page is one rendered static page.
type Page struct {
	Slug    string          `json:"slug"`
	Lang    domain.Language `json:"lang"`
	Title   string          `json:"title"`
	Summary string          `json:"summary,omitempty"`
	HTML    string          `json:"html"`
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Lang    string `yaml:"lang"`
}

// Library holds every loaded page keyed by slug and language.
type Library struct {
	pages map[string]map[domain.Language]Page
}

// Load parses and renders the embedded markdown pages. File names follow
// {slug}.{lang}.md; a slug must at least carry an english page.
func Load() (*Library, error) {
	lib := &Library{pages: map[string]map[domain.Language]Page{}}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := newContentPolicy()

	entries, err := fs.ReadDir(contentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("cms: read content dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		dot := strings.LastIndexByte(name, '.')
		if dot <= 0 {
			return nil, fmt.Errorf("cms: %s: want {slug}.{lang}.md", entry.Name())
		}
		slug := name[:dot]
		lang, ok := domain.ParseLanguage(name[dot+1:])
		if !ok {
			return nil, fmt.Errorf("cms: %s: unknown language %q", entry.Name(), name[dot+1:])
		}

		raw, err := contentFS.ReadFile(path.Join("content", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cms: read %s: %w", entry.Name(), err)
		}
		meta, body, err := splitFrontMatter(raw)
		if err != nil {
			return nil, fmt.Errorf("cms: %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return nil, fmt.Errorf("cms: render %s: %w", entry.Name(), err)
		}

		if lib.pages[slug] == nil {
			lib.pages[slug] = map[domain.Language]Page{}
		}
		lib.pages[slug][lang] = Page{
			Slug:    slug,
			Lang:    lang,
			Title:   meta.Title,
			Summary: meta.Summary,
			HTML:    policy.Sanitize(buf.String()),
		}
	}

	for slug, byLang := range lib.pages {
		if _, ok := byLang[domain.LanguageEnglish]; !ok {
			return nil, fmt.Errorf("cms: page %s has no english version", slug)
		}
	}
	return lib, nil
}

// MustLoad is Load for main wiring; the content ships with the binary.
func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic(err)
	}
	return lib
}

// Page returns the page for slug in lang, falling back to english when the
// requested language has no version.
func (l *Library) Page(slug string, lang domain.Language) (Page, error) {
	byLang, ok := l.pages[strings.TrimSpace(slug)]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	if p, ok := byLang[lang]; ok {
		return p, nil
	}
	return byLang[domain.LanguageEnglish], nil
}

// Slugs lists every available page slug in sorted order.
func (l *Library) Slugs() []string {
	out := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

func splitFrontMatter(raw []byte) (frontMatter, []byte, error) {
	var meta frontMatter
	trimmed := bytes.TrimLeft(raw, "\ufeff")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return meta, trimmed, nil
	}
	rest := trimmed[4:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return meta, nil, errors.New("unterminated front matter")
	}
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return meta, nil, err
	}
	body := rest[end+4:]
	body = bytes.TrimLeft(body, "\n")
	return meta, body, nil
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	// The contact page links tel: and wa.me URLs.
	policy.AllowURLSchemes("http", "https", "tel", "upi")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
