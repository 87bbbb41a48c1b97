package cms

import (
	"errors"
	"strings"
	"testing"

	"github.com/rg-thatha/storefront/internal/domain"
)

func TestLoadContent(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	slugs := lib.Slugs()
	want := []string{"about", "contact", "payment"}
	if len(slugs) != len(want) {
		t.Fatalf("Slugs() = %v, want %v", slugs, want)
	}
	for i, s := range want {
		if slugs[i] != s {
			t.Fatalf("Slugs()[%d] = %q, want %q", i, slugs[i], s)
		}
	}
}

func TestPageRendersMarkdown(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	page, err := lib.Page("about", domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("Page(about) error = %v", err)
	}
	if page.Title != "About R.G THATHA" {
		t.Fatalf("Title = %q", page.Title)
	}
	if !strings.Contains(page.HTML, "<p>") || strings.Contains(page.HTML, "---") {
		t.Fatalf("HTML looks unrendered:\n%s", page.HTML)
	}
	if !strings.Contains(page.HTML, "household name in Coimbatore") {
		t.Fatalf("HTML missing body text:\n%s", page.HTML)
	}
}

func TestPageKeepsSafeLinks(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	page, err := lib.Page("contact", domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("Page(contact) error = %v", err)
	}
	if !strings.Contains(page.HTML, `href="tel:+919514083145"`) {
		t.Fatalf("tel link stripped:\n%s", page.HTML)
	}
	if !strings.Contains(page.HTML, "https://wa.me/919514083145") {
		t.Fatalf("wa.me link stripped:\n%s", page.HTML)
	}
}

func TestPageLanguageFallback(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tamil, err := lib.Page("about", domain.LanguageTamil)
	if err != nil {
		t.Fatalf("Page(about, tamil) error = %v", err)
	}
	if tamil.Lang != domain.LanguageTamil {
		t.Fatalf("about has a tamil version, got lang %s", tamil.Lang)
	}

	// payment has no tamil version; english fills in.
	payment, err := lib.Page("payment", domain.LanguageTamil)
	if err != nil {
		t.Fatalf("Page(payment, tamil) error = %v", err)
	}
	if payment.Lang != domain.LanguageEnglish {
		t.Fatalf("payment fallback lang = %s, want english", payment.Lang)
	}

	if _, err := lib.Page("careers", domain.LanguageEnglish); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Page(careers) error = %v, want ErrPageNotFound", err)
	}
}
