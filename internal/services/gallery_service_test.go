package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rg-thatha/storefront/internal/domain"
)

func newTestGalleryService(t *testing.T) GalleryService {
	t.Helper()
	repo := newStubCatalog()
	svc, err := NewGalleryService(GalleryServiceDeps{Repository: repo, Resolver: newTestResolver(repo)})
	if err != nil {
		t.Fatalf("NewGalleryService() error = %v", err)
	}
	return svc
}

func TestGalleryOpenBuildsTwoSlides(t *testing.T) {
	svc := newTestGalleryService(t)
	g, err := svc.Open(context.Background(), domain.LanguageEnglish, 1, 0, &domain.ImageStatus{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if g.ProductID != 1 || g.Current != 0 || len(g.Slides) != 2 {
		t.Fatalf("gallery = %+v", g)
	}
	if g.Slides[0].Source != "/assets/Paatham/Single(Rs_150).jpg" {
		t.Fatalf("slide 0 source = %q", g.Slides[0].Source)
	}
	if g.Slides[1].Source != "/assets/Paatham/Slot(Rs_500).jpg" {
		t.Fatalf("slide 1 source = %q", g.Slides[1].Source)
	}
}

func TestGalleryOpenGatedWhenAllImagesFailed(t *testing.T) {
	svc := newTestGalleryService(t)
	status := &domain.ImageStatus{Single: domain.LoadFailed, Slot: domain.LoadFailed}
	if _, err := svc.Open(context.Background(), domain.LanguageEnglish, 1, 0, status); !errors.Is(err, ErrGalleryImagesFailed) {
		t.Fatalf("Open() error = %v, want ErrGalleryImagesFailed", err)
	}
}

func TestGalleryOpenWithOneFailedSlide(t *testing.T) {
	svc := newTestGalleryService(t)
	status := &domain.ImageStatus{Single: domain.LoadFailed}
	g, err := svc.Open(context.Background(), domain.LanguageEnglish, 1, 1, status)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !g.Slides[0].Failed || g.Slides[0].Source != "/assets/no-image/No_Image_Available.jpg" {
		t.Fatalf("slide 0 = %+v, want failed placeholder", g.Slides[0])
	}
	if g.Slides[1].Failed {
		t.Fatalf("slide 1 unexpectedly failed")
	}
	if g.Current != 1 {
		t.Fatalf("Current = %d, want start slide 1", g.Current)
	}
}

func TestGalleryOpenValidatesInput(t *testing.T) {
	svc := newTestGalleryService(t)
	ctx := context.Background()
	if _, err := svc.Open(ctx, domain.LanguageEnglish, 1, 2, nil); !errors.Is(err, ErrGalleryInvalidInput) {
		t.Fatalf("Open(start=2) error = %v, want ErrGalleryInvalidInput", err)
	}
	if _, err := svc.Open(ctx, domain.LanguageEnglish, 42, 0, nil); !errors.Is(err, ErrGalleryProductNotFound) {
		t.Fatalf("Open(42) error = %v, want ErrGalleryProductNotFound", err)
	}
}

func TestGalleryNavigationWraps(t *testing.T) {
	svc := newTestGalleryService(t)
	ctx := context.Background()
	g, err := svc.Open(ctx, domain.LanguageEnglish, 1, 0, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	steps := []struct {
		move func() error
		want int
	}{
		{func() error { return svc.Next(ctx, g) }, 1},
		{func() error { return svc.Next(ctx, g) }, 0},
		{func() error { return svc.Prev(ctx, g) }, 1},
		{func() error { return svc.Prev(ctx, g) }, 0},
	}
	for i, step := range steps {
		if err := step.move(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
		if g.Current != step.want {
			t.Fatalf("step %d: Current = %d, want %d", i, g.Current, step.want)
		}
	}

	if err := svc.Select(ctx, g, 1); err != nil {
		t.Fatalf("Select(1) error = %v", err)
	}
	if g.Current != 1 {
		t.Fatalf("Current after Select = %d, want 1", g.Current)
	}
	if err := svc.Select(ctx, g, 2); !errors.Is(err, ErrGalleryInvalidInput) {
		t.Fatalf("Select(2) error = %v, want ErrGalleryInvalidInput", err)
	}
}

func TestGalleryNavigationSuppressedWhenAllSlidesFail(t *testing.T) {
	svc := newTestGalleryService(t)
	ctx := context.Background()
	g, err := svc.Open(ctx, domain.LanguageEnglish, 1, 0, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := svc.SlideFailed(ctx, g, 0); err != nil {
		t.Fatalf("SlideFailed(0) error = %v", err)
	}
	if err := svc.SlideFailed(ctx, g, 1); err != nil {
		t.Fatalf("SlideFailed(1) error = %v", err)
	}
	if !g.AllFailed() {
		t.Fatalf("AllFailed() = false after both slides failed")
	}

	if err := svc.Next(ctx, g); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if g.Current != 0 {
		t.Fatalf("Current moved to %d with every slide failed", g.Current)
	}
}

func TestGalleryClosedErrors(t *testing.T) {
	svc := newTestGalleryService(t)
	ctx := context.Background()
	if err := svc.Next(ctx, nil); !errors.Is(err, ErrGalleryNotOpen) {
		t.Fatalf("Next(nil) error = %v, want ErrGalleryNotOpen", err)
	}
	if err := svc.Select(ctx, nil, 0); !errors.Is(err, ErrGalleryNotOpen) {
		t.Fatalf("Select(nil) error = %v, want ErrGalleryNotOpen", err)
	}
}
