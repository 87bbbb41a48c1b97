package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Assets.Root != "/assets" {
		t.Fatalf("expected default asset root /assets, got %q", cfg.Assets.Root)
	}
	if cfg.Store.MessagingBase != "https://wa.me" {
		t.Fatalf("expected default messaging base, got %q", cfg.Store.MessagingBase)
	}
	if cfg.Store.OrderPhone != "919514083145" {
		t.Fatalf("expected default order phone, got %q", cfg.Store.OrderPhone)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("expected default session ttl 12h, got %v", cfg.Session.TTL)
	}
}

func TestLoadEnvMapOverrides(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{
			"STOREFRONT_PORT":           "9090",
			"STOREFRONT_ASSET_ROOT":     "/static/",
			"STOREFRONT_MESSAGING_BASE": "https://wa.me/",
			"STOREFRONT_SESSION_TTL":    "30m",
			"STOREFRONT_SESSION_SECURE": "true",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Assets.Root != "/static" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Assets.Root)
	}
	if cfg.Store.MessagingBase != "https://wa.me" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Store.MessagingBase)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %v", cfg.Session.TTL)
	}
	if !cfg.Session.Secure {
		t.Fatalf("expected secure session cookie")
	}
}

func TestLoadPortFallback(t *testing.T) {
	cfg, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{"PORT": "7070"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected PORT fallback 7070, got %q", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := Load(
		WithoutSystemEnv(),
		WithEnvFile(""),
		WithEnvMap(map[string]string{"STOREFRONT_PORT": "not-a-port"}),
	)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validation.Fields()) != 1 || validation.Fields()[0] != "Server.Port" {
		t.Fatalf("expected Server.Port flagged, got %v", validation.Fields())
	}
}
