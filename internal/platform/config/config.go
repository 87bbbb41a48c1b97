package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	defaultAssetRoot   = "/assets"
	defaultPublicDir   = "public"
	defaultPlaceholder = "no-image/No_Image_Available.jpg"

	defaultMessagingBase = "https://wa.me"
	defaultOrderPhone    = "919514083145"
	defaultStoreName     = "R.G THATHA"
	defaultCatalogURL    = "https://rg-thatha.netlify.app/"

	defaultSessionCookie = "STOREFRONT_SESSION"
	defaultSessionTTL    = 12 * time.Hour
)

// Config captures all runtime configuration organised by concern. Every field
// has a working default; the service starts with no environment at all.
type Config struct {
	Server  ServerConfig
	Assets  AssetsConfig
	Store   StoreConfig
	Session SessionConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AssetsConfig controls where product imagery is served from.
type AssetsConfig struct {
	// Root is the public URL prefix under which product folders live.
	Root string
	// PublicDir is the local directory backing the /assets file server.
	PublicDir string
	// Placeholder is the fallback image path relative to Root.
	Placeholder string
}

// StoreConfig carries storefront identity and the order hand-off target.
type StoreConfig struct {
	Name          string
	CatalogURL    string
	MessagingBase string
	OrderPhone    string
}

// SessionConfig controls the signed session cookie and state retention.
type SessionConfig struct {
	CookieName string
	SigningKey string
	TTL        time.Duration
	Secure     bool
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups.
// Values in the map take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided
// maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration from defaults, .env overrides,
// and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		return "", false
	}

	port := stringWithDefault(lookup, "STOREFRONT_PORT", "")
	if port == "" {
		// Cloud Run style fallback.
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  durationWithDefault(lookup, "STOREFRONT_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "STOREFRONT_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "STOREFRONT_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Assets: AssetsConfig{
			Root:        strings.TrimRight(stringWithDefault(lookup, "STOREFRONT_ASSET_ROOT", defaultAssetRoot), "/"),
			PublicDir:   stringWithDefault(lookup, "STOREFRONT_PUBLIC_DIR", defaultPublicDir),
			Placeholder: stringWithDefault(lookup, "STOREFRONT_PLACEHOLDER_IMAGE", defaultPlaceholder),
		},
		Store: StoreConfig{
			Name:          stringWithDefault(lookup, "STOREFRONT_STORE_NAME", defaultStoreName),
			CatalogURL:    stringWithDefault(lookup, "STOREFRONT_CATALOG_URL", defaultCatalogURL),
			MessagingBase: strings.TrimRight(stringWithDefault(lookup, "STOREFRONT_MESSAGING_BASE", defaultMessagingBase), "/"),
			OrderPhone:    stringWithDefault(lookup, "STOREFRONT_ORDER_PHONE", defaultOrderPhone),
		},
		Session: SessionConfig{
			CookieName: stringWithDefault(lookup, "STOREFRONT_SESSION_COOKIE", defaultSessionCookie),
			SigningKey: stringWithDefault(lookup, "STOREFRONT_SESSION_SIGNING_KEY", ""),
			TTL:        durationWithDefault(lookup, "STOREFRONT_SESSION_TTL", defaultSessionTTL),
			Secure:     boolWithDefault(lookup, "STOREFRONT_SESSION_SECURE", false),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	} else if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if strings.TrimSpace(cfg.Store.MessagingBase) == "" {
		missing = append(missing, "Store.MessagingBase")
	}
	if strings.TrimSpace(cfg.Store.OrderPhone) == "" {
		missing = append(missing, "Store.OrderPhone")
	}
	if cfg.Session.TTL <= 0 {
		missing = append(missing, "Session.TTL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		if key == "" {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
