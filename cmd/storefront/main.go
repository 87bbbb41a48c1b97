package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rg-thatha/storefront/internal/cms"
	"github.com/rg-thatha/storefront/internal/handlers"
	"github.com/rg-thatha/storefront/internal/i18n"
	"github.com/rg-thatha/storefront/internal/platform/assets"
	"github.com/rg-thatha/storefront/internal/platform/config"
	"github.com/rg-thatha/storefront/internal/platform/observability"
	"github.com/rg-thatha/storefront/internal/platform/session"
	"github.com/rg-thatha/storefront/internal/repositories/embedded"
	"github.com/rg-thatha/storefront/internal/services"
)

func main() {
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("storefront")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	catalog, err := embedded.LoadCatalog()
	if err != nil {
		logger.Fatal("failed to load product catalog", zap.Error(err))
	}
	bundle, err := i18n.Load()
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}
	library, err := cms.Load()
	if err != nil {
		logger.Fatal("failed to load content pages", zap.Error(err))
	}

	resolver := assets.NewResolver(cfg.Assets.Root, cfg.Assets.Placeholder, catalog.FolderTable())

	serviceLogger := func(ctx context.Context, msg string, fields map[string]any) {
		zapFields := make([]zap.Field, 0, len(fields))
		for k, v := range fields {
			zapFields = append(zapFields, zap.Any(k, v))
		}
		observability.FromContext(ctx).Info(msg, zapFields...)
	}

	catalogSvc, err := services.NewCatalogService(services.CatalogServiceDeps{
		Repository: catalog,
		Resolver:   resolver,
	})
	if err != nil {
		logger.Fatal("failed to build catalog service", zap.Error(err))
	}
	cartSvc, err := services.NewCartService(services.CartServiceDeps{
		Repository: catalog,
		Logger:     serviceLogger,
	})
	if err != nil {
		logger.Fatal("failed to build cart service", zap.Error(err))
	}
	imagerySvc, err := services.NewImageryService(services.ImageryServiceDeps{
		Repository: catalog,
		Resolver:   resolver,
	})
	if err != nil {
		logger.Fatal("failed to build imagery service", zap.Error(err))
	}
	gallerySvc, err := services.NewGalleryService(services.GalleryServiceDeps{
		Repository: catalog,
		Resolver:   resolver,
	})
	if err != nil {
		logger.Fatal("failed to build gallery service", zap.Error(err))
	}
	orderSvc, err := services.NewOrderService(services.OrderServiceDeps{
		Cart:          cartSvc,
		Repository:    catalog,
		MessagingBase: cfg.Store.MessagingBase,
		OrderPhone:    cfg.Store.OrderPhone,
		StoreName:     cfg.Store.Name,
		CatalogURL:    cfg.Store.CatalogURL,
		Logger:        serviceLogger,
	})
	if err != nil {
		logger.Fatal("failed to build order service", zap.Error(err))
	}

	store := session.NewStore(session.WithTTL(cfg.Session.TTL))
	codec := session.NewCookieCodec(cfg.Session.CookieName, cfg.Session.SigningKey, cfg.Session.Secure, cfg.Session.TTL)

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfoFromEnv(startedAt)),
		handlers.WithReadinessCheck("catalog", func() error {
			if len(catalog.IDs()) == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		}),
	)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
			session.Middleware(store, codec),
		),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithCatalogRoutes(handlers.NewCatalogHandlers(catalogSvc, bundle).Routes),
		handlers.WithCartRoutes(handlers.NewCartHandlers(store, cartSvc, bundle).Routes),
		handlers.WithGalleryRoutes(handlers.NewGalleryHandlers(store, gallerySvc, bundle).Routes),
		handlers.WithImageRoutes(handlers.NewImageHandlers(store, imagerySvc).Routes),
		handlers.WithOrderRoutes(handlers.NewOrderHandlers(store, orderSvc, bundle).Routes),
		handlers.WithContentRoutes(handlers.NewContentHandlers(library, bundle).Routes),
		handlers.WithAssetHandler(handlers.NewAssetServer(cfg.Assets.PublicDir)),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildInfoFromEnv(started time.Time) handlers.BuildInfo {
	version := strings.TrimSpace(os.Getenv("STOREFRONT_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("STOREFRONT_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	environment := strings.TrimSpace(os.Getenv("STOREFRONT_ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return handlers.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: environment,
		StartedAt:   started,
	}
}
