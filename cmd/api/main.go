package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vaporvista/storefront-backend/api/controllers"
	"github.com/vaporvista/storefront-backend/api/routes"
	"github.com/vaporvista/storefront-backend/internal/cart"
	"github.com/vaporvista/storefront-backend/internal/catalog"
	"github.com/vaporvista/storefront-backend/internal/checkout"
	"github.com/vaporvista/storefront-backend/internal/settings"
	"github.com/vaporvista/storefront-backend/pkg/config"
	"github.com/vaporvista/storefront-backend/pkg/db"
	"github.com/vaporvista/storefront-backend/pkg/logger"
	"github.com/vaporvista/storefront-backend/pkg/metrics"
	pkgredis "github.com/vaporvista/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	ctx := context.Background()

	// Local development reads a .env file; deployed environments inject
	// real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger().Error(ctx, "config load failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if cfg.DB.AutoMigrate {
		if err := dbClient.AutoMigrate(ctx, logg); err != nil {
			return err
		}
	}

	redisClient, err := pkgredis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		return err
	}

	settingsRepo := settings.NewRepository(dbClient.DB())
	settingsSvc, err := settings.NewService(settingsRepo, cfg.Pricing)
	if err != nil {
		return err
	}
	if err := settingsSvc.EnsureDefaults(ctx); err != nil {
		return err
	}

	manager := cart.NewManager(func(sessionID string) cart.Slot {
		return cart.NewRedisSlot(redisClient, sessionID, cfg.Cart.SlotTTL)
	}, logg, cartMetrics)

	orderRepo := checkout.NewRepository(dbClient.DB())
	checkoutSvc, err := checkout.NewService(orderRepo, settingsSvc, manager)
	if err != nil {
		return err
	}

	handler := routes.New(routes.Deps{
		Logger:            logg,
		CartSessionCookie: cfg.Cart.SessionCookie,
		Registry:          registry,
		Health: controllers.NewHealthController(logg, map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		}),
		Products: controllers.NewProductsController(catalogSvc, logg),
		Cart:     controllers.NewCartController(manager, catalogSvc, settingsSvc, logg),
		Settings: controllers.NewSettingsController(settingsSvc, logg),
		Checkout: controllers.NewCheckoutController(checkoutSvc, manager, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server starting")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	logg.Info(ctx, "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func bootLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "storefront-api"})
}
