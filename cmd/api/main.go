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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonvela/vela-backend/api/routes"
	"github.com/maisonvela/vela-backend/internal/adminsetup"
	"github.com/maisonvela/vela-backend/internal/analytics"
	"github.com/maisonvela/vela-backend/internal/auth"
	"github.com/maisonvela/vela-backend/internal/cart"
	"github.com/maisonvela/vela-backend/internal/catalog"
	"github.com/maisonvela/vela-backend/internal/checkout"
	"github.com/maisonvela/vela-backend/internal/customers"
	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/internal/media"
	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/internal/wishlist"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/db"
	"github.com/maisonvela/vela-backend/pkg/logger"
	"github.com/maisonvela/vela-backend/pkg/metrics"
	"github.com/maisonvela/vela-backend/pkg/migrate"
	"github.com/maisonvela/vela-backend/pkg/pubsub"
	"github.com/maisonvela/vela-backend/pkg/redis"
	"github.com/maisonvela/vela-backend/pkg/storage/gcs"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	probes := routes.Probes{
		"db":    dbClient,
		"redis": redisClient,
	}

	// Pub/Sub and object storage are optional: without a GCP project the
	// dispatcher drops events and the media endpoints report unavailable.
	var pubsubClient *pubsub.Client
	var gcsClient *gcs.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		probes["pubsub"] = pubsubClient

		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap object storage", err)
			os.Exit(1)
		}
		defer func() {
			if err := gcsClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing object storage", err)
			}
		}()
		probes["gcs"] = gcsClient
	} else {
		logg.Warn(context.Background(), "GCP project not configured, pubsub and media disabled")
	}

	var dispatcher *events.Dispatcher
	if pubsubClient != nil {
		dispatcher, err = events.NewDispatcher(logg, pubsubClient)
	} else {
		dispatcher, err = events.NewDispatcher(logg, nil)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create event dispatcher", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient, redisClient, gcsClient, dispatcher)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, svcs, probes, httpMetrics, metricsHandler),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		dispatcher.Wait()
	}

	logg.Info(ctx, "api server stopped")
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	gcsClient *gcs.Client,
	dispatcher *events.Dispatcher,
) (routes.Services, error) {
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:   catalog.NewRepository(dbClient.DB()),
		Events: dispatcher,
	})
	if err != nil {
		return routes.Services{}, err
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Redis.CartTTL)
	if err != nil {
		return routes.Services{}, err
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: catalogService,
	})
	if err != nil {
		return routes.Services{}, err
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:   ordersRepo,
		Events: dispatcher,
	})
	if err != nil {
		return routes.Services{}, err
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Repo:   checkout.NewRepository(),
		Tx:     dbClient,
		Carts:  cartService,
		Events: dispatcher,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	accountsRepo := customers.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		Accounts: accountsRepo,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logg:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	customersService, err := customers.NewService(customers.ServiceParams{
		Repo: accountsRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}

	adminSetupService, err := adminsetup.NewService(adminsetup.ServiceParams{
		Roles: accountsRepo,
		Setup: cfg.AdminSetup,
		Logg:  logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:     wishlist.NewRepository(dbClient.DB()),
		Products: catalogService,
	})
	if err != nil {
		return routes.Services{}, err
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Repo: analytics.NewRepository(dbClient.DB()),
	})
	if err != nil {
		return routes.Services{}, err
	}

	var mediaService media.Service
	if gcsClient != nil {
		mediaService, err = media.NewService(media.ServiceParams{
			Store: gcsClient,
			Logg:  logg,
		})
		if err != nil {
			return routes.Services{}, err
		}
	}

	return routes.Services{
		Auth:       authService,
		AdminSetup: adminSetupService,
		Catalog:    catalogService,
		Cart:       cartService,
		Checkout:   checkoutService,
		Orders:     ordersService,
		Wishlist:   wishlistService,
		Customers:  customersService,
		Analytics:  analyticsService,
		Media:      mediaService,
	}, nil
}
