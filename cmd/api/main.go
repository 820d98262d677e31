package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/cutiefy/cutiefy-backend/api/routes"
	"github.com/cutiefy/cutiefy-backend/internal/cart"
	"github.com/cutiefy/cutiefy-backend/internal/catalog"
	"github.com/cutiefy/cutiefy-backend/internal/notifications"
	"github.com/cutiefy/cutiefy-backend/internal/orders"
	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/cutiefy/cutiefy-backend/pkg/db"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/cutiefy/cutiefy-backend/pkg/metrics"
	"github.com/cutiefy/cutiefy-backend/pkg/migrate"
	"github.com/cutiefy/cutiefy-backend/pkg/pubsub"
	"github.com/cutiefy/cutiefy-backend/pkg/redis"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)

	publisher, err := notifications.NewPubsubPublisher(pubsubClient.NotificationPublisher())
	requireResource(ctx, logg, "notification publisher", err)

	dispatcher, err := notifications.NewDispatcher(publisher, logg)
	requireResource(ctx, logg, "notification dispatcher", err)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), redisClient, logg)
	requireResource(ctx, logg, "catalog service", err)

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Session.TTL)
	requireResource(ctx, logg, "cart store", err)

	cartSvc, err := cart.NewService(cartStore, catalogSvc)
	requireResource(ctx, logg, "cart service", err)

	ordersRepo := orders.NewRepository(dbClient.DB())

	watcher, err := orders.NewWatcher(ordersRepo, logg, cfg.Orders.FeedPollInterval, cfg.Orders.FeedBuffer)
	requireResource(ctx, logg, "orders feed watcher", err)

	ordersSvc, err := orders.NewService(ordersRepo, dbClient, cartSvc, dispatcher, watcher, logg)
	requireResource(ctx, logg, "orders service", err)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go watcher.Run(runCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	logCtx := logg.WithFields(runCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Metrics:     metrics.NewHTTPMetrics(),
			DBPinger:    dbClient,
			RedisPinger: redisClient,
			Catalog:     catalogSvc,
			Cart:        cartSvc,
			Orders:      ordersSvc,
			OrdersFeed:  watcher,
		}),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(logCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "shutting down api server", err)
		}
	}

	closeErr := multierr.Combine(
		pubsubClient.Close(),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(logCtx, "closing resources", closeErr)
	}
	logg.Info(logCtx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
