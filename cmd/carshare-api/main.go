// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"carshare/internal/config"
	httptransport "carshare/internal/http"
	"carshare/internal/infra"
	"carshare/internal/logger"
	"carshare/internal/maps"
	"carshare/internal/modules/homezone"
	"carshare/internal/modules/pricing"
	"carshare/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		logger.Fatal(log, "carshare-api", err)
	}
	log.Info("stopped")
}

// run returns instead of exiting so deferred pool and client closes always run.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	rates := pricing.DefaultSchedule()
	if cfg.RatesFile != "" {
		var err error
		rates, err = pricing.LoadSchedule(cfg.RatesFile)
		if err != nil {
			return fmt.Errorf("load rates: %w", err)
		}
		log.Info("rates loaded", "file", cfg.RatesFile)
	}

	var store *pricing.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer dbPool.Close()
		store = pricing.NewStore(dbPool)
	} else {
		log.Warn("CARSHARE_DB_DSN not set; quotes will not be persisted")
	}
	pricingSvc := pricing.NewService(store, rates, cfg.Location)

	var planner *service.TripPlanner
	if cfg.Routing.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Routing.APIKey, cfg.Routing.RequestsPerSec)
		if err != nil {
			return fmt.Errorf("maps client: %w", err)
		}
		var router maps.Router = routeSvc
		if cfg.Redis.Addr != "" {
			redisClient := infra.NewRedis(cfg.Redis.Addr)
			defer redisClient.Close()
			router = maps.NewCachedRouter(routeSvc, maps.NewRouteCache(redisClient, cfg.Routing.CacheTTL), log)
		}

		var zones service.ZoneChecker
		if cfg.HomeZonesFile != "" {
			set, err := homezone.Load(cfg.HomeZonesFile)
			if err != nil {
				return fmt.Errorf("load home zones: %w", err)
			}
			log.Info("home zones loaded", "zones", set.Len())
			zones = set
		}
		planner = service.NewTripPlanner(router, zones, pricingSvc, cfg.Location, log)
	} else {
		log.Warn("CARSHARE_MAPS_API_KEY not set; trip planning disabled")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing: pricingSvc,
		Planner: planner,
		Log:     log,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
