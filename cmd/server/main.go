package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/adapters/cache"
	"milk-collection-service/internal/adapters/optimizer"
	"milk-collection-service/internal/adapters/repositories"
	"milk-collection-service/internal/api"
	"milk-collection-service/internal/api/handlers"
	"milk-collection-service/internal/config"
	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/platform/db"
	"milk-collection-service/internal/ports"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	defer database.Close()

	if err := db.Migrate(database, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("run migrations")
	}

	hubs := repositories.NewPostgresStorageHubRepository(database)
	fleet := repositories.NewPostgresVehicleRepository(database)
	vendors := repositories.NewPostgresVendorRepository(database)
	runs := repositories.NewPostgresRunRepository(database)

	httpSource := optimizer.NewHTTPScheduleSource(cfg.OptimizerBaseURL)

	var source ports.ScheduleSource = httpSource
	var scheduleCache ports.ScheduleCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisScheduleCache(cfg.RedisAddr, cfg.RedisDB, cfg.ScheduleCacheTTL)
		if err != nil {
			logrus.WithError(err).Fatal("connect schedule cache")
		}
		defer redisCache.Close()
		scheduleCache = redisCache
		source = cache.NewCachedScheduleSource(httpSource, redisCache)
	}

	router := api.NewRouter(api.Deps{
		Schedule: &handlers.ScheduleHandler{
			Source:         source,
			Sink:           httpSource,
			Cache:          scheduleCache,
			Runs:           runs,
			Fleet:          fleet,
			Hubs:           hubs,
			TypeCapacities: cfg.TypeCapacities,
			DefaultAnchor:  domain.Coordinate{Lat: cfg.DefaultAnchorLat, Lon: cfg.DefaultAnchorLon},
		},
		Hubs:     &handlers.StorageHubHandler{Repo: hubs},
		Vehicles: &handlers.VehicleHandler{Repo: fleet},
		Vendors:  &handlers.VendorHandler{Repo: vendors},
		Uploads:  &handlers.UploadHandler{Fleet: fleet, Vendors: vendors, Hubs: hubs},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
