package main

import (
	"context"
	"flag"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/adapters/repositories"
	"milk-collection-service/internal/config"
	"milk-collection-service/internal/platform/db"
)

// dbtool migrates the database and optionally seeds master data for local
// development.
func main() {
	_ = godotenv.Load()

	seedPath := flag.String("seed", "", "path to a masters JSON file to seed after migrating")
	flag.Parse()

	cfg := config.Load()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	defer database.Close()

	if err := db.Migrate(database, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("run migrations")
	}
	logrus.Info("migrations applied")

	if *seedPath == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repositories.SeedFromJSON(ctx, database, *seedPath); err != nil {
		logrus.WithError(err).Fatal("seed master data")
	}
	logrus.WithField("path", *seedPath).Info("master data seeded")
}
