package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// fixthumbs backfills missing product thumbnails from each product's
// first image. Run it once after importing catalog data.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	productRepo := persistence.NewGormProductRepository(db.DB)
	productStoreLinkRepo := persistence.NewGormProductStoreLinkRepository(db.DB)
	productBrandLinkRepo := persistence.NewGormProductBrandLinkRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)

	service := catalogapp.NewProductService(
		productRepo, productStoreLinkRepo, productBrandLinkRepo,
		brandRepo, storeRepo, cfg.Pricing, log,
	)

	fixed, err := service.BackfillThumbnails(context.Background())
	if err != nil {
		log.Fatal("Thumbnail backfill failed", zap.Error(err))
	}

	log.Info("Thumbnail backfill finished", zap.Int("products_updated", fixed))
}
