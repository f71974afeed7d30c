package main

import (
	"context"
	"log"

	"github.com/Priyuuuuu/smartdata-standardization/adapters/postgres"
	"github.com/Priyuuuuu/smartdata-standardization/api"
	"github.com/Priyuuuuu/smartdata-standardization/internal"
	"github.com/Priyuuuuu/smartdata-standardization/internal/config"
	"github.com/Priyuuuuu/smartdata-standardization/internal/service"
	"github.com/Priyuuuuu/smartdata-standardization/internal/storage"
	"github.com/Priyuuuuu/smartdata-standardization/internal/store"
	"github.com/Priyuuuuu/smartdata-standardization/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	repo, cleanup, err := initRepository(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize dataset repository: %v", err)
	}
	defer cleanup()

	fileStorage := storage.NewLocalFileStorageWithPath(appConfig.Storage.UploadDir)

	datasetService := service.NewDatasetService(repo, fileStorage, logger, &service.Config{
		MaxConcurrentProfiles: appConfig.Profiling.MaxConcurrent,
	})

	app := api.NewApp(datasetService, logger, api.Config{
		Port:           appConfig.Server.Port,
		MaxUploadBytes: appConfig.Storage.MaxUploadBytes,
	})

	log.Printf("Starting SmartData server on port %s", appConfig.Server.Port)
	log.Fatal(app.Start())
}

// initRepository selects the dataset store: postgres when DATABASE_URL
// is configured, otherwise the in-memory store. The returned cleanup
// closes the database connection.
func initRepository(cfg *config.Config, logger *internal.Logger) (ports.DatasetRepository, func(), error) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, using in-memory dataset store")
		return store.NewMemoryRepository(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("Connected to postgres dataset store")
	return postgres.NewDatasetRepository(db), func() { db.Close() }, nil
}
