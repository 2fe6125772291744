package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/api"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/config"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/ch"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/pg"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/stubs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	eventStore, catalog, err := openStores(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer eventStore.Close()
	defer catalog.Close()

	router := gin.Default()
	api.NewService(eventStore, catalog, logger).SetupRoutes(router)

	logger.Info("Starting API server", zap.String("port", cfg.APIPort))
	if err := router.Run(":" + cfg.APIPort); err != nil {
		logger.Fatal("API server failed", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (storage.EventStore, storage.Catalog, error) {
	ctx := context.Background()

	if cfg.UseMockDB {
		db := stubs.NewMockDB()
		if err := db.Initialize(ctx); err != nil {
			return nil, nil, err
		}
		return db, db, nil
	}

	eventStore, err := ch.NewClickHouseDB(
		cfg.ClickHouseHost,
		cfg.ClickHousePort,
		cfg.ClickHouseDatabase,
		cfg.ClickHouseUser,
		cfg.ClickHousePassword,
		cfg.ClickHouseUseTLS,
	)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := pg.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		eventStore.Close()
		return nil, nil, err
	}
	if err := catalog.Initialize(ctx); err != nil {
		eventStore.Close()
		return nil, nil, err
	}

	return eventStore, catalog, nil
}
