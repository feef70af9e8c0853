package main

import (
	"log"
	"os"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/config"
	"github.com/existflow/notejar/internal/db"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	srv := server.New(cat, jar.Options{
		Storage:             database,
		Key:                 cfg.StorageKey,
		CancelRevealOnReset: cfg.CancelRevealOnReset,
	}, cfg.PublicDir)
	defer srv.Close()

	log.Printf("Note jar server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
