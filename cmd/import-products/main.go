package main

import (
	"flag"
	"log"

	"go-catalog-engine/internal/config"
	"go-catalog-engine/internal/repository"
	"go-catalog-engine/pkg/database"
	"go-catalog-engine/pkg/logger"
)

// Copies a pipe-delimited product file into the Postgres store.
func main() {
	// 1. Load Env
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if !envLoaded {
		log.Println("Warning: .env file not found, relying on system env")
	}

	path := flag.String("file", cfg.Path(cfg.ProductsFile), "product file to import")
	flag.Parse()

	zl, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer zl.Sync()

	// 2. Read products
	products, err := repository.NewProductFileRepo(*path, zl.Sugar()).FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *path, err)
	}

	// 3. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), zl, cfg.Debug)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	// 4. Upsert
	if err := repository.NewProductRepo(db).SaveAll(products); err != nil {
		log.Fatalf("❌ Failed to save products: %v", err)
	}

	log.Printf("✅ Imported %d products from %s", len(products), *path)
}
