package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	fmt.Printf("✓ Schema up to date (%d tables)\n", len(database.Models()))
}
