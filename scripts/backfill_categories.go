package main

import (
	"context"
	"fmt"
	"log"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/AlexTLDR/bringwhat/internal/logging"
	"github.com/joho/godotenv"
)

// Sets category "other" on items stored before categories existed.
func main() {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var total int
	if err := db.FetchOne(ctx, "SELECT COUNT(*) FROM items").Scan(&total); err != nil {
		log.Fatalf("Failed to count items: %v", err)
	}
	fmt.Printf("Found %d items in %s database\n", total, db.Kind())

	updated, err := db.BackfillCategories(ctx)
	if err != nil {
		log.Fatalf("Failed to backfill categories: %v", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Updated: %d\n", updated)
	fmt.Printf("  Unchanged: %d\n", int64(total)-updated)
}
