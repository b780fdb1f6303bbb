package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"vrp-client/internal/adapters/cache"
	"vrp-client/internal/config"
	"vrp-client/internal/platform/db"

	"github.com/joho/godotenv"
)

func main() {
	purge := flag.Bool("purge", false, "delete expired schedule cache entries after creating the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", config.Get("VRP_CACHE_DSN", ""))
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing schedule cache schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *purge {
		n, err := cache.NewSQLScheduleCache(conn, 0).Purge(ctx)
		if err != nil {
			log.Fatalf("purge failed: %v", err)
		}
		log.Printf("Purged %d expired entries.", n)
	}
}
