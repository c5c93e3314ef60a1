// Package main provides a tool to populate the catalog with generated albums
// and reviews for local development.
//
// Usage:
//
//	DATA_PATH=~/Spindle/data go run ./cmd/seed
//	DATA_PATH=~/Spindle/data go run ./cmd/seed --albums 20 --force
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spindleapp/spindle-server/internal/seed"
	"github.com/spindleapp/spindle-server/internal/store"
)

var (
	albumCount = flag.Int("albums", seed.DefaultAlbumCount, "Number of albums to generate")
	force      = flag.Bool("force", false, "Seed even if the catalog already has albums")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Spindle/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	seeder := seed.New(s, store.NewNoopEmitter(), logger)
	result, err := seeder.Run(ctx, seed.Options{
		Albums: *albumCount,
		Force:  *force,
	})
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	if result.Skipped {
		fmt.Println("Catalog already populated; use --force to seed anyway.")
		return
	}

	fmt.Printf("Seeded %d albums with %d reviews.\n", result.Albums, result.Reviews)
	fmt.Println("Note: the running server rebuilds its search index on next start if needed.")
}
