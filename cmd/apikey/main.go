package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/config"
	"github.com/rezkam/todolist/internal/infrastructure/keygen"
	"github.com/rezkam/todolist/internal/infrastructure/persistence"
)

// Command-line tool to create an API key acting for one account.
// THIS is not a production-grade tool, just a simple utility for development/testing purposes.
func main() {
	name := flag.String("name", "", "Name/description for the API key (required)")
	account := flag.String("account", "", "Account UUID the key acts for (required)")
	days := flag.Int("days", 0, "Number of days until expiration (0 = never expires)")

	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadAPIKeyGenConfig(*name, *account, *days)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		log.Fatal(err)
	}

	ctx := context.Background()

	store, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	clk := clock.System{}
	var expiresAt *time.Time
	if cfg.DaysValid > 0 {
		expiry := clk.Now().UTC().AddDate(0, 0, cfg.DaysValid)
		expiresAt = &expiry
	}

	apiKey, err := auth.CreateAPIKey(ctx, store, clk, cfg.AccountID, cfg.Name, expiresAt)
	if err != nil {
		log.Fatalf("Failed to create API key: %v", err)
	}

	fmt.Println("\n API Key created successfully!")
	fmt.Println("----------------------------------------")
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Account: %s\n", cfg.AccountID)
	fmt.Printf("Format: %s-%s-%s-{short}-{long}\n", keygen.DefaultKeyType, keygen.DefaultService, keygen.DefaultVersion)
	if expiresAt != nil {
		fmt.Printf("Expires: %s (%d days)\n", expiresAt.Format(time.RFC3339), cfg.DaysValid)
	} else {
		fmt.Println("Expires: Never")
	}
	fmt.Println("----------------------------------------")
	fmt.Printf("\nAPI Key: %s\n\n", apiKey)
	fmt.Println("IMPORTANT: Save this key now! It will not be shown again.")
	fmt.Println("----------------------------------------")
	fmt.Println("Usage example:")
	fmt.Printf("  curl -H \"Authorization: Bearer %s\" http://localhost:8080/api/lists\n", apiKey)
}
