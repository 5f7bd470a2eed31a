// Command seed inserts sample roles and the optional admin account.
package main

import (
	"context"
	"log"
	"os"

	"github.com/philly/member-admin/internal/server"
)

func main() {
	ctx := context.Background()

	orchestrator, cleanup, err := server.InitializeSeeder(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize seeder: %v", err)
	}

	if err := orchestrator.RunAll(ctx); err != nil {
		cleanup()
		log.Printf("Seeding failed: %v", err)
		os.Exit(1)
	}
	cleanup()
}
