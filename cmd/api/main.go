// Command api serves the member-admin REST API.
package main

import (
	"context"
	"log"

	"github.com/philly/member-admin/internal/server"
)

func main() {
	app, cleanup, err := server.InitializeApp(context.Background())
	if err != nil {
		log.Fatalf("api: initialize: %v", err)
	}

	// Run returns after SIGINT/SIGTERM once in-flight requests finish
	err = app.Run()
	cleanup()
	if err != nil {
		log.Fatalf("api: %v", err)
	}
}
