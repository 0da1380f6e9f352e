/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave engine server for the intranet
  portal. Handles configuration, dependency injection, and graceful
  shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load TOML config (flags override the file)
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Start lifecycle sweeper
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to TOML config file (optional)
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the lifecycle sweeper
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/leave.db"

  # Run with a config file
  ./server -config="./leave.toml"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: TOML configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlashr/leave-engine/api"
	"github.com/atlashr/leave-engine/config"
	"github.com/atlashr/leave-engine/conflict"
	"github.com/atlashr/leave-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "path to TOML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	// Config: defaults, then file, then flags
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Server.Database = *dbPath
	}

	// Initialize store
	store, err := sqlite.New(cfg.Server.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, conflict.Config{
		MinimumCoveragePercent: cfg.Engine.MinimumCoveragePercent,
	})

	// Background sweeper keeps schedule statuses in step with the calendar
	sweeper := api.NewLifecycleSweeper(store)
	sweeper.Start()
	defer sweeper.Stop()

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", cfg.Server.Port)
		log.Printf("📊 API available at http://localhost:%d/api", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
