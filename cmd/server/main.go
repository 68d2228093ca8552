/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the penal-engine calculation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite history store
  3. Connect result cache (Redis if configured, in-memory otherwise)
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: penal.db)
           Use ":memory:" for in-memory database
  -redis   Redis address for the result cache (default: empty,
           falls back to in-process memory cache)
  -zone    IANA timezone for date resolution (default: America/Cuiaba)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/penal.db"

  # Run with Redis cache
  ./server -redis="localhost:6379"

  # Run on different port, São Paulo time
  ./server -port=3000 -zone="America/Sao_Paulo"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: History store
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

	"github.com/advocato/penal-engine/api"
	"github.com/advocato/penal-engine/cache"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "penal.db", "SQLite database path")
	redisAddr := flag.String("redis", "", "Redis address for the result cache")
	zoneName := flag.String("zone", "", "IANA timezone (default America/Cuiaba)")
	flag.Parse()

	// Initialize history store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Result cache: Redis when configured, in-process memory otherwise
	var results cache.Repository
	if *redisAddr != "" {
		rds := cache.NewRedis(*redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rds.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to reach Redis at %s: %v", *redisAddr, err)
		}
		cancel()
		log.Printf("Result cache: Redis at %s", *redisAddr)
		results = rds
	} else {
		log.Printf("Result cache: in-memory")
		results = cache.NewMemory()
	}

	zone, err := legaldate.LoadZone(*zoneName)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", *zoneName, err)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, results, zone)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
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
