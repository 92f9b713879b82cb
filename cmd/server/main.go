package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solstack/site/internal/content"
	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/internal/server"
	viewRepository "github.com/solstack/site/pageviews/repository"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	index, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load embedded posts: %v", err)
	}
	log.Printf("Loaded %d posts from embedded content", index.Len())

	ctx := context.Background()
	viewRepo, err := viewRepository.NewViewRepository(ctx, cfg)
	if err != nil {
		// The counter is decoration next to the pages themselves. Serve the
		// site with in-memory counts rather than refusing to start.
		log.Printf("WARNING: view store unavailable, falling back to in-memory counts: %v", err)
		viewRepo = viewRepository.NewMemoryViewRepository()
	} else {
		log.Printf("View store ready (backend: %s)", cfg.Views.Backend)
	}

	app, err := server.New(cfg, index, viewRepo)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	// Start server asynchronously
	go func() {
		log.Printf("Starting %s on %s (env: %s)", cfg.Site.Name, cfg.Addr(), cfg.Server.Env)
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := viewRepo.Close(); err != nil {
		log.Printf("Failed to close view store: %v", err)
	}

	log.Println("Server stopped")
}
