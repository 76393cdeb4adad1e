package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmorales-dev/cartamarket/internal/api"
	"github.com/dmorales-dev/cartamarket/internal/database"
	"github.com/dmorales-dev/cartamarket/internal/services"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./cartamarket.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	scryfallService := services.NewScryfallService()
	sessionService := services.NewSessionService(scryfallService)

	listingLimit := services.DefaultListingLimit
	if limitStr := os.Getenv("LISTING_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			listingLimit = limit
		}
	}
	listingService := services.NewListingService(database.GetDB(), listingLimit)

	// Setup router
	router := api.SetupRouter(scryfallService, sessionService, listingService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
