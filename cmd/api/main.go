package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/cipher-engine/internal/config"
	"github.com/jwebster45206/cipher-engine/internal/handlers"
	"github.com/jwebster45206/cipher-engine/internal/logger"
	"github.com/jwebster45206/cipher-engine/internal/middleware"
	"github.com/jwebster45206/cipher-engine/internal/storage"
	"github.com/jwebster45206/cipher-engine/pkg/chapter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Cipher Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"chapters_dir", cfg.ChaptersDir)

	var catalog *chapter.Catalog
	if cfg.ChaptersDir != "" {
		catalog, err = chapter.LoadDir(cfg.ChaptersDir)
	} else {
		catalog, err = chapter.LoadBuiltin()
	}
	if err != nil {
		log.Error("Failed to load chapters", "error", err)
		os.Exit(1)
	}
	for _, ch := range catalog.List() {
		if err := ch.Verify(); err != nil {
			log.Error("Chapter failed verification", "chapter", ch.Number, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Chapters loaded", "count", len(catalog.List()))

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.ProgressTTL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx, 30, 2*time.Second); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	mux := handlers.NewRouter(catalog, store, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
