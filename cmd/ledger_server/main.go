package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/retail-bank-ledger/internal/auth"
	"github.com/retail-bank-ledger/internal/config"
	"github.com/retail-bank-ledger/internal/ledger"
	"github.com/retail-bank-ledger/internal/logger"
	"github.com/retail-bank-ledger/internal/processor"
	"github.com/retail-bank-ledger/internal/seed"
	"github.com/retail-bank-ledger/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig("ledger_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the ledger and the credential store
	bank := ledger.New(log)
	creds := auth.NewCredentialStore(cfg.Auth.BcryptCost)

	// Provision the administrator before anything else can log in
	if err := creds.Put(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Error("Failed to provision administrator credentials", "error", err)
		os.Exit(1)
	}

	// Optionally provision the demo customer set
	if cfg.Seed.DemoData {
		if err := seed.Apply(bank, creds, seed.DemoCustomers()); err != nil {
			log.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		log.Info("Demo data seeded")
	}

	authenticator := auth.NewAuthenticator(cfg.Auth.AdminUsername, creds, bank)

	// Initialize the batch processor and its worker pool
	batch, err := processor.NewBatchProcessor(bank, cfg.WorkerPool.Size, log)
	if err != nil {
		log.Error("Failed to initialize batch processor", "error", err)
		os.Exit(1)
	}

	// Initialize REST server
	srv := server.NewServer(log, cfg, server.Dependencies{
		Ledger:      bank,
		Auth:        authenticator,
		Credentials: creds,
		Batch:       batch,
	})
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain the worker pool after the HTTP server stops accepting requests
	batch.Shutdown()

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
