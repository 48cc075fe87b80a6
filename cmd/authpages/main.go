// Package main is the entry point for the auth pages server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oszuidwest/zwfm-authpages/internal/api"
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/oszuidwest/zwfm-authpages/internal/forwarder"
	"github.com/oszuidwest/zwfm-authpages/pkg/logger"
	"github.com/oszuidwest/zwfm-authpages/pkg/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(string(cfg.LogLevel), !cfg.Environment.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("authpages %s", version.String())
	logger.Info("Backend config: URL=%s, Timeout=%s", cfg.Backend.BaseURL, cfg.Backend.Timeout)
	logger.Info("Server config: Address=%s, SSL=%t, Locale=%s", cfg.Server.Address, cfg.Server.SSL, cfg.Locale)

	fwd := forwarder.NewHTTPForwarder(cfg.Backend)

	router, err := api.SetupRouter(cfg, fwd)
	if err != nil {
		logger.Fatal("Failed to set up router: %v (%v)", err, errors.Unwrap(err))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting auth pages server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
