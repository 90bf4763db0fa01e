package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reit_valuation/pkg/api"
	"reit_valuation/pkg/core/config"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(cfg),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("API server starting on %s (locale %s, scenario delta %.1f%%)...\n",
		cfg.Server.Addr, cfg.Valuation.Locale, cfg.Valuation.ScenarioDelta)
	for _, route := range api.Routes {
		fmt.Printf("  - %s\n", route)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("[FATAL] Server failed to start: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("[ERROR] Graceful shutdown failed: %v\n", err)
	}
}
