package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"indistock/internal/logger"
	"indistock/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}

	newsSvc := initializeNews(ctx, cfg)
	quoteSvc := initializeQuotes(ctx, cfg)

	sched, err := initializeScheduler(ctx, cfg, newsSvc)
	if err != nil {
		logger.ErrorWithErr(ctx, "Scheduler setup failed", err)
		os.Exit(1)
	}
	if sched != nil {
		sched.Start()
	}

	srv := server.New(cfg, newsSvc, quoteSvc)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start(ctx)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.ErrorWithErr(ctx, "HTTP server exited", err)
		}
	case <-ctx.Done():
		logger.Info(ctx, "Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "HTTP shutdown failed", err)
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	_ = logger.Shutdown(shutdownCtx)
}
