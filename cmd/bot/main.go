package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sneethan/gntle-habits/internal/app"
	"github.com/Sneethan/gntle-habits/internal/config"
	"github.com/Sneethan/gntle-habits/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.IsDevelopment(), cfg.SentryDSN)

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	err = a.Start()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	a.Stop()
}
