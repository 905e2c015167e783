package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	httpadapter "cv-customizer/internal/adapter/http"
	"cv-customizer/internal/app"
	"cv-customizer/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger(os.Stderr, "info", "text").Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	log := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := fiber.New(fiber.Config{DisableStartupMessage: true})
	httpadapter.NewHandler(a.Processor, a.Runs, log).Register(srv)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = srv.Shutdown()
	}()

	log.Info("listening", "port", cfg.Port, "template", cfg.TemplatePath, "output_root", cfg.OutputRoot)
	if err := srv.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
