package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-site/config"
	httpadapter "portfolio-site/internal/adapter/http"
	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/render"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := bootstrap.Logger(cfg)

	// infra setup
	jobs, closeJobs := bootstrap.JobsRepo(ctx, cfg)
	defer closeJobs()

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	printer := bootstrap.Printer(cfg, bootstrap.Renderer(cfg), jobs)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	h := httpadapter.NewHandler(renderer, printer, httpadapter.Options{
		ResumePath:    cfg.ResumePath,
		MergedLogPath: cfg.MergedLogPath,
		BuildID:       cfg.BuildID,
		StaticDir:     cfg.StaticDir,
	})
	h.Register(app)
	// everything else comes from the last static build
	app.Static("/", cfg.BuildDir)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
