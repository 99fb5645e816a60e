// Package bootstrap wires configuration into the concrete renderers,
// repositories and services shared by the entry points.
package bootstrap

import (
	"context"
	"log/slog"

	"portfolio-site/config"
	repo "portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/infrastructure/migration"
	"portfolio-site/internal/usecase"
	infra "portfolio-site/pkg/infrastructure"
	"portfolio-site/pkg/logger"
)

// Logger installs the configured logger as the slog default.
func Logger(cfg *config.Config) *slog.Logger {
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	return log
}

func Renderer(cfg *config.Config) usecase.Renderer {
	if cfg.PDFBackend == "playwright" {
		return infra.NewPlaywrightRenderer(cfg.PrintTimeout)
	}
	return infra.NewChromedpRenderer(cfg.ChromePath, cfg.PrintTimeout)
}

// JobsRepo picks Postgres when DATABASE_URL is set, then SQLite, then
// memory. A database that cannot be reached degrades to memory with a
// warning. The returned func releases the store.
func JobsRepo(ctx context.Context, cfg *config.Config) (usecase.PrintJobRepo, func()) {
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewJobsPool(ctx, cfg.DatabaseURL)
		if err == nil {
			if err := migration.RunMigrations(ctx, pool); err != nil {
				slog.Warn("print job migrations failed", "error", err)
			}
			return repo.NewPrintJobsRepo(pool), pool.Close
		}
		slog.Warn("jobs DB not available, keeping jobs in memory", "error", err)
	} else if cfg.SQLitePath != "" {
		r, err := repo.OpenSQLiteJobsRepo(ctx, cfg.SQLitePath)
		if err == nil {
			return r, func() { _ = r.Close() }
		}
		slog.Warn("sqlite jobs store not available, keeping jobs in memory", "error", err)
	}
	return repo.NewMemoryJobsRepo(), func() {}
}

func serveStatic(dir string, port int) (usecase.SiteServer, error) {
	srv, err := infra.StartStaticServer(dir, port)
	if err != nil {
		return nil, err
	}
	return srv, nil
}

func Printer(cfg *config.Config, r usecase.Renderer, jobs usecase.PrintJobRepo) *usecase.Printer {
	return usecase.NewPrinter(r, jobs, serveStatic, usecase.PrinterConfig{
		BuildDir:  cfg.BuildDir,
		StaticDir: cfg.StaticDir,
		Port:      cfg.PrintPort,
	})
}

func SiteConfig(cfg *config.Config) usecase.SiteConfig {
	return usecase.SiteConfig{
		ResumePath:    cfg.ResumePath,
		MergedLogPath: cfg.MergedLogPath,
		BuildID:       cfg.BuildID,
		BuildDir:      cfg.BuildDir,
		StaticDir:     cfg.StaticDir,
	}
}
