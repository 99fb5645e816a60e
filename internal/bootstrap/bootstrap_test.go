package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"portfolio-site/config"
	repo "portfolio-site/internal/adapter/repository"
	infra "portfolio-site/pkg/infrastructure"

	"github.com/stretchr/testify/assert"
)

func TestRendererBackend(t *testing.T) {
	assert.IsType(t, &infra.ChromedpRenderer{}, Renderer(&config.Config{PDFBackend: "chromedp"}))
	assert.IsType(t, &infra.PlaywrightRenderer{}, Renderer(&config.Config{PDFBackend: "playwright"}))
}

func TestJobsRepoSelection(t *testing.T) {
	ctx := context.Background()

	r, closeFn := JobsRepo(ctx, &config.Config{})
	assert.IsType(t, &repo.MemoryJobsRepo{}, r)
	closeFn()

	r, closeFn = JobsRepo(ctx, &config.Config{SQLitePath: filepath.Join(t.TempDir(), "jobs.db")})
	assert.IsType(t, &repo.SQLiteJobsRepo{}, r)
	closeFn()
}
