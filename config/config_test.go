package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio-site/internal/buildlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 4173, cfg.PrintPort)
	assert.Equal(t, "chromedp", cfg.PDFBackend)
	assert.Equal(t, buildlog.DefaultSearchDelay, cfg.SearchDelay)
	assert.Equal(t, "build", cfg.BuildDir)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
resume_path: content/resume.json
print_port: 5000
pdf_backend: playwright
search_delay: 150ms
`)
	t.Setenv("PORT", "9090")
	t.Setenv("PRINT_TIMEOUT", "2m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "content/resume.json", cfg.ResumePath)
	assert.Equal(t, 5000, cfg.PrintPort)
	assert.Equal(t, "playwright", cfg.PDFBackend)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDelay)
	assert.Equal(t, 2*time.Minute, cfg.PrintTimeout)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown backend", file: "pdf_backend: wkhtmltopdf\n"},
		{name: "port out of range", env: map[string]string{"PRINT_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"PRINT_PORT": "abc"}},
		{name: "bad duration", env: map[string]string{"SEARCH_DELAY": "soon"}},
		{name: "bad yaml", file: "port: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.file)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
