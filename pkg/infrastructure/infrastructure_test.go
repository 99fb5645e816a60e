package infrastructure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticServerServesIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resume"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume", "index.html"), []byte("<h1>Resume</h1>"), 0o644))

	srv, err := StartStaticServer(dir, 0)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL("/resume/"))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>Resume</h1>", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, srv.Close(ctx))
}

func TestChromedpAvailableWithBadPath(t *testing.T) {
	r := NewChromedpRenderer(filepath.Join(t.TempDir(), "no-chrome"), 0)
	err := r.Available(context.Background())
	assert.True(t, errors.Is(err, ErrBrowserUnavailable))
}

func TestChromedpAvailableWithExplicitPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(bin, nil, 0o755))
	assert.NoError(t, NewChromedpRenderer(bin, 0).Available(context.Background()))
}

func TestNewJobsPoolWithoutDSN(t *testing.T) {
	pool, err := NewJobsPool(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, pool)
}
