package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoBrowser = errors.New("no browser")

type fakeRenderer struct {
	mu          sync.Mutex
	outputs     [][]byte
	calls       int
	urls        []string
	unavailable bool
}

func (f *fakeRenderer) Name() string { return "fake" }

func (f *fakeRenderer) Available(context.Context) error {
	if f.unavailable {
		return errNoBrowser
	}
	return nil
}

func (f *fakeRenderer) RenderURLToPDF(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	out := f.outputs[min(f.calls, len(f.outputs)-1)]
	f.calls++
	return out, nil
}

type fakeServer struct {
	closed bool
}

func (s *fakeServer) URL(path string) string { return "http://127.0.0.1:4173" + path }

func (s *fakeServer) Close(context.Context) error {
	s.closed = true
	return nil
}

type printFixture struct {
	buildDir  string
	staticDir string
	renderer  *fakeRenderer
	server    *fakeServer
	repo      *repository.MemoryJobsRepo
	printer   *Printer
}

func newPrintFixture(t *testing.T, built bool, outputs ...[]byte) *printFixture {
	t.Helper()
	root := t.TempDir()
	fx := &printFixture{
		buildDir:  filepath.Join(root, "build"),
		staticDir: filepath.Join(root, "static"),
		renderer:  &fakeRenderer{outputs: outputs},
		server:    &fakeServer{},
		repo:      repository.NewMemoryJobsRepo(),
	}
	if built {
		require.NoError(t, os.MkdirAll(filepath.Join(fx.buildDir, "resume"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(fx.buildDir, "resume", "index.html"), []byte("<html></html>"), 0o644))
	}
	serve := func(dir string, port int) (SiteServer, error) {
		assert.Equal(t, fx.buildDir, dir)
		assert.Equal(t, 4173, port)
		return fx.server, nil
	}
	fx.printer = NewPrinter(fx.renderer, fx.repo, serve, PrinterConfig{
		BuildDir:  fx.buildDir,
		StaticDir: fx.staticDir,
		Port:      4173,
		Backoff:   time.Millisecond,
	})
	return fx
}

func TestPrintWritesBothCopies(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake")
	fx := newPrintFixture(t, true, pdf)

	job, err := fx.printer.Print(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://127.0.0.1:4173/resume/"}, fx.renderer.urls)
	assert.True(t, fx.server.closed)

	for _, p := range []string{filepath.Join(fx.buildDir, PDFName), filepath.Join(fx.staticDir, PDFName)} {
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, pdf, got)
	}

	stored, err := fx.printer.Job(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PrintStatusCompleted, stored.Status)
	assert.Equal(t, len(pdf), stored.Size)
	assert.Equal(t, 1, stored.Attempts)
	assert.Equal(t, "fake", stored.Metadata["backend"])
}

func TestPrintRetriesInvalidOutput(t *testing.T) {
	fx := newPrintFixture(t, true, []byte("<html>"), nil, []byte("%PDF-1.4"))

	job, err := fx.printer.Print(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, job.Attempts)
	assert.Equal(t, 3, fx.renderer.calls)
}

func TestPrintGivesUpWithoutPartialFiles(t *testing.T) {
	fx := newPrintFixture(t, true, []byte("not a pdf"))

	job, err := fx.printer.Print(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPDF)
	assert.Equal(t, 3, fx.renderer.calls)
	assert.True(t, fx.server.closed)

	_, statErr := os.Stat(filepath.Join(fx.buildDir, PDFName))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(fx.staticDir, PDFName))
	assert.True(t, os.IsNotExist(statErr))

	stored, err := fx.printer.Job(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PrintStatusFailed, stored.Status)
	assert.NotEmpty(t, stored.Error)
}

func TestPrintRequiresBuiltSite(t *testing.T) {
	fx := newPrintFixture(t, false, []byte("%PDF"))

	_, err := fx.printer.Print(context.Background())
	assert.ErrorIs(t, err, ErrSiteNotBuilt)
	assert.Zero(t, fx.renderer.calls)
	assert.False(t, fx.server.closed)
}

func TestPrintRequiresBrowser(t *testing.T) {
	fx := newPrintFixture(t, true, []byte("%PDF"))
	fx.renderer.unavailable = true

	job, err := fx.printer.Print(context.Background())
	assert.ErrorIs(t, err, errNoBrowser)
	assert.Equal(t, domain.PrintStatusFailed, job.Status)
	assert.Zero(t, fx.renderer.calls)
}

func TestPrintStopsOnCancel(t *testing.T) {
	fx := newPrintFixture(t, true, []byte("bad"))
	fx.printer.cfg.Backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := fx.printer.Print(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fx.renderer.calls)
}

const sampleResume = `{
  "basics": {"name": "Ada Lovelace", "label": "Engineer", "email": "ada@example.com", "summary": "Analytical engines."},
  "work": [{"name": "Acme", "position": "Lead", "startDate": "2021-03"}],
  "skills": [{"name": "Go", "keywords": ["concurrency"]}]
}`

const sampleLog = `[2026-02-14 12:16:49 VAX] Compiler: 4.3BSD cc (1986) K&R
[2026-02-14 12:16:50 GITHUB] deploy ok
`

func TestBuildSite(t *testing.T) {
	root := t.TempDir()
	cfg := SiteConfig{
		ResumePath:    filepath.Join(root, "resume.json"),
		MergedLogPath: filepath.Join(root, "merged.log"),
		BuildID:       "42",
		BuildDir:      filepath.Join(root, "build"),
		StaticDir:     filepath.Join(root, "static"),
	}
	require.NoError(t, os.WriteFile(cfg.ResumePath, []byte(sampleResume), 0o644))
	require.NoError(t, os.WriteFile(cfg.MergedLogPath, []byte(sampleLog), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.StaticDir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.StaticDir, "img", "me.txt"), []byte("me"), 0o644))

	r, err := render.New()
	require.NoError(t, err)

	res, err := NewBuilder(r, cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.LintWarnings)
	assert.Equal(t, 2, res.LogLines)
	assert.Equal(t, []string{"resume/index.html", "resume.json", "logs/index.html", "logs/logs.js"}, res.Pages)

	page, err := os.ReadFile(filepath.Join(cfg.BuildDir, "resume", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Ada Lovelace")
	assert.Contains(t, string(page), "Mar 2021 — Present")

	logs, err := os.ReadFile(filepath.Join(cfg.BuildDir, "logs", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Build Logs: 42")
	assert.Contains(t, string(logs), `<script src="logs.js">`)

	raw, err := os.ReadFile(filepath.Join(cfg.BuildDir, "resume.json"))
	require.NoError(t, err)
	assert.JSONEq(t, sampleResume, string(raw))

	copied, err := os.ReadFile(filepath.Join(cfg.BuildDir, "img", "me.txt"))
	require.NoError(t, err)
	assert.Equal(t, "me", string(copied))
}

func TestBuildSiteWithoutLogs(t *testing.T) {
	root := t.TempDir()
	cfg := SiteConfig{
		ResumePath: filepath.Join(root, "resume.json"),
		BuildDir:   filepath.Join(root, "build"),
		StaticDir:  filepath.Join(root, "missing-static"),
	}
	require.NoError(t, os.WriteFile(cfg.ResumePath, []byte(`{"basics":{"name":null}}`), 0o644))

	r, err := render.New()
	require.NoError(t, err)

	res, err := NewBuilder(r, cfg).Build(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.LintWarnings)
	assert.Equal(t, []string{"resume/index.html", "resume.json"}, res.Pages)
}

func TestBuildSiteMissingResume(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)
	_, err = NewBuilder(r, SiteConfig{ResumePath: filepath.Join(t.TempDir(), "nope.json"), BuildDir: t.TempDir()}).Build(context.Background())
	assert.Error(t, err)
}
