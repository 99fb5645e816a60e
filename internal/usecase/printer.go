package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrSiteNotBuilt means the build directory has no résumé page to print.
	ErrSiteNotBuilt = errors.New("site not built")
	ErrInvalidPDF   = errors.New("invalid PDF output")
)

const (
	PDFName         = "resume.pdf"
	resumePagePath  = "/resume/"
	defaultAttempts = 3
)

type Renderer interface {
	Name() string
	Available(ctx context.Context) error
	RenderURLToPDF(ctx context.Context, url string) ([]byte, error)
}

type PrintJobRepo interface {
	Save(ctx context.Context, j *domain.PrintJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.PrintJob, error)
}

// SiteServer is a running local server over the build directory.
type SiteServer interface {
	URL(path string) string
	Close(ctx context.Context) error
}

type ServeFunc func(dir string, port int) (SiteServer, error)

type PrinterConfig struct {
	BuildDir  string
	StaticDir string
	Port      int
	Attempts  int
	// Backoff is the wait after the first failed attempt; it doubles after each further failure.
	Backoff time.Duration
}

// Printer prints the built résumé page to PDF.
type Printer struct {
	renderer Renderer
	repo     PrintJobRepo
	serve    ServeFunc
	cfg      PrinterConfig
	log      *slog.Logger
}

func NewPrinter(r Renderer, repo PrintJobRepo, serve ServeFunc, cfg PrinterConfig) *Printer {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	return &Printer{
		renderer: r,
		repo:     repo,
		serve:    serve,
		cfg:      cfg,
		log:      slog.Default().With("component", "printer", "backend", r.Name()),
	}
}

// NewJob creates and records a pending job.
func (p *Printer) NewJob(ctx context.Context) *domain.PrintJob {
	job := domain.NewPrintJob(fmt.Sprintf("http://127.0.0.1:%d%s", p.cfg.Port, resumePagePath))
	job.Metadata["backend"] = p.renderer.Name()
	p.save(ctx, job)
	return job
}

// Print runs a new job to completion.
func (p *Printer) Print(ctx context.Context) (*domain.PrintJob, error) {
	job := p.NewJob(ctx)
	return job, p.Run(ctx, job)
}

// Run executes job. On failure the job is marked failed and no partial PDF is
// left behind.
func (p *Printer) Run(ctx context.Context, job *domain.PrintJob) error {
	if err := p.run(ctx, job); err != nil {
		job.Status = domain.PrintStatusFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now().UTC()
		p.save(context.WithoutCancel(ctx), job)
		p.log.Error("print failed", "job", job.ID, "error", err)
		return err
	}
	return nil
}

func (p *Printer) run(ctx context.Context, job *domain.PrintJob) error {
	index := filepath.Join(p.cfg.BuildDir, "resume", "index.html")
	if _, err := os.Stat(index); err != nil {
		return fmt.Errorf("%w: %s is missing", ErrSiteNotBuilt, index)
	}
	if err := p.renderer.Available(ctx); err != nil {
		return err
	}

	job.Status = domain.PrintStatusRunning
	job.UpdatedAt = time.Now().UTC()
	p.save(ctx, job)

	srv, err := p.serve(p.cfg.BuildDir, p.cfg.Port)
	if err != nil {
		return fmt.Errorf("start static server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			p.log.Warn("static server shutdown", "error", err)
		}
	}()

	job.SourceURL = srv.URL(resumePagePath)
	p.log.Info("printing", "job", job.ID, "url", job.SourceURL)

	pdf, err := p.render(ctx, job)
	if err != nil {
		return err
	}

	out := filepath.Join(p.cfg.BuildDir, PDFName)
	if err := writeFileAtomic(out, pdf); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	public := filepath.Join(p.cfg.StaticDir, PDFName)
	if err := os.MkdirAll(p.cfg.StaticDir, 0o755); err != nil {
		return err
	}
	if err := writeFileAtomic(public, pdf); err != nil {
		return fmt.Errorf("copy to %s: %w", public, err)
	}

	job.Status = domain.PrintStatusCompleted
	job.OutputPath = out
	job.PublicPath = public
	job.Size = len(pdf)
	job.Error = ""
	job.UpdatedAt = time.Now().UTC()
	p.save(ctx, job)
	p.log.Info("print completed", "job", job.ID, "output", out, "public", public, "bytes", len(pdf))
	return nil
}

// render retries with exponential backoff and checks the PDF signature.
func (p *Printer) render(ctx context.Context, job *domain.PrintJob) ([]byte, error) {
	var renderErr error
	for i := 0; i < p.cfg.Attempts; i++ {
		job.Attempts = i + 1
		pdf, err := p.renderer.RenderURLToPDF(ctx, job.SourceURL)
		if err == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		renderErr = err
		p.log.Warn("render attempt failed", "job", job.ID, "attempt", i+1, "error", err)

		if i < p.cfg.Attempts-1 {
			backoff := p.cfg.Backoff << i
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", p.cfg.Attempts, renderErr)
}

func (p *Printer) Job(ctx context.Context, id uuid.UUID) (*domain.PrintJob, error) {
	if p.repo == nil {
		return nil, domain.ErrJobNotFound
	}
	return p.repo.Get(ctx, id)
}

// save is best-effort; a storage outage never fails a print.
func (p *Printer) save(ctx context.Context, job *domain.PrintJob) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Save(ctx, job); err != nil {
		p.log.Warn("failed to save print job", "job", job.ID, "error", err)
	}
}

// writeFileAtomic writes through a temporary file in the target directory so
// readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
