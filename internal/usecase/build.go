package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"portfolio-site/internal/buildlog"
	"portfolio-site/internal/model"
	"portfolio-site/internal/render"
	"portfolio-site/internal/resume"
)

type SiteConfig struct {
	ResumePath    string
	MergedLogPath string
	BuildID       string
	BuildDir      string
	StaticDir     string
}

type BuildResult struct {
	Pages        []string
	LintWarnings []string
	LogLines     int
}

// Builder renders the static site into the build directory.
type Builder struct {
	renderer *render.Renderer
	cfg      SiteConfig
	log      *slog.Logger
}

func NewBuilder(r *render.Renderer, cfg SiteConfig) *Builder {
	return &Builder{renderer: r, cfg: cfg, log: slog.Default().With("component", "builder")}
}

func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	res := &BuildResult{}

	doc, raw, err := model.Load(b.cfg.ResumePath)
	if err != nil {
		return nil, err
	}
	warnings, err := model.Lint(raw)
	if err != nil {
		return nil, err
	}
	res.LintWarnings = warnings
	for _, w := range warnings {
		b.log.Warn("resume lint", "path", b.cfg.ResumePath, "warning", w)
	}

	if err := os.MkdirAll(b.cfg.BuildDir, 0o755); err != nil {
		return nil, err
	}
	if err := copyTree(b.cfg.StaticDir, b.cfg.BuildDir); err != nil {
		return nil, fmt.Errorf("copy static: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := b.renderer.Resume(&page, render.ResumePage{Layout: resume.Project(doc), PDFURL: "/" + PDFName}); err != nil {
		return nil, err
	}
	if err := b.write(res, filepath.Join("resume", "index.html"), page.Bytes()); err != nil {
		return nil, err
	}
	if err := b.write(res, "resume.json", raw); err != nil {
		return nil, err
	}

	if b.cfg.MergedLogPath != "" {
		n, err := b.buildLogs(res)
		if err != nil {
			return nil, err
		}
		res.LogLines = n
	}

	b.log.Info("site built", "dir", b.cfg.BuildDir, "pages", len(res.Pages), "log_lines", res.LogLines)
	return res, nil
}

func (b *Builder) buildLogs(res *BuildResult) (int, error) {
	f, err := os.Open(b.cfg.MergedLogPath)
	if err != nil {
		return 0, fmt.Errorf("open merged log: %w", err)
	}
	defer f.Close()

	lines, err := buildlog.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parse merged log: %w", err)
	}

	page := render.NewLogsPage(b.cfg.BuildID, lines, buildlog.NewFilter(buildlog.AllMachines, ""))
	// exported in the browser by logs.js
	page.ExportURL = "#"
	page.ScriptURL = "logs.js"

	var buf bytes.Buffer
	if err := b.renderer.Logs(&buf, page); err != nil {
		return 0, err
	}
	if err := b.write(res, filepath.Join("logs", "index.html"), buf.Bytes()); err != nil {
		return 0, err
	}
	if err := b.write(res, filepath.Join("logs", "logs.js"), b.renderer.Script()); err != nil {
		return 0, err
	}
	return len(lines), nil
}

func (b *Builder) write(res *BuildResult, rel string, data []byte) error {
	if err := writeFileAtomic(filepath.Join(b.cfg.BuildDir, rel), data); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	res.Pages = append(res.Pages, filepath.ToSlash(rel))
	return nil
}

// copyTree copies src into dst, overwriting existing files. A missing src is
// not an error.
func copyTree(src, dst string) error {
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return writeFileAtomic(target, data)
	})
}
