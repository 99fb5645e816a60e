package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"portfolio-site/internal/buildlog"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/internal/render"
	"portfolio-site/internal/resume"
	"portfolio-site/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const nothingToExportWarning = "No logs to export. Try adjusting your filters."

type PrintService interface {
	NewJob(ctx context.Context) *domain.PrintJob
	Run(ctx context.Context, job *domain.PrintJob) error
	Job(ctx context.Context, id uuid.UUID) (*domain.PrintJob, error)
}

type Options struct {
	ResumePath    string
	MergedLogPath string
	BuildID       string
	StaticDir     string
}

type Handler struct {
	renderer *render.Renderer
	printer  PrintService
	opts     Options
	log      *slog.Logger

	// one print at a time; they share the local server port
	printing sync.Mutex
}

func NewHandler(r *render.Renderer, p PrintService, opts Options) *Handler {
	return &Handler{renderer: r, printer: p, opts: opts, log: slog.Default().With("component", "http")}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/resume", h.Resume)
	app.Get("/resume.json", h.ResumeJSON)
	app.Get("/resume.pdf", h.ResumePDF)
	app.Get("/logs", h.Logs)
	app.Get("/logs/export", h.ExportLogs)
	app.Get("/logs/logs.js", h.LogsScript)
	app.Post("/print", h.StartPrint)
	app.Get("/print/:id", h.PrintStatus)
}

func (h *Handler) Resume(c *fiber.Ctx) error {
	doc, _, err := model.Load(h.opts.ResumePath)
	if err != nil {
		h.log.Error("load resume", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resume unavailable"})
	}

	var buf bytes.Buffer
	if err := h.renderer.Resume(&buf, render.ResumePage{Layout: resume.Project(doc), PDFURL: "/resume.pdf"}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) ResumeJSON(c *fiber.Ctx) error {
	raw, err := os.ReadFile(h.opts.ResumePath)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume not found"})
	}
	c.Type("json", "utf-8")
	return c.Send(raw)
}

func (h *Handler) ResumePDF(c *fiber.Ctx) error {
	path := filepath.Join(h.opts.StaticDir, usecase.PDFName)
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resume has not been printed yet"})
	}
	c.Type("pdf")
	return c.SendFile(path)
}

func (h *Handler) loadLogs() ([]buildlog.Line, error) {
	if h.opts.MergedLogPath == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(h.opts.MergedLogPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return buildlog.Parse(f)
}

func filterFromQuery(c *fiber.Ctx) buildlog.Filter {
	return buildlog.NewFilter(c.Query("machine", buildlog.AllMachines), c.Query("q"))
}

func (h *Handler) Logs(c *fiber.Ctx) error {
	lines, err := h.loadLogs()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "build logs not available"})
	}

	f := filterFromQuery(c)
	page := render.NewLogsPage(h.opts.BuildID, lines, f)
	page.ExportURL = fmt.Sprintf("/logs/export?machine=%s&q=%s", url.QueryEscape(f.Machine), url.QueryEscape(f.Search))
	page.ScriptURL = "/logs/logs.js"

	var buf bytes.Buffer
	if err := h.renderer.Logs(&buf, page); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) ExportLogs(c *fiber.Ctx) error {
	lines, err := h.loadLogs()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "build logs not available"})
	}

	exp, err := buildlog.ExportVisible(lines, filterFromQuery(c))
	if errors.Is(err, buildlog.ErrNothingToExport) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"warning": nothingToExportWarning})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Attachment(exp.Filename)
	c.Type("txt", "utf-8")
	return c.Send(exp.Content)
}

func (h *Handler) LogsScript(c *fiber.Ctx) error {
	c.Type("js", "utf-8")
	return c.Send(h.renderer.Script())
}

func (h *Handler) StartPrint(c *fiber.Ctx) error {
	if !h.printing.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a print job is already running"})
	}

	job := h.printer.NewJob(c.UserContext())
	id := job.ID.String()

	// spawn background printing
	go func(j *domain.PrintJob) {
		defer h.printing.Unlock()
		if err := h.printer.Run(context.Background(), j); err != nil {
			h.log.Error("print job failed", "job", id, "error", err)
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": id, "status": "started"})
}

func (h *Handler) PrintStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}

	job, err := h.printer.Job(c.UserContext(), id)
	if errors.Is(err, domain.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}
