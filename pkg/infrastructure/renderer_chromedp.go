package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrBrowserUnavailable means no headless browser could be found or started.
var ErrBrowserUnavailable = errors.New("headless browser unavailable")

// Letter paper with half-inch margins, in inches.
const (
	paperWidth  = 8.5
	paperHeight = 11
	pageMargin  = 0.5
)

var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

type ChromedpRenderer struct {
	execPath string
	timeout  time.Duration
}

// NewChromedpRenderer uses execPath when set, otherwise whatever Chrome or
// Chromium binary is on PATH.
func NewChromedpRenderer(execPath string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{execPath: execPath, timeout: timeout}
}

func (r *ChromedpRenderer) Name() string { return "chromedp" }

func (r *ChromedpRenderer) Available(context.Context) error {
	if r.execPath != "" {
		if _, err := os.Stat(r.execPath); err != nil {
			return fmt.Errorf("%w: CHROME_PATH %s: %v", ErrBrowserUnavailable, r.execPath, err)
		}
		return nil
	}
	for _, c := range chromeCandidates {
		if _, err := exec.LookPath(c); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: no Chrome or Chromium binary on PATH", ErrBrowserUnavailable)
}

func (r *ChromedpRenderer) RenderURLToPDF(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, r.timeout)
	defer cancel2()

	var pdfBuf []byte
	err := chromedp.Run(ctx2,
		emulation.SetEmulatedMedia().WithMedia("print"),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(pageMargin).
				WithMarginBottom(pageMargin).
				WithMarginLeft(pageMargin).
				WithMarginRight(pageMargin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print %s: %w", url, err)
	}
	return pdfBuf, nil
}
