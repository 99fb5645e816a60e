package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightRenderer prints through a Playwright-managed Chromium. The
// driver and browser must already be installed.
type PlaywrightRenderer struct {
	timeout time.Duration
}

func NewPlaywrightRenderer(timeout time.Duration) *PlaywrightRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PlaywrightRenderer{timeout: timeout}
}

func (r *PlaywrightRenderer) Name() string { return "playwright" }

func (r *PlaywrightRenderer) Available(context.Context) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
	}
	return browser.Close()
}

func (r *PlaywrightRenderer) RenderURLToPDF(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	defer page.Close()

	timeoutMs := float64(r.timeout / time.Millisecond)
	if deadline, ok := ctx.Deadline(); ok {
		if left := float64(time.Until(deadline) / time.Millisecond); left < timeoutMs {
			timeoutMs = left
		}
	}

	if err := page.EmulateMedia(playwright.PageEmulateMediaOptions{
		Media: playwright.MediaPrint,
	}); err != nil {
		return nil, fmt.Errorf("could not emulate print media: %w", err)
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(timeoutMs),
	}); err != nil {
		return nil, fmt.Errorf("could not load %s: %w", url, err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("Letter"),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("0.5in"),
			Bottom: playwright.String("0.5in"),
			Left:   playwright.String("0.5in"),
			Right:  playwright.String("0.5in"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}
	return pdfBytes, nil
}
