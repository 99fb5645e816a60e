package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"portfolio-site/config"
	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/usecase"
	infra "portfolio-site/pkg/infrastructure"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run prints the résumé and returns the process exit code. Deferred cleanup
// runs before the caller exits.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	bootstrap.Logger(cfg)

	switch len(args) {
	case 0:
	case 1:
		port, err := strconv.Atoi(args[0])
		if err != nil || port < 1 || port > 65535 {
			fmt.Fprintln(stderr, "usage: print-resume [port]")
			return 2
		}
		cfg.PrintPort = port
	default:
		fmt.Fprintln(stderr, "usage: print-resume [port]")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs, closeJobs := bootstrap.JobsRepo(ctx, cfg)
	defer closeJobs()

	printer := bootstrap.Printer(cfg, bootstrap.Renderer(cfg), jobs)
	job, err := printer.Print(ctx)
	switch {
	case errors.Is(err, usecase.ErrSiteNotBuilt):
		return fail(stderr, err, "Run `go run ./cmd/build` first to render the site into "+cfg.BuildDir+"/.")
	case errors.Is(err, infra.ErrBrowserUnavailable):
		return fail(stderr, err, "Install Chrome or Chromium, or set CHROME_PATH. For the playwright backend run `go run github.com/playwright-community/playwright-go/cmd/playwright install chromium`.")
	case err != nil:
		return fail(stderr, err, "")
	}

	fmt.Fprintf(stdout, "PDF written to %s (%d bytes)\n", job.OutputPath, job.Size)
	fmt.Fprintf(stdout, "Copied to %s\n", job.PublicPath)
	return 0
}

func fail(stderr io.Writer, err error, hint string) int {
	fmt.Fprintf(stderr, "print-resume: %v\n", err)
	if hint != "" {
		fmt.Fprintln(stderr, hint)
	}
	return 1
}
