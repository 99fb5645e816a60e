package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"portfolio-site/config"
	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/render"
	"portfolio-site/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $SITE_CONFIG or config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	bootstrap.Logger(cfg)

	r, err := render.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "templates: %v\n", err)
		os.Exit(2)
	}

	res, err := usecase.NewBuilder(r, bootstrap.SiteConfig(cfg)).Build(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		os.Exit(1)
	}
	for _, p := range res.Pages {
		fmt.Printf("wrote %s/%s\n", cfg.BuildDir, p)
	}
}
