package main

import (
	"fmt"
	"log/slog"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/config"
	"mukesh.dev/internal/content"
	"mukesh.dev/internal/page"
	"mukesh.dev/internal/services"
)

// site is the content and rendering side of the app, shared by serve and
// generate
type site struct {
	content    *services.ContentService
	composer   *page.Composer
	background *services.BackgroundService
}

func buildSite(cfg *config.Config) (*site, error) {
	portfolio, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	contentService := services.NewContentService(portfolio)
	composer, err := page.NewComposer(contentService.Portfolio(), cfg.Viewport.Breakpoint)
	if err != nil {
		return nil, err
	}

	backgroundService := services.NewBackgroundService(
		cfg.BackgroundSettings(),
		background.RasterLoader{},
		slog.Default().With("component", "background"),
	)

	return &site{
		content:    contentService,
		composer:   composer,
		background: backgroundService,
	}, nil
}
