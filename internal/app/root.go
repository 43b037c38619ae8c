package app

import (
	"context"

	soundcloud_client "github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	soundcloud_service "github.com/oshokin/soundcloud-grabber/internal/service/soundcloud"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the SoundCloud client, sets up the necessary service components,
// and starts the download process for the provided URLs.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, urls []string) {
	client, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize SoundCloud client: %v", err)
	}

	urlProcessor := soundcloud_service.NewURLProcessor()
	tagProcessor := soundcloud_service.NewTagProcessor()

	s := soundcloud_service.NewService(cfg, client, urlProcessor, tagProcessor)

	// Statistics are printed even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	s.DownloadURLs(ctx, urls)
}
