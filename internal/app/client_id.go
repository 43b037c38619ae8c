package app

import (
	"context"

	soundcloud_client "github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	http_transport "github.com/oshokin/soundcloud-grabber/internal/transport/http"
)

// ExecuteClientIDCommand discovers the public client ID from the SoundCloud web site
// and saves it to the configuration file.
func ExecuteClientIDCommand(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "Looking for the SoundCloud client ID")

	config.SetServiceURLs(cfg)

	if cfg.ParsedRequestTimeout <= 0 {
		cfg.ParsedRequestTimeout = http_transport.DefaultTimeout
	}

	client, err := soundcloud_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize SoundCloud client: %v", err)
		return
	}

	clientID, err := client.DiscoverClientID(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to discover client ID: %v", err)
		return
	}

	logger.Infof(ctx, "Found client ID: %s", clientID)

	cfg.ClientID = clientID

	if err = config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "")
	logger.Info(ctx, "Try downloading a track:")
	logger.Info(ctx, "soundcloud-grabber https://soundcloud.com/user/track-name")
	logger.Info(ctx, "")
	logger.Info(ctx, "Or a playlist:")
	logger.Info(ctx, "soundcloud-grabber https://soundcloud.com/user/sets/playlist-name")
}
