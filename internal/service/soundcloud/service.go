package soundcloud

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/constants"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

// Service provides methods for downloading tracks and playlists from SoundCloud URLs.
type Service interface {
	// DownloadURLs orchestrates the full download pipeline, from URL processing to file creation.
	DownloadURLs(ctx context.Context, urls []string)
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl implements the download service with a persistent download log.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client is the client for interacting with SoundCloud.
	client soundcloud.Client
	// urlProcessor handles URL parsing and categorization.
	urlProcessor URLProcessor
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
	// downloadLog holds the finished downloads of this and previous runs.
	downloadLog *DownloadLog
	// stats tracks download statistics for the current session.
	stats *DownloadStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	client soundcloud.Client,
	urlProcessor URLProcessor,
	tagProcessor TagProcessor,
) Service {
	return &ServiceImpl{
		cfg:          cfg,
		client:       client,
		urlProcessor: urlProcessor,
		tagProcessor: tagProcessor,
		stats:        new(DownloadStatistics),
		statsMutex:   new(sync.Mutex),
	}
}

// DownloadURLs orchestrates the full download pipeline, from URL processing to file creation.
// The download log is loaded once before the first item and saved once after the last one,
// including when ctx is canceled midway.
func (s *ServiceImpl) DownloadURLs(ctx context.Context, urls []string) {
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	extracted, err := s.urlProcessor.ExtractDownloadItems(ctx, urls)
	if err != nil {
		logger.Errorf(ctx, "Failed to extract items to download: %v", err)
		return
	}

	for _, url := range extracted.Unparsed {
		logger.Errorf(ctx, "Cannot parse URL: %s", url)
		s.recordError(&ErrorContext{
			Category: DownloadCategoryUnknown,
			ItemURL:  url,
			Phase:    phaseParsingURL,
		}, ErrUnparsableURL)
	}

	if len(extracted.Items) == 0 {
		return
	}

	if err = os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
		logger.Errorf(ctx, "Failed to create output path: %v", err)
		return
	}

	logPath := filepath.Join(s.cfg.OutputPath, constants.DownloadLogFilename)

	s.downloadLog, err = LoadDownloadLog(logPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to load download log: %v", err)
		s.recordError(&ErrorContext{ItemURL: logPath, Phase: phaseLoadingLog}, err)

		return
	}

	logger.Debugf(ctx, "Loaded %d download log entries from %s", s.downloadLog.Len(), logPath)

	defer s.saveDownloadLog(ctx)

	for _, item := range extracted.Items {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Infof(ctx, "Downloading %s %s from %s", item.Category, item.Name, item.URL)

		//nolint:exhaustive // Unparsed URLs never become items.
		switch item.Category {
		case DownloadCategoryTrack:
			s.downloadTrackItem(ctx, item)
		case DownloadCategoryPlaylist:
			s.downloadPlaylist(ctx, item)
		default:
			logger.Errorf(ctx, "Unknown URL category: %d", item.Category)
		}
	}
}

// saveDownloadLog persists the download log, reporting failures instead of returning them.
func (s *ServiceImpl) saveDownloadLog(ctx context.Context) {
	if err := s.downloadLog.Save(); err != nil {
		logger.Errorf(ctx, "Failed to save download log: %v", err)
		s.recordError(&ErrorContext{ItemURL: s.downloadLog.Path(), Phase: phaseSavingLog}, err)

		return
	}

	logger.Debugf(ctx, "Saved %d download log entries to %s", s.downloadLog.Len(), s.downloadLog.Path())
}

// downloadTrackItem resolves a track page to its ID and downloads the track.
func (s *ServiceImpl) downloadTrackItem(ctx context.Context, item *DownloadItem) {
	errCtx := &ErrorContext{
		Category:  DownloadCategoryTrack,
		ItemTitle: item.Name,
		ItemURL:   item.URL,
	}

	trackID, err := s.client.ResolveTrackID(ctx, item.URL)
	if err != nil {
		s.handleTrackError(ctx, err, errCtx.withPhase(phaseResolvingTrackID))

		return
	}

	errCtx.ItemID = trackID

	s.downloadTrack(ctx, &downloadTrackRequest{
		trackID:      trackID,
		errCtx:       errCtx,
		showProgress: true,
	})
}
