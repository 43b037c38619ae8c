package soundcloud

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	"github.com/oshokin/soundcloud-grabber/internal/constants"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

const (
	// artworkDescription is stored in the embedded cover picture frame.
	artworkDescription = "SoundCloud"

	// maxPreallocatedBytes caps the buffer reserved from the reported Content-Length.
	maxPreallocatedBytes = 32 << 20
)

// downloadTrackRequest describes a single track to fetch.
type downloadTrackRequest struct {
	// trackID is the canonical track ID.
	trackID string
	// errCtx labels errors of this track, including its parent playlist.
	errCtx *ErrorContext
	// showProgress enables the progress bar, off for concurrent downloads.
	showProgress bool
}

// downloadTrack fetches one track into the save directory, tags it and records it in the log.
// Tracks already in the log with their file on disk are skipped without network traffic.
func (s *ServiceImpl) downloadTrack(ctx context.Context, req *downloadTrackRequest) {
	ctx = logger.WithKV(ctx, "trackID", req.trackID)
	errCtx := *req.errCtx
	errCtx.Category = DownloadCategoryTrack
	errCtx.ItemID = req.trackID

	if s.downloadLog.IsDownloaded(req.trackID) {
		logger.Debugf(ctx, "Track %s is already downloaded to %s, skipping",
			req.trackID, s.downloadLog.Get(req.trackID).Path)
		s.incrementTrackSkipped(SkipReasonExists)

		return
	}

	info, err := s.client.GetTrackInfo(ctx, req.trackID)
	if err != nil {
		s.handleTrackError(ctx, err, errCtx.withPhase(phaseFetchingMetadata))

		return
	}

	if info == nil || info.StreamURL == "" {
		logger.Warnf(ctx, "Track %s is unavailable, skipping", req.trackID)
		s.incrementTrackSkipped(SkipReasonUnavailable)

		return
	}

	errCtx.ItemTitle = info.Title

	downloadURL, err := s.client.GetDownloadURL(ctx, info.StreamURL)
	if err != nil {
		s.handleTrackError(ctx, err, errCtx.withPhase(phaseResolvingStreamURL))

		return
	}

	payload, err := s.fetchPayload(ctx, downloadURL, req.showProgress)
	if err != nil {
		s.handleTrackError(ctx, err, errCtx.withPhase(phaseDownloadingFile))

		return
	}

	trackPath := filepath.Join(s.cfg.OutputPath, trackFilename(info))

	// A failed write still goes through tagging and is logged. The entry stays stale
	// until the file exists, so the next run downloads the track again.
	writeErr := os.WriteFile(trackPath, payload, constants.DefaultFilePermissions)
	if writeErr != nil {
		s.handleStageError(ctx, writeErr, errCtx.withPhase(phaseWritingFile))
	}

	s.writeTrackTags(ctx, trackPath, info, &errCtx)

	s.downloadLog.Record(&LogEntry{
		TrackID:     req.trackID,
		Title:       info.Title,
		Artist:      info.Artist,
		DownloadURL: downloadURL,
		Path:        trackPath,
	})

	if writeErr != nil {
		s.incrementTrackFailed()

		return
	}

	logger.Infof(ctx, "Downloaded %s", info.Title)
	s.incrementTrackDownloaded(int64(len(payload)))
}

// fetchPayload reads the whole payload at downloadURL into memory.
func (s *ServiceImpl) fetchPayload(ctx context.Context, downloadURL string, showProgress bool) ([]byte, error) {
	fetchResult, err := s.client.DownloadFromURL(ctx, downloadURL)
	if err != nil {
		return nil, err
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	var buffer bytes.Buffer
	if fetchResult.TotalBytes > 0 {
		buffer.Grow(int(min(fetchResult.TotalBytes, maxPreallocatedBytes)))
	}

	var writer io.Writer = &buffer

	// Concurrent playlist downloads would garble each other's bars.
	if showProgress && logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(
			fetchResult.TotalBytes,
			"Downloading",
		)

		writer = io.MultiWriter(&buffer, bar)
	}

	if _, err = io.Copy(writer, fetchResult.Body); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// writeTrackTags embeds title, artist, album and cover art. Failures are recorded, never fatal.
func (s *ServiceImpl) writeTrackTags(
	ctx context.Context,
	trackPath string,
	info *soundcloud.TrackInfo,
	errCtx *ErrorContext,
) {
	req := &WriteTagsRequest{
		TrackPath: trackPath,
		Title:     info.Title,
		Artist:    info.Artist,
		Album:     info.Title,
	}

	if info.ArtworkURL != "" {
		artwork, err := s.client.GetArtwork(ctx, soundcloud.ArtworkFullSizeURL(info.ArtworkURL))
		if err != nil {
			s.handleStageError(ctx, err, errCtx.withPhase(phaseFetchingArtwork))
		} else {
			req.Artwork = &Artwork{
				Data:        artwork,
				MimeType:    utils.ImageJPEGMimeType,
				Description: artworkDescription,
			}
		}
	}

	if err := s.tagProcessor.WriteTags(ctx, req); err != nil {
		s.handleStageError(ctx, err, errCtx.withPhase(phaseWritingTags))
	}
}

// trackFilename returns "<title>.mp3" without unsafe characters.
// A title made only of unsafe characters falls back to the track ID.
func trackFilename(info *soundcloud.TrackInfo) string {
	filename := utils.RemoveUnsafeFilenameChars(info.Title + constants.ExtensionMP3)
	if strings.TrimSpace(strings.TrimSuffix(filename, constants.ExtensionMP3)) != "" {
		return filename
	}

	return utils.RemoveUnsafeFilenameChars(info.ID) + constants.ExtensionMP3
}
