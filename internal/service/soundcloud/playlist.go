package soundcloud

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

// downloadPlaylist resolves the track IDs of a playlist page and downloads them
// over a pool of MaxConcurrentDownloads workers. It blocks until every dispatched track is done.
func (s *ServiceImpl) downloadPlaylist(ctx context.Context, item *DownloadItem) {
	errCtx := &ErrorContext{
		Category:  DownloadCategoryPlaylist,
		ItemID:    item.Name,
		ItemTitle: item.Name,
		ItemURL:   item.URL,
	}

	trackIDs, err := s.client.ResolvePlaylistTrackIDs(ctx, item.URL)
	if err != nil {
		s.handleStageError(ctx, err, errCtx.withPhase(phaseResolvingPlaylist))

		return
	}

	logger.Infof(ctx, "Found %d tracks in playlist", len(trackIDs))

	workers := int(s.cfg.MaxConcurrentDownloads)
	if workers <= 0 {
		workers = 1
	}

	group := new(errgroup.Group)
	group.SetLimit(workers)

	for _, trackID := range trackIDs {
		// Stop dispatching once the user pressed CTRL+C, in-flight tracks finish on their own.
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			s.downloadTrack(ctx, &downloadTrackRequest{
				trackID: trackID,
				errCtx: &ErrorContext{
					ParentCategory: DownloadCategoryPlaylist,
					ParentID:       item.Name,
					ParentTitle:    item.Name,
					ParentURL:      item.URL,
				},
			})

			return nil
		})
	}

	_ = group.Wait()
}
