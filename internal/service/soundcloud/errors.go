package soundcloud

import (
	"context"
	"errors"
)

// Common errors for the service layer.
var (
	// ErrUnparsableURL indicates that a URL is neither a track nor a playlist URL.
	ErrUnparsableURL = errors.New("URL is neither a track nor a playlist URL")
)

// Download phases, used to label recorded errors.
const (
	phaseParsingURL         = "parsing URL"
	phaseResolvingTrackID   = "resolving track ID"
	phaseResolvingPlaylist  = "resolving playlist track IDs"
	phaseFetchingMetadata   = "fetching metadata"
	phaseResolvingStreamURL = "resolving download URL"
	phaseDownloadingFile    = "downloading file"
	phaseWritingFile        = "writing file"
	phaseFetchingArtwork    = "fetching artwork"
	phaseWritingTags        = "writing metadata tags"
	phaseLoadingLog         = "loading download log"
	phaseSavingLog          = "saving download log"
)

// ErrorContext provides context information for download errors.
type ErrorContext struct {
	// Category is the type of item that failed.
	Category DownloadCategory
	// ItemID is the unique identifier of the item that failed.
	ItemID string
	// ItemTitle is the human-readable title of the item.
	ItemTitle string
	// ItemURL is the URL of the failed item.
	ItemURL string
	// Phase indicates when the error occurred.
	Phase string
	// ParentCategory is the type of parent collection for tracks.
	ParentCategory DownloadCategory
	// ParentID is the ID of the parent collection.
	ParentID string
	// ParentTitle is the title of the parent collection.
	ParentTitle string
	// ParentURL is the page URL of the parent collection.
	ParentURL string
}

// withPhase returns a copy of the context labeled with phase.
func (ec ErrorContext) withPhase(phase string) *ErrorContext {
	ec.Phase = phase

	return &ec
}

// recordError appends err to the session errors. Cancellation is not recorded.
func (s *ServiceImpl) recordError(errCtx *ErrorContext, err error) {
	if errCtx == nil || err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Errors = append(s.stats.Errors, DownloadError{
		ErrorContext: *errCtx,
		ErrorMessage: err.Error(),
	})
}
