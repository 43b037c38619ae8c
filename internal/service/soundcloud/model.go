package soundcloud

import (
	"fmt"
	"time"
)

// DownloadCategory represents the type of content being downloaded.
type DownloadCategory uint8

const (
	// DownloadCategoryUnknown - unknown category.
	DownloadCategoryUnknown DownloadCategory = iota
	// DownloadCategoryTrack - single track.
	DownloadCategoryTrack
	// DownloadCategoryPlaylist - playlist (a "set").
	DownloadCategoryPlaylist
)

// String returns a human-readable representation of the DownloadCategory.
func (dc DownloadCategory) String() string {
	switch dc {
	case DownloadCategoryUnknown:
		return "unknown"
	case DownloadCategoryTrack:
		return "track"
	case DownloadCategoryPlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("unknown: %d", dc)
	}
}

// SkipReason represents why a track was skipped.
type SkipReason uint8

const (
	// SkipReasonExists - track is in the download log and its file is on disk.
	SkipReasonExists SkipReason = iota
	// SkipReasonUnavailable - track has no metadata or no progressive stream.
	SkipReasonUnavailable
)

// String returns a human-readable representation of the SkipReason.
func (sr SkipReason) String() string {
	switch sr {
	case SkipReasonExists:
		return "already downloaded"
	case SkipReasonUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("unknown: %d", sr)
	}
}

// URLInfo is the result of classifying a page URL.
type URLInfo struct {
	// Kind is DownloadCategoryTrack or DownloadCategoryPlaylist.
	Kind DownloadCategory
	// Name is the last path segment (the slug).
	Name string
}

// DownloadItem represents a classified URL to download.
type DownloadItem struct {
	// Category is the type of the item.
	Category DownloadCategory
	// URL is the page URL as given by the user.
	URL string
	// Name is the slug taken from the URL.
	Name string
}

// String returns a human-readable representation of the DownloadItem.
func (di *DownloadItem) String() string {
	return fmt.Sprintf("%s %s (%s)", di.Category, di.Name, di.URL)
}

// DownloadStatistics tracks metrics for a download session.
type DownloadStatistics struct {
	// StartTime is when the download session began.
	StartTime time.Time
	// EndTime is when the download session completed.
	EndTime time.Time
	// TotalTracksProcessed is the total number of tracks attempted.
	TotalTracksProcessed int64
	// TracksDownloaded is the number of tracks successfully downloaded.
	TracksDownloaded int64
	// TracksSkipped is the total number of tracks skipped for any reason.
	TracksSkipped int64
	// TracksSkippedExists is the number of tracks skipped because they were downloaded before.
	TracksSkippedExists int64
	// TracksSkippedUnavailable is the number of tracks skipped because they cannot be streamed.
	TracksSkippedUnavailable int64
	// TracksFailed is the number of tracks that failed to download.
	TracksFailed int64
	// TotalBytesDownloaded is the total size of downloaded content in bytes.
	TotalBytesDownloaded int64
	// Errors is a list of all errors encountered during the download process.
	Errors []DownloadError
}

// DownloadError is a recorded failure together with where it happened.
type DownloadError struct {
	ErrorContext

	// ErrorMessage is the text of the underlying error.
	ErrorMessage string
}
