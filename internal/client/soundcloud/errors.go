package soundcloud

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrTrackIDNotFound indicates that a track page has no embedded API track reference.
	ErrTrackIDNotFound = errors.New("track ID not found in page")
	// ErrPlaylistTrackIDsNotFound indicates that a playlist page has no track IDs.
	ErrPlaylistTrackIDsNotFound = errors.New("no track IDs found in playlist page")
	// ErrEmptyDownloadURL indicates that a stream descriptor has no download URL.
	ErrEmptyDownloadURL = errors.New("stream descriptor has no download URL")
	// ErrEmptyStreamURL indicates that a stream URL was not provided.
	ErrEmptyStreamURL = errors.New("stream URL is empty")
	// ErrClientIDNotFound indicates that no client ID was found in the site's scripts.
	ErrClientIDNotFound = errors.New("client ID not found in site scripts")
)
