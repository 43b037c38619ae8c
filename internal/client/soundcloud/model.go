package soundcloud

import "io"

// Track is the subset of an api-v2 track object used by the downloader.
type Track struct {
	// ID is the numeric track identifier.
	ID int64 `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// ArtworkURL points to the "large" artwork variant, may be empty.
	ArtworkURL string `json:"artwork_url"`
	// Permalink is the URL of the track page.
	Permalink string `json:"permalink_url"`
	// User is the uploader.
	User *User `json:"user"`
	// Media lists the available transcodings.
	Media *Media `json:"media"`
}

// User is a SoundCloud account.
type User struct {
	// ID is the numeric user identifier.
	ID int64 `json:"id"`
	// Username is the display name, used as the artist.
	Username string `json:"username"`
}

// Media holds the transcodings of a track.
type Media struct {
	// Transcodings are the encodings a track can be streamed in.
	Transcodings []*Transcoding `json:"transcodings"`
}

// Transcoding is one encoding of a track.
type Transcoding struct {
	// URL is the stream descriptor endpoint of this transcoding.
	URL string `json:"url"`
	// Preset is the encoder preset, e.g. "mp3_0_0".
	Preset string `json:"preset"`
	// Snipped is set for 30 second previews.
	Snipped bool `json:"snipped"`
	// Format describes the delivery protocol and MIME type.
	Format *TranscodingFormat `json:"format"`
}

// TranscodingFormat describes how a transcoding is delivered.
type TranscodingFormat struct {
	// Protocol is "progressive" or "hls".
	Protocol string `json:"protocol"`
	// MimeType is the payload MIME type.
	MimeType string `json:"mime_type"`
}

// StreamLocation is the response of a stream descriptor endpoint.
type StreamLocation struct {
	// URL is the signed, short-lived payload URL.
	URL string `json:"url"`
}

// TrackInfo is the resolved metadata of a downloadable track.
type TrackInfo struct {
	// ID is the canonical track ID.
	ID string
	// Title is the track title.
	Title string
	// Artist is the uploader's username.
	Artist string
	// ArtworkURL is the "large" artwork URL, may be empty.
	ArtworkURL string
	// StreamURL is the progressive transcoding descriptor, empty when the track has none.
	StreamURL string
}

// FetchResult is an open payload response.
type FetchResult struct {
	// Body is the payload stream, the caller closes it.
	Body io.ReadCloser
	// TotalBytes is the announced payload size, -1 when unknown.
	TotalBytes int64
}

// FetchJSONResult holds a decoded JSON response together with its status code.
type FetchJSONResult[T any] struct {
	// Data is the decoded body, nil for non-200 responses.
	Data *T
	// StatusCode is the HTTP status code.
	StatusCode int
}
