package soundcloud

const (
	// apiTracksURI is the api-v2 path of the track metadata endpoint.
	apiTracksURI = "tracks"

	// clientIDParam is the query parameter carrying the client ID.
	clientIDParam = "client_id"

	// progressiveSuffix marks transcodings served as a single MP3 file.
	progressiveSuffix = "progressive"

	// ArtworkLargeSize and ArtworkFullSize are the size tokens in artwork URLs.
	ArtworkLargeSize = "large"
	ArtworkFullSize  = "t500x500"
)

const (
	// artworkCacheSize is the number of artwork images kept in memory.
	// Playlists often reuse the uploader's artwork across tracks.
	artworkCacheSize = 64

	// clientIDLength is the length of a SoundCloud client ID.
	clientIDLength = 32
)
