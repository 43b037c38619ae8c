// Package soundcloud downloads SoundCloud tracks and playlists as tagged MP3 files.
// It classifies page URLs, resolves them to track IDs, fetches the progressive
// stream of every track into the save directory, embeds ID3 tags with cover art,
// and keeps a download log so that repeated runs skip finished tracks.
package soundcloud
