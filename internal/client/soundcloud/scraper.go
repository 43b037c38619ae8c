package soundcloud

import (
	"net/url"
	"regexp"
	"slices"

	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var (
	// trackReferencePattern matches the api.soundcloud.com track reference embedded
	// in track pages, both plain and URL-encoded (inside oEmbed/widget links).
	trackReferencePattern = regexp.MustCompile(
		`(?:https:|https%3[Aa])(?://|%2[Ff]%2[Ff])api\.soundcloud\.com(?:/|%2[Ff])tracks?(?:/|%2[Ff])(?P<id>\d+)`)

	// playlistTrackIDPattern matches every numeric "id" in a playlist page's hydration data.
	playlistTrackIDPattern = regexp.MustCompile(`"id":(\d{6,12})\b`)

	// assetScriptPattern matches the site's JavaScript bundles.
	assetScriptPattern = regexp.MustCompile(`<script[^>]*\ssrc="([^"]*/assets/[^"]+\.js)"`)

	// clientIDPattern matches the client ID assignment inside a bundle.
	clientIDPattern = regexp.MustCompile(`client_id\s*[:=]\s*"?([A-Za-z0-9]{32})\b`)
)

// ExtractTrackID returns the first embedded API track ID of a track page.
func ExtractTrackID(html string) (string, error) {
	id := utils.ExtractNamedGroup(trackReferencePattern, "id", html)
	if id == "" {
		return "", ErrTrackIDNotFound
	}

	return id, nil
}

// ExtractPlaylistTrackIDs returns every distinct 6 to 12 digit "id" of a playlist page
// in first-seen order. The match is a heuristic: user and playlist IDs of the same
// length are included too and later resolve as unavailable tracks or extra downloads.
func ExtractPlaylistTrackIDs(html string) ([]string, error) {
	matches := playlistTrackIDPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil, ErrPlaylistTrackIDsNotFound
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match[1])
	}

	return utils.Unique(ids), nil
}

// extractScriptURLs returns the absolute URLs of the asset bundles referenced by a page.
func extractScriptURLs(pageURL, html string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	matches := assetScriptPattern.FindAllStringSubmatch(html, -1)
	result := make([]string, 0, len(matches))

	for _, match := range matches {
		ref, parseErr := url.Parse(match[1])
		if parseErr != nil {
			continue
		}

		result = append(result, base.ResolveReference(ref).String())
	}

	return utils.Unique(result)
}

// extractClientID returns the client ID assigned in a JavaScript bundle.
func extractClientID(script string) string {
	match := clientIDPattern.FindStringSubmatch(script)
	if len(match) < 2 || len(match[1]) != clientIDLength {
		return ""
	}

	return match[1]
}

// reversed returns a reversed copy of values.
// The client ID lives in one of the last bundles of the page.
func reversed(values []string) []string {
	result := slices.Clone(values)
	slices.Reverse(result)

	return result
}
