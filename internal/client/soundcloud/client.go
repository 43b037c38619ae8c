package soundcloud

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	http_transport "github.com/oshokin/soundcloud-grabber/internal/transport/http"
	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

// Client defines the interface for interacting with SoundCloud.
type Client interface {
	// DiscoverClientID scrapes the site's JavaScript bundles for the public client ID.
	DiscoverClientID(ctx context.Context) (string, error)
	// DownloadFromURL opens the payload at the specified URL.
	DownloadFromURL(ctx context.Context, url string) (*FetchResult, error)
	// FetchPage returns the HTML of a public page.
	FetchPage(ctx context.Context, pageURL string) (string, error)
	// GetArtwork returns the image bytes at artworkURL.
	GetArtwork(ctx context.Context, artworkURL string) ([]byte, error)
	// GetDownloadURL resolves a stream descriptor into a direct payload URL.
	GetDownloadURL(ctx context.Context, streamURL string) (string, error)
	// GetTrackInfo retrieves track metadata. It returns nil when the track is unavailable.
	GetTrackInfo(ctx context.Context, trackID string) (*TrackInfo, error)
	// ResolvePlaylistTrackIDs scrapes a playlist page for its track IDs.
	ResolvePlaylistTrackIDs(ctx context.Context, playlistURL string) ([]string, error)
	// ResolveTrackID scrapes a track page for its API track ID.
	ResolveTrackID(ctx context.Context, trackURL string) (string, error)
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// apiBaseURL is the base URL of the api-v2.
	apiBaseURL string
	// siteBaseURL is the base URL of the web site.
	siteBaseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// artworkCache keeps recently fetched artwork by URL.
	artworkCache *lru.Cache[string, []byte]
}

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	if _, err := url.Parse(cfg.SiteBaseURL); err != nil {
		return nil, fmt.Errorf("invalid site base URL: %w", err)
	}

	// Browser requests to api-v2 carry the site as Origin.
	defaultHeaders := http.Header{
		"Origin":  []string{strings.TrimSuffix(cfg.SiteBaseURL, "/")},
		"Referer": []string{strings.TrimSuffix(cfg.SiteBaseURL, "/") + "/"},
	}

	httpClient := &http.Client{
		Transport: http_transport.NewHeaderInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0, clientIDParam),
			utils.NewStaticUserAgentProvider(cfg.UserAgent, http_transport.DefaultUserAgent),
			defaultHeaders),
		Timeout: cfg.ParsedRequestTimeout,
	}

	artworkCache, err := lru.New[string, []byte](artworkCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create artwork cache: %w", err)
	}

	return &ClientImpl{
		cfg:          cfg,
		apiBaseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		siteBaseURL:  strings.TrimSuffix(cfg.SiteBaseURL, "/"),
		httpClient:   httpClient,
		artworkCache: artworkCache,
	}, nil
}

// DiscoverClientID scrapes the site's JavaScript bundles for the public client ID.
// Bundles are searched from the last one, which usually holds the ID.
func (c *ClientImpl) DiscoverClientID(ctx context.Context) (string, error) {
	pageURL := c.siteBaseURL + "/"

	html, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	scripts := extractScriptURLs(pageURL, html)
	logger.Debugf(ctx, "Found %d asset scripts", len(scripts))

	for _, scriptURL := range reversed(scripts) {
		script, fetchErr := c.readAll(ctx, scriptURL)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}

			logger.Debugf(ctx, "Skipping script %s: %v", scriptURL, fetchErr)

			continue
		}

		if clientID := extractClientID(string(script)); clientID != "" {
			return clientID, nil
		}
	}

	return "", ErrClientIDNotFound
}

// DownloadFromURL opens the payload at the specified URL.
func (c *ClientImpl) DownloadFromURL(ctx context.Context, url string) (*FetchResult, error) {
	response, err := c.getOK(ctx, url)
	if err != nil {
		return nil, err
	}

	return &FetchResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

// FetchPage returns the HTML of a public page.
func (c *ClientImpl) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, err := c.readAll(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page %s: %w", pageURL, err)
	}

	return string(body), nil
}

// GetArtwork returns the image bytes at artworkURL.
func (c *ClientImpl) GetArtwork(ctx context.Context, artworkURL string) ([]byte, error) {
	if cached, ok := c.artworkCache.Get(artworkURL); ok {
		logger.Debugf(ctx, "Artwork cache hit for %s", artworkURL)

		return cached, nil
	}

	data, err := c.readAll(ctx, artworkURL)
	if err != nil {
		return nil, err
	}

	c.artworkCache.Add(artworkURL, data)

	return data, nil
}

// GetDownloadURL resolves a stream descriptor into a direct payload URL.
// The result is short-lived and never cached.
func (c *ClientImpl) GetDownloadURL(ctx context.Context, streamURL string) (string, error) {
	if streamURL == "" {
		return "", ErrEmptyStreamURL
	}

	result, err := fetchJSON[StreamLocation](c, ctx, streamURL)
	if err != nil {
		return "", err
	}

	if result.Data == nil || result.Data.URL == "" {
		return "", ErrEmptyDownloadURL
	}

	return result.Data.URL, nil
}

// GetTrackInfo retrieves track metadata.
// It returns nil without an error when the API has no such track.
func (c *ClientImpl) GetTrackInfo(ctx context.Context, trackID string) (*TrackInfo, error) {
	route, err := url.JoinPath(c.apiBaseURL, apiTracksURI, trackID)
	if err != nil {
		return nil, err
	}

	result, err := fetchJSON[Track](c, ctx, route)
	if err != nil {
		if result != nil && result.StatusCode == http.StatusNotFound {
			return nil, nil //nolint:nilnil // A missing track is not an error.
		}

		return nil, err
	}

	track := result.Data
	if track == nil || (track.ID == 0 && track.Title == "") {
		return nil, nil //nolint:nilnil // A missing track is not an error.
	}

	info := &TrackInfo{
		ID:         trackID,
		Title:      track.Title,
		ArtworkURL: track.ArtworkURL,
		StreamURL:  progressiveStreamURL(track.Media),
	}

	if track.ID != 0 {
		info.ID = strconv.FormatInt(track.ID, 10)
	}

	if track.User != nil {
		info.Artist = track.User.Username
	}

	return info, nil
}

// ResolvePlaylistTrackIDs scrapes a playlist page for its track IDs.
func (c *ClientImpl) ResolvePlaylistTrackIDs(ctx context.Context, playlistURL string) ([]string, error) {
	html, err := c.FetchPage(ctx, playlistURL)
	if err != nil {
		return nil, err
	}

	return ExtractPlaylistTrackIDs(html)
}

// ResolveTrackID scrapes a track page for its API track ID.
func (c *ClientImpl) ResolveTrackID(ctx context.Context, trackURL string) (string, error) {
	html, err := c.FetchPage(ctx, trackURL)
	if err != nil {
		return "", err
	}

	return ExtractTrackID(html)
}

// progressiveStreamURL returns the descriptor URL of the first progressive transcoding.
func progressiveStreamURL(media *Media) string {
	if media == nil {
		return ""
	}

	for _, transcoding := range media.Transcodings {
		if transcoding != nil && strings.HasSuffix(transcoding.URL, progressiveSuffix) {
			return transcoding.URL
		}
	}

	return ""
}

// ArtworkFullSizeURL returns the 500x500 variant of a "large" artwork URL.
func ArtworkFullSizeURL(artworkURL string) string {
	return strings.ReplaceAll(artworkURL, ArtworkLargeSize, ArtworkFullSize)
}
