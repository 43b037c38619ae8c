package soundcloud

import (
	"context"
	"regexp"
	"strings"

	"github.com/oshokin/soundcloud-grabber/internal/constants"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

// URLProcessor defines the interface for processing URLs and extracting downloadable items.
type URLProcessor interface {
	// ExtractDownloadItems flattens URL list files, drops duplicates and classifies every URL.
	ExtractDownloadItems(ctx context.Context, urls []string) (*ExtractDownloadItemsResponse, error)
}

// ExtractDownloadItemsResponse represents the result of processing URLs.
type ExtractDownloadItemsResponse struct {
	// Items contains the classified tracks and playlists in input order.
	Items []*DownloadItem
	// Unparsed contains the URLs that are neither tracks nor playlists.
	Unparsed []string
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct{}

// categoriesByPatterns maps URL patterns to download categories.
// The playlist pattern goes first: it is the more specific one.
//
//nolint:gochecknoglobals // Immutable, pre-compiled patterns.
var categoriesByPatterns = []struct {
	// Pattern is the regex pattern to match URLs.
	Pattern *regexp.Regexp
	// Category is the download category for matched URLs.
	Category DownloadCategory
}{
	{regexp.MustCompile(`^https://(?:www\.|m\.)?soundcloud\.com/[^/]+/sets/(?P<name>[^/]+)$`), DownloadCategoryPlaylist},
	{regexp.MustCompile(`^https://(?:www\.|m\.)?soundcloud\.com/[^/]+/(?P<name>[^/]+)$`), DownloadCategoryTrack},
}

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	return &URLProcessorImpl{}
}

// ClassifyURL determines whether rawURL is a track or a playlist page and extracts its slug.
// A query string or fragment is ignored. It returns nil for any other URL.
func ClassifyURL(rawURL string) *URLInfo {
	rawURL = strings.TrimSpace(rawURL)
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		rawURL = rawURL[:idx]
	}

	for _, p := range categoriesByPatterns {
		if name := utils.ExtractNamedGroup(p.Pattern, "name", rawURL); name != "" {
			return &URLInfo{Kind: p.Category, Name: name}
		}
	}

	return nil
}

// ExtractDownloadItems flattens URL list files, drops duplicates and classifies every URL.
func (up *URLProcessorImpl) ExtractDownloadItems(
	ctx context.Context,
	urls []string,
) (*ExtractDownloadItemsResponse, error) {
	urls, err := up.processAndFlattenURLs(urls)
	if err != nil {
		return nil, err
	}

	result := &ExtractDownloadItemsResponse{
		Items: make([]*DownloadItem, 0, len(urls)),
	}

	for _, url := range urls {
		info := ClassifyURL(url)
		if info == nil {
			result.Unparsed = append(result.Unparsed, url)

			continue
		}

		logger.Debugf(ctx, "Classified %s as %s %s", url, info.Kind, info.Name)

		result.Items = append(result.Items, &DownloadItem{
			Category: info.Kind,
			URL:      url,
			Name:     info.Name,
		})
	}

	return result, nil
}

// processAndFlattenURLs replaces every .txt argument with the URLs it lists.
func (up *URLProcessorImpl) processAndFlattenURLs(urls []string) ([]string, error) {
	var (
		processedSet       = make(map[string]struct{})
		processedTextFiles = make(map[string]struct{})
		processedURLs      []string
	)

	addURL := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}

		if _, ok := processedSet[url]; ok {
			return
		}

		processedSet[url] = struct{}{}

		processedURLs = append(processedURLs, url)
	}

	for _, url := range urls {
		if !strings.HasSuffix(strings.ToLower(url), constants.ExtensionTXT) {
			addURL(url)

			continue
		}

		if _, exists := processedTextFiles[url]; exists {
			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(url)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			addURL(line)
		}

		processedTextFiles[url] = struct{}{}
	}

	return processedURLs, nil
}
