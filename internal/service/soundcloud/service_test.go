package soundcloud

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	mock_soundcloud_client "github.com/oshokin/soundcloud-grabber/internal/client/soundcloud/mocks"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/constants"
)

// TestNewService tests the NewService function.
func TestNewService(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := NewService(
		&config.Config{OutputPath: t.TempDir()},
		mock_soundcloud_client.NewMockClient(ctrl),
		NewURLProcessor(),
		NewTagProcessor(),
	)

	assert.NotNil(t, service)
	assert.Implements(t, (*Service)(nil), service)
}

// TestServiceImpl_DownloadURLs_Track tests a single track download from page URL to log entry.
func TestServiceImpl_DownloadURLs_Track(t *testing.T) {
	t.Parallel()

	var (
		setup       = newTestDownloadSetup(t)
		ctx         = context.Background()
		pageURL     = "https://soundcloud.com/user/track-name"
		streamURL   = "https://api-v2.soundcloud.com/media/soundcloud:tracks:123456789/abc/stream/progressive"
		downloadURL = "https://cf-media.sndcdn.com/abc.128.mp3?Policy=xyz"
		payload     = []byte("ID3 fake mp3 payload")
		artwork     = []byte("jpeg bytes")
	)

	gomock.InOrder(
		setup.mockClient.EXPECT().ResolveTrackID(gomock.Any(), pageURL).Return("123456789", nil),
		setup.mockClient.EXPECT().GetTrackInfo(gomock.Any(), "123456789").Return(&soundcloud.TrackInfo{
			ID:         "123456789",
			Title:      "Song",
			Artist:     "Artist",
			ArtworkURL: "https://i1.sndcdn.com/artworks-000-large.jpg",
			StreamURL:  streamURL,
		}, nil),
		setup.mockClient.EXPECT().GetDownloadURL(gomock.Any(), streamURL).Return(downloadURL, nil),
		setup.mockClient.EXPECT().DownloadFromURL(gomock.Any(), downloadURL).Return(newFetchResult(payload), nil),
		setup.mockClient.EXPECT().
			GetArtwork(gomock.Any(), "https://i1.sndcdn.com/artworks-000-t500x500.jpg").
			Return(artwork, nil),
	)

	setup.service.DownloadURLs(ctx, []string{pageURL})

	trackPath := filepath.Join(setup.tempDir, "Song.mp3")

	saved, err := os.ReadFile(trackPath) //nolint:gosec // Test file.
	require.NoError(t, err)
	assert.Equal(t, payload, saved)

	requests := setup.tags.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, trackPath, requests[0].TrackPath)
	assert.Equal(t, "Song", requests[0].Title)
	assert.Equal(t, "Artist", requests[0].Artist)
	assert.Equal(t, "Song", requests[0].Album)
	require.NotNil(t, requests[0].Artwork)
	assert.Equal(t, artwork, requests[0].Artwork.Data)
	assert.Equal(t, "image/jpeg", requests[0].Artwork.MimeType)
	assert.Equal(t, "SoundCloud", requests[0].Artwork.Description)

	rawLog, err := os.ReadFile(filepath.Join(setup.tempDir, constants.DownloadLogFilename)) //nolint:gosec // Test file.
	require.NoError(t, err)

	var entries map[string]*LogEntry
	require.NoError(t, json.Unmarshal(rawLog, &entries))
	require.Contains(t, entries, "123456789")
	assert.Equal(t, &LogEntry{
		TrackID:     "123456789",
		Title:       "Song",
		Artist:      "Artist",
		DownloadURL: downloadURL,
		Path:        trackPath,
	}, entries["123456789"])

	stats := setup.service.Statistics()
	assert.Equal(t, int64(1), stats.TracksDownloaded)
	assert.Equal(t, int64(len(payload)), stats.TotalBytesDownloaded)
	assert.Empty(t, stats.Errors)
	assert.False(t, stats.EndTime.Before(stats.StartTime))
}

// TestServiceImpl_DownloadURLs_UnparsableURL tests that unparsable URLs have no side effects.
func TestServiceImpl_DownloadURLs_UnparsableURL(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "not-created")
	setup := newTestDownloadSetup(t, func(cfg *config.Config) { cfg.OutputPath = outputPath })

	setup.service.DownloadURLs(context.Background(), []string{
		"https://soundcloud.com/user",
		"https://example.com/user/track",
	})

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))

	stats := setup.service.Statistics()
	require.Len(t, stats.Errors, 2)
	assert.Equal(t, phaseParsingURL, stats.Errors[0].Phase)
	assert.Equal(t, DownloadCategoryUnknown, stats.Errors[0].Category)
	assert.Equal(t, "https://soundcloud.com/user", stats.Errors[0].ItemURL)
	assert.Equal(t, ErrUnparsableURL.Error(), stats.Errors[0].ErrorMessage)
	assert.Zero(t, stats.TotalTracksProcessed)
}

// TestServiceImpl_DownloadURLs_ResolveError tests that a failed ID scrape fails the track only.
func TestServiceImpl_DownloadURLs_ResolveError(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	pageURL := "https://soundcloud.com/user/gone"

	setup.mockClient.EXPECT().
		ResolveTrackID(gomock.Any(), pageURL).
		Return("", soundcloud.ErrTrackIDNotFound)

	setup.service.DownloadURLs(context.Background(), []string{pageURL})

	stats := setup.service.Statistics()
	assert.Equal(t, int64(1), stats.TracksFailed)
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, phaseResolvingTrackID, stats.Errors[0].Phase)
	assert.Equal(t, pageURL, stats.Errors[0].ItemURL)

	// The log is written even when nothing was downloaded.
	_, err := os.Stat(filepath.Join(setup.tempDir, constants.DownloadLogFilename))
	require.NoError(t, err)
}

// TestServiceImpl_DownloadURLs_SecondRunSkips tests that a second run reuses the log.
func TestServiceImpl_DownloadURLs_SecondRunSkips(t *testing.T) {
	t.Parallel()

	var (
		setup   = newTestDownloadSetup(t)
		ctx     = context.Background()
		pageURL = "https://soundcloud.com/user/song"
		info    = newTrackInfo("42", "Song")
	)

	setup.mockClient.EXPECT().ResolveTrackID(gomock.Any(), pageURL).Return("42", nil).Times(2)
	setup.mockClient.EXPECT().GetTrackInfo(gomock.Any(), "42").Return(info, nil).Times(1)
	setup.mockClient.EXPECT().GetDownloadURL(gomock.Any(), info.StreamURL).Return("https://cdn/42.mp3", nil).Times(1)
	setup.mockClient.EXPECT().
		DownloadFromURL(gomock.Any(), "https://cdn/42.mp3").
		Return(newFetchResult([]byte("audio")), nil).
		Times(1)

	setup.service.DownloadURLs(ctx, []string{pageURL})

	second, ok := NewService(setup.config, setup.mockClient, NewURLProcessor(), setup.tags).(*ServiceImpl)
	require.True(t, ok)

	second.DownloadURLs(ctx, []string{pageURL})

	stats := second.Statistics()
	assert.Equal(t, int64(1), stats.TracksSkippedExists)
	assert.Zero(t, stats.TracksDownloaded)
}

// TestServiceImpl_DownloadURLs_Canceled tests that a canceled run still saves the log.
func TestServiceImpl_DownloadURLs_Canceled(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	setup.service.DownloadURLs(ctx, []string{"https://soundcloud.com/user/sets/mix"})

	_, err := os.Stat(filepath.Join(setup.tempDir, constants.DownloadLogFilename))
	require.NoError(t, err)
	assert.Zero(t, setup.service.Statistics().TotalTracksProcessed)
}

// TestServiceImpl_DownloadURLs_CorruptLog tests that a corrupt log aborts the run untouched.
func TestServiceImpl_DownloadURLs_CorruptLog(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	logPath := filepath.Join(setup.tempDir, constants.DownloadLogFilename)
	require.NoError(t, os.WriteFile(logPath, []byte("{not json"), constants.DefaultFilePermissions))

	setup.service.DownloadURLs(context.Background(), []string{"https://soundcloud.com/user/song"})

	content, err := os.ReadFile(logPath) //nolint:gosec // Test file.
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(content))

	stats := setup.service.Statistics()
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, phaseLoadingLog, stats.Errors[0].Phase)
}
