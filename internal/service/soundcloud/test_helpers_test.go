package soundcloud

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/soundcloud-grabber/internal/client/soundcloud"
	mock_soundcloud_client "github.com/oshokin/soundcloud-grabber/internal/client/soundcloud/mocks"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/constants"
)

// recordingTagProcessor remembers every tag request and returns err.
type recordingTagProcessor struct {
	mutex    sync.Mutex
	requests []*WriteTagsRequest
	err      error
}

func (p *recordingTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.requests = append(p.requests, req)

	return p.err
}

func (p *recordingTagProcessor) recorded() []*WriteTagsRequest {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return append([]*WriteTagsRequest(nil), p.requests...)
}

// testDownloadSetup encapsulates common test dependencies and configuration.
type testDownloadSetup struct {
	mockClient *mock_soundcloud_client.MockClient
	tags       *recordingTagProcessor
	service    *ServiceImpl
	config     *config.Config
	tempDir    string
}

// newTestDownloadSetup creates a standard test setup with optional config overrides.
func newTestDownloadSetup(t *testing.T, configOverrides ...func(*config.Config)) *testDownloadSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	cfg := &config.Config{
		ClientID:               "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
		OutputPath:             tempDir,
		MaxConcurrentDownloads: 2,
	}

	for _, override := range configOverrides {
		override(cfg)
	}

	var (
		mockClient = mock_soundcloud_client.NewMockClient(ctrl)
		tags       = new(recordingTagProcessor)
	)

	service, ok := NewService(cfg, mockClient, NewURLProcessor(), tags).(*ServiceImpl)
	require.True(t, ok)

	return &testDownloadSetup{
		mockClient: mockClient,
		tags:       tags,
		service:    service,
		config:     cfg,
		tempDir:    tempDir,
	}
}

// loadLog attaches the download log of the temp dir to the service, as DownloadURLs does.
func (s *testDownloadSetup) loadLog(t *testing.T) *DownloadLog {
	t.Helper()

	log, err := LoadDownloadLog(filepath.Join(s.tempDir, constants.DownloadLogFilename))
	require.NoError(t, err)

	s.service.downloadLog = log

	return log
}

// newFetchResult wraps data as an open payload response.
func newFetchResult(data []byte) *soundcloud.FetchResult {
	return &soundcloud.FetchResult{
		Body:       io.NopCloser(bytes.NewReader(data)),
		TotalBytes: int64(len(data)),
	}
}

// newTrackInfo returns downloadable metadata for trackID.
func newTrackInfo(trackID, title string) *soundcloud.TrackInfo {
	return &soundcloud.TrackInfo{
		ID:         trackID,
		Title:      title,
		Artist:     "Artist",
		ArtworkURL: "",
		StreamURL:  "https://api-v2.soundcloud.com/media/soundcloud:tracks:" + trackID + "/abc/stream/progressive",
	}
}
