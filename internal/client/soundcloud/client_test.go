package soundcloud

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/soundcloud-grabber/internal/config"
)

const testClientID = "AbCdEfGhIjKlMnOpQrStUvWxYz012345"

// newTestClient starts a server with the given handler and returns a client pointed at it
// for both the API and the site.
func newTestClient(t *testing.T, handler http.Handler) (*ClientImpl, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ClientID:    testClientID,
		APIBaseURL:  server.URL,
		SiteBaseURL: server.URL,
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	impl, ok := client.(*ClientImpl)
	require.True(t, ok)

	return impl, server
}

// TestNewClient tests the NewClient function.
func TestNewClient(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{ClientID: testClientID}
	config.SetServiceURLs(cfg)

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Implements(t, (*Client)(nil), client)

	_, err = NewClient(&config.Config{APIBaseURL: "://bad"})
	require.Error(t, err)
}

// TestClient_GetTrackInfo tests the GetTrackInfo method.
func TestClient_GetTrackInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		expected    *TrackInfo
		expectError bool
	}{
		{
			name:   "progressive transcoding selected",
			status: http.StatusOK,
			body: `{
				"id": 123456789,
				"title": "My Song",
				"artwork_url": "https://i1.sndcdn.com/artworks-abc-large.jpg",
				"user": {"id": 1, "username": "Some Artist"},
				"media": {"transcodings": [
					{"url": "https://api-v2.soundcloud.com/media/soundcloud:tracks:123456789/x/stream/hls", "format": {"protocol": "hls"}},
					{"url": "https://api-v2.soundcloud.com/media/soundcloud:tracks:123456789/x/stream/progressive", "format": {"protocol": "progressive"}},
					{"url": "https://api-v2.soundcloud.com/media/soundcloud:tracks:123456789/y/stream/progressive"}
				]}
			}`,
			expected: &TrackInfo{
				ID:         "123456789",
				Title:      "My Song",
				Artist:     "Some Artist",
				ArtworkURL: "https://i1.sndcdn.com/artworks-abc-large.jpg",
				StreamURL:  "https://api-v2.soundcloud.com/media/soundcloud:tracks:123456789/x/stream/progressive",
			},
		},
		{
			name:   "no progressive transcoding",
			status: http.StatusOK,
			body: `{"id": 123456789, "title": "HLS only", "user": {"username": "A"},
				"media": {"transcodings": [{"url": "https://api-v2.soundcloud.com/media/x/stream/hls"}]}}`,
			expected: &TrackInfo{ID: "123456789", Title: "HLS only", Artist: "A"},
		},
		{
			name:   "empty object",
			status: http.StatusOK,
			body:   `{}`,
		},
		{
			name:   "null body",
			status: http.StatusOK,
			body:   `null`,
		},
		{
			name:   "empty body",
			status: http.StatusOK,
			body:   ``,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"errors":[]}`,
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			expectError: true,
		},
		{
			name:        "malformed json",
			status:      http.StatusOK,
			body:        `{"id":`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/tracks/123456789", r.URL.Path)
				assert.Equal(t, testClientID, r.URL.Query().Get("client_id"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			info, err := client.GetTrackInfo(context.Background(), "123456789")

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, info)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, info)
		})
	}
}

// TestClient_GetDownloadURL tests the GetDownloadURL method.
func TestClient_GetDownloadURL(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testClientID, r.URL.Query().Get("client_id"))

		switch r.URL.Path {
		case "/media/ok/stream/progressive":
			// Parameters already present on the descriptor URL are kept.
			assert.Equal(t, "abc", r.URL.Query().Get("track_authorization"))
			_, _ = w.Write([]byte(`{"url":"https://cf-media.sndcdn.com/file.128.mp3?Policy=x"}`))
		case "/media/empty/stream/progressive":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))

	ctx := context.Background()

	downloadURL, err := client.GetDownloadURL(ctx, server.URL+"/media/ok/stream/progressive?track_authorization=abc")
	require.NoError(t, err)
	assert.Equal(t, "https://cf-media.sndcdn.com/file.128.mp3?Policy=x", downloadURL)

	_, err = client.GetDownloadURL(ctx, server.URL+"/media/empty/stream/progressive")
	require.ErrorIs(t, err, ErrEmptyDownloadURL)

	_, err = client.GetDownloadURL(ctx, server.URL+"/media/forbidden/stream/progressive")
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)

	_, err = client.GetDownloadURL(ctx, "")
	require.ErrorIs(t, err, ErrEmptyStreamURL)
}

// TestClient_ResolveTrackID tests the ResolveTrackID method.
func TestClient_ResolveTrackID(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/track-name":
			_, _ = w.Write([]byte(`<html><meta content="https://api.soundcloud.com/tracks/123456789"></html>`))
		case "/user/changed":
			_, _ = w.Write([]byte(`<html></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	id, err := client.ResolveTrackID(ctx, server.URL+"/user/track-name")
	require.NoError(t, err)
	assert.Equal(t, "123456789", id)

	_, err = client.ResolveTrackID(ctx, server.URL+"/user/changed")
	require.ErrorIs(t, err, ErrTrackIDNotFound)

	_, err = client.ResolveTrackID(ctx, server.URL+"/user/missing")
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)
}

// TestClient_ResolvePlaylistTrackIDs tests the ResolvePlaylistTrackIDs method.
func TestClient_ResolvePlaylistTrackIDs(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":[{"id":100001},{"id":100002},{"id":100001},{"id":100003}]}`))
	}))

	ids, err := client.ResolvePlaylistTrackIDs(context.Background(), server.URL+"/user/sets/mix")
	require.NoError(t, err)
	assert.Equal(t, []string{"100001", "100002", "100003"}, ids)
}

// TestClient_DownloadFromURL tests the DownloadFromURL method.
func TestClient_DownloadFromURL(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("ID3", 100)

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file.mp3" {
			w.WriteHeader(http.StatusGone)

			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte(payload))
	}))

	result, err := client.DownloadFromURL(context.Background(), server.URL+"/file.mp3")
	require.NoError(t, err)

	defer result.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
	assert.Equal(t, int64(len(payload)), result.TotalBytes)

	_, err = client.DownloadFromURL(context.Background(), server.URL+"/expired.mp3") //nolint:bodyclose // Nil on error.
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)
}

// TestClient_GetArtwork tests that artwork is fetched once and then served from cache.
func TestClient_GetArtwork(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))

	artworkURL := server.URL + "/artworks-abc-t500x500.jpg"

	for range 3 {
		data, err := client.GetArtwork(context.Background(), artworkURL)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data)
	}

	assert.Equal(t, int32(1), requests.Load())
}

// TestClient_DiscoverClientID tests client ID discovery from asset scripts.
func TestClient_DiscoverClientID(t *testing.T) {
	t.Parallel()

	var assetRequests atomic.Int32

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`<html>
<script crossorigin src="/assets/0-first.js"></script>
<script crossorigin src="/assets/1-broken.js"></script>
<script crossorigin src="/assets/2-last.js"></script>
</html>`))
		case "/assets/2-last.js":
			assetRequests.Add(1)
			_, _ = w.Write([]byte(`var a = 1;`))
		case "/assets/1-broken.js":
			assetRequests.Add(1)
			w.WriteHeader(http.StatusNotFound)
		case "/assets/0-first.js":
			assetRequests.Add(1)
			_, _ = w.Write([]byte(`n.exports={client_id:"` + testClientID + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	clientID, err := client.DiscoverClientID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testClientID, clientID)
	assert.Equal(t, int32(3), assetRequests.Load())
}

// TestClient_DiscoverClientID_NotFound tests discovery when no script holds an ID.
func TestClient_DiscoverClientID_NotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(`<script src="/assets/app.js"></script>`))

			return
		}

		_, _ = w.Write([]byte(`console.log("no id here")`))
	}))

	_, err := client.DiscoverClientID(context.Background())
	require.ErrorIs(t, err, ErrClientIDNotFound)
}

// TestClient_DefaultHeaders tests the default headers sent to SoundCloud.
func TestClient_DefaultHeaders(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, strings.TrimSuffix(r.Host, "/"), strings.TrimPrefix(r.Header.Get("Origin"), "http://"))
		_, _ = w.Write([]byte(`<html></html>`))
	}))

	_, err := client.FetchPage(context.Background(), server.URL+"/user/track")
	require.NoError(t, err)
}

// TestArtworkFullSizeURL tests the ArtworkFullSizeURL function.
func TestArtworkFullSizeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://i1.sndcdn.com/artworks-abc-t500x500.jpg",
		ArtworkFullSizeURL("https://i1.sndcdn.com/artworks-abc-large.jpg"))
	assert.Equal(t, "", ArtworkFullSizeURL(""))
}
