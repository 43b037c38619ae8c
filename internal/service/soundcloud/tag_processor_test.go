package soundcloud

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oshokin/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/soundcloud-grabber/internal/constants"
)

// TestTagProcessor_WriteTags tests that tags and cover art are written and replaced on rewrite.
func TestTagProcessor_WriteTags(t *testing.T) {
	t.Parallel()

	var (
		ctx       = context.Background()
		processor = NewTagProcessor()
		trackPath = filepath.Join(t.TempDir(), "Song.mp3")
		audio     = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 412)...)
	)

	require.NoError(t, os.WriteFile(trackPath, audio, constants.DefaultFilePermissions))

	req := &WriteTagsRequest{
		TrackPath: trackPath,
		Title:     "Song",
		Artist:    "Artist",
		Album:     "Song",
		Artwork: &Artwork{
			Data:        []byte("jpeg bytes"),
			MimeType:    "image/jpeg",
			Description: "SoundCloud",
		},
	}

	require.NoError(t, processor.WriteTags(ctx, req))

	// A second write must not duplicate the cover.
	req.Title = "Song (Edit)"
	require.NoError(t, processor.WriteTags(ctx, req))

	tag, err := id3v2.Open(trackPath, id3v2.Options{Parse: true})
	require.NoError(t, err)

	defer tag.Close()

	assert.Equal(t, "Song (Edit)", tag.Title())
	assert.Equal(t, "Artist", tag.Artist())
	assert.Equal(t, "Song", tag.Album())

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	require.Len(t, pictures, 1)

	picture, ok := pictures[0].(id3v2.PictureFrame)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", picture.MimeType)
	assert.Equal(t, "SoundCloud", picture.Description)
	assert.Equal(t, byte(id3v2.PTFrontCover), picture.PictureType)
	assert.Equal(t, []byte("jpeg bytes"), picture.Picture)
}

// TestTagProcessor_WriteTags_Errors tests invalid requests.
func TestTagProcessor_WriteTags_Errors(t *testing.T) {
	t.Parallel()

	processor := NewTagProcessor()

	err := processor.WriteTags(context.Background(), &WriteTagsRequest{})
	require.ErrorIs(t, err, ErrEmptyTrackPath)

	err = processor.WriteTags(context.Background(), &WriteTagsRequest{
		TrackPath: filepath.Join(t.TempDir(), "missing.mp3"),
		Title:     "Song",
	})
	require.Error(t, err)
}
