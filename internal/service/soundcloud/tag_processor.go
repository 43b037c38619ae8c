package soundcloud

import (
	"context"
	"errors"

	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to an MP3 file.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// Title is written as the title frame.
	Title string
	// Artist is written as the lead artist frame.
	Artist string
	// Album is written as the album frame.
	Album string
	// Artwork is embedded as the front cover when set.
	Artwork *Artwork
}

// Artwork is an image to embed into the tags.
type Artwork struct {
	// Data contains the raw image bytes.
	Data []byte
	// MimeType specifies the image format (e.g., "image/jpeg").
	MimeType string
	// Description is stored in the picture frame.
	Description string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// Static error definitions for better error handling.
var (
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes ID3v2 title, artist, album and cover art to the track.
// Existing frames are parsed and replaced, so the file never carries two tags.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	//nolint:exhaustruct // ParseFrames omitted to parse every frame.
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}

	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(req.Title)
	tag.SetArtist(req.Artist)
	tag.SetAlbum(req.Album)

	if req.Artwork != nil && len(req.Artwork.Data) > 0 {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    req.Artwork.MimeType,
			PictureType: id3v2.PTFrontCover,
			Description: req.Artwork.Description,
			Picture:     req.Artwork.Data,
		})
	}

	logger.Debugf(ctx, "Writing tags to %s", req.TrackPath)

	return tag.Save()
}
