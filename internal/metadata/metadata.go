package metadata

import (
	"errors"

	"github.com/bogem/id3v2/v2"
)

// TrackIdentity holds the title/artist values used to query lyric providers.
// The Alt fields carry the album-level tags (TALB, TPE2) when present; they
// widen the search with extra title/artist combinations for files whose
// primary tags don't match what the providers index.
type TrackIdentity struct {
	Title     string
	Artist    string
	AltTitle  string
	AltArtist string
}

// ErrMissingMetadata reports a file with no usable title or artist tags.
var ErrMissingMetadata = errors.New("missing title/artist metadata")

// ReadIdentity extracts the search identity from a parsed tag.
// The title prefers TIT2 and falls back to TALB; the artist prefers TPE1 and
// falls back to TPE2. Files missing both halves of either pair can't be
// searched and yield ErrMissingMetadata.
func ReadIdentity(tag *id3v2.Tag) (TrackIdentity, error) {
	id := TrackIdentity{
		Title:     tag.Title(),
		Artist:    tag.Artist(),
		AltTitle:  tag.Album(),
		AltArtist: tag.GetTextFrame("TPE2").Text,
	}

	if id.Title == "" {
		id.Title = id.AltTitle
	}
	if id.Artist == "" {
		id.Artist = id.AltArtist
	}

	if id.Title == "" || id.Artist == "" {
		return TrackIdentity{}, ErrMissingMetadata
	}

	return id, nil
}
