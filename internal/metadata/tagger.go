package metadata

import (
	"github.com/bogem/id3v2/v2"
)

// usltID returns the unsynchronised lyrics frame ID for the tag's ID3 version.
func usltID(tag *id3v2.Tag) string {
	return tag.CommonID("Unsynchronised lyrics/text transcription")
}

// HasLyrics reports whether the tag already carries an unsynchronised lyrics
// frame. A frame in any language, with any descriptor, counts.
func HasLyrics(tag *id3v2.Tag) bool {
	return len(tag.GetFrames(usltID(tag))) > 0
}

// WriteLyrics replaces the tag's unsynchronised lyrics with the given text.
// The frame is written UTF-8 encoded with language "eng" and an empty
// descriptor. Every other frame is left untouched; the caller saves the tag.
func WriteLyrics(tag *id3v2.Tag, text string) {
	tag.DeleteFrames(usltID(tag))
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "eng",
		ContentDescriptor: "",
		Lyrics:            text,
	})
}

// Lyrics returns the text of the tag's first unsynchronised lyrics frame,
// or "" when none is present.
func Lyrics(tag *id3v2.Tag) string {
	frames := tag.GetFrames(usltID(tag))
	if len(frames) == 0 {
		return ""
	}
	uslf, ok := frames[0].(id3v2.UnsynchronisedLyricsFrame)
	if !ok {
		return ""
	}
	return uslf.Lyrics
}
