// Package lyrics resolves song lyrics from external providers and cleans the
// raw text for embedding.
package lyrics

import (
	"context"
	"errors"
)

// ErrNotFound reports that no provider returned lyrics for any
// title/artist variant.
var ErrNotFound = errors.New("no lyrics found")

// Result is a resolved lyric text and the provider that supplied it.
type Result struct {
	Text   string
	Source string
}

// Query is a single title/artist combination sent to a provider.
type Query struct {
	Title  string
	Artist string
}

// Provider is the interface lyric providers must implement.
// Search returns the lyric text for a title/artist pair, or "" with a nil
// error when the provider has no match. Errors are per-call failures; the
// caller decides whether to move on to the next variant or provider.
type Provider interface {
	Name() string
	Search(ctx context.Context, title, artist string) (string, error)
}
