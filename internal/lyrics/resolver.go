package lyrics

import (
	"context"

	"lyricfill/internal/logger"
	"lyricfill/internal/metadata"
)

// Resolver queries lyric providers in priority order, trying every
// title/artist variant of a track against each before moving on.
type Resolver struct {
	providers []Provider
	logger    *logger.Logger
}

// NewResolver builds a resolver over providers in priority order. Nil
// entries are skipped, so an optional credentialed provider can be passed
// unconditionally.
func NewResolver(log *logger.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		logger:    log,
	}
}

// Variants expands a track identity into the title/artist combinations to
// try, most specific first. The primary pair always comes first; alternate
// pairs are appended only when the alternate fields are present.
func Variants(id metadata.TrackIdentity) []Query {
	variants := []Query{{Title: id.Title, Artist: id.Artist}}
	if id.AltArtist != "" {
		variants = append(variants, Query{Title: id.Title, Artist: id.AltArtist})
	}
	if id.AltTitle != "" {
		variants = append(variants, Query{Title: id.AltTitle, Artist: id.Artist})
	}
	if id.AltTitle != "" && id.AltArtist != "" {
		variants = append(variants, Query{Title: id.AltTitle, Artist: id.AltArtist})
	}
	return variants
}

// Resolve returns the first non-empty lyric text found, trying all variants
// against each provider in turn. Provider errors are logged and treated as
// misses so a flaky provider cannot sink the whole lookup.
func (r *Resolver) Resolve(ctx context.Context, id metadata.TrackIdentity) (Result, error) {
	variants := Variants(id)

	for _, p := range r.providers {
		if res, ok := r.search(ctx, p, variants); ok {
			return res, nil
		}
	}
	return Result{}, ErrNotFound
}

func (r *Resolver) search(ctx context.Context, p Provider, variants []Query) (Result, bool) {
	if p == nil {
		return Result{}, false
	}
	for _, q := range variants {
		text, err := p.Search(ctx, q.Title, q.Artist)
		if err != nil {
			r.logger.Debug("%s lookup failed for %q by %q: %v", p.Name(), q.Title, q.Artist, err)
			continue
		}
		if text != "" {
			return Result{Text: text, Source: p.Name()}, true
		}
	}
	return Result{}, false
}
