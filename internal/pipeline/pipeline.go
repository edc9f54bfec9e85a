package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bogem/id3v2/v2"
	"golang.org/x/sync/errgroup"

	"lyricfill/internal/config"
	"lyricfill/internal/logger"
	"lyricfill/internal/lyrics"
	"lyricfill/internal/metadata"
	"lyricfill/internal/provider/genius"
	"lyricfill/internal/provider/lrclib"
	"lyricfill/internal/provider/lyricsovh"
	"lyricfill/pkg/utils"
)

// ErrEmptyAfterCleaning reports that a provider returned lyrics but nothing
// survived cleaning.
var ErrEmptyAfterCleaning = errors.New("lyrics empty after cleaning")

type Hooks struct {
	OnFilesFound func(total int)
	OnProgress   func()
}

// Status classifies what happened to a single file.
type Status int

const (
	StatusWritten Status = iota
	StatusSkipped
	StatusFailed
)

// Outcome is the per-file result. Err is set only for StatusFailed.
type Outcome struct {
	Path   string
	Status Status
	Source string
	Err    error
}

// Stats summarizes a whole run.
type Stats struct {
	Total   int
	Written int
	Skipped int
	Failed  int
}

// Run enriches every MP3 under cfg.Path with lyrics: collect files → open tags →
// resolve lyrics → clean → embed. Per-file failures are counted, not fatal.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, hooks Hooks) (Stats, error) {
	return run(ctx, cfg, log, hooks, newResolver(cfg, log))
}

func newResolver(cfg config.Config, log *logger.Logger) *lyrics.Resolver {
	var primary lyrics.Provider
	if cfg.GeniusToken != "" {
		primary = genius.New(cfg.GeniusToken)
	} else {
		log.Debug("No Genius token configured, using public providers only")
	}
	return lyrics.NewResolver(log, primary, lyricsovh.New(), lrclib.New())
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger, hooks Hooks, resolver *lyrics.Resolver) (Stats, error) {
	files, err := utils.CollectMP3s(cfg.Path)
	if err != nil {
		return Stats{}, err
	}
	if len(files) == 0 {
		log.Info("No MP3 files found in %s", cfg.Path)
		return Stats{}, nil
	}

	stats := Stats{Total: len(files)}
	log.Info("=== Processing %d files (%d workers) ===", len(files), cfg.Workers)
	if hooks.OnFilesFound != nil {
		hooks.OnFilesFound(len(files))
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, file := range files {
		file := file
		// Check if context is cancelled
		select {
		case <-ctx.Done():
			log.Warn("Processing cancelled, waiting for active jobs to finish...")
			g.Wait()
			return stats, fmt.Errorf("run cancelled")
		default:
		}

		g.Go(func() error {
			out := processFile(ctx, cfg, log, resolver, file)

			mu.Lock()
			switch out.Status {
			case StatusWritten:
				stats.Written++
			case StatusSkipped:
				stats.Skipped++
			case StatusFailed:
				stats.Failed++
			}
			mu.Unlock()

			if hooks.OnProgress != nil {
				hooks.OnProgress()
			}
			// Failures stay in the outcome so one bad file never stops the pool.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	log.Info("Processing completed: %d written, %d skipped, %d failed", stats.Written, stats.Skipped, stats.Failed)
	return stats, nil
}

// processFile runs the whole per-file flow: open, skip check, identity read,
// lyric resolution, cleaning, write.
func processFile(ctx context.Context, cfg config.Config, log *logger.Logger, resolver *lyrics.Resolver, path string) Outcome {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		log.Warn("Cannot open %s: %v", path, err)
		return Outcome{Path: path, Status: StatusFailed, Err: fmt.Errorf("open failed: %w", err)}
	}
	defer tag.Close()

	if !cfg.Overwrite && metadata.HasLyrics(tag) {
		log.Info("Existing lyrics in %s, skipping", path)
		return Outcome{Path: path, Status: StatusSkipped}
	}

	id, err := metadata.ReadIdentity(tag)
	if err != nil {
		log.Warn("Missing title/artist metadata in %s", path)
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}

	log.Debug("Searching lyrics for %q by %q", id.Title, id.Artist)

	res, err := resolver.Resolve(ctx, id)
	if err != nil {
		log.Warn("No lyrics found for %q by %q", id.Title, id.Artist)
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}

	cleaned := lyrics.Clean(res.Text)
	if cleaned == "" {
		log.Warn("Lyrics for %q by %q empty after cleaning", id.Title, id.Artist)
		return Outcome{Path: path, Status: StatusFailed, Err: ErrEmptyAfterCleaning}
	}

	metadata.WriteLyrics(tag, cleaned)
	if err := tag.Save(); err != nil {
		log.Warn("Cannot save %s: %v", path, err)
		return Outcome{Path: path, Status: StatusFailed, Err: fmt.Errorf("save failed: %w", err)}
	}

	log.Info("Saved lyrics for %q by %q (source: %s)", id.Title, id.Artist, res.Source)
	return Outcome{Path: path, Status: StatusWritten, Source: res.Source}
}
