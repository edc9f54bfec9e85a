package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lyricfill/internal/config"
	"lyricfill/internal/logger"
	"lyricfill/internal/pipeline"
	"lyricfill/internal/progress"
	"lyricfill/internal/shutdown"
)

func main() {
	cfg, configPath, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
	verbose := level == logger.LevelDebug

	sh := shutdown.New()
	sh.Listen()

	log := logger.New(level)
	defer log.Close()

	if !verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("lyricfill_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if verbose && configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	if err := run(sh, cfg, log, verbose); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, log *logger.Logger, verbose bool) error {
	var bar *progress.Bar
	hooks := pipeline.Hooks{
		OnFilesFound: func(total int) {
			if !verbose {
				b := progress.New(total)
				log.SetProgressBar(true)
				// Leave the terminal on a fresh line if the run is
				// interrupted mid-bar. AddCleanup hands the bar to the
				// signal goroutine under the handler's lock.
				sh.AddCleanup(b.Finish)
				bar = b
			}
		},
		OnProgress: func() {
			if bar != nil {
				bar.Increment()
			}
		},
	}

	stats, err := pipeline.Run(sh.Context(), cfg, log, hooks)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if err != nil {
		return err
	}

	if stats.Failed > 0 {
		log.Warn("%d of %d files could not be enriched", stats.Failed, stats.Total)
	}

	log.Info("=== Process completed ===")
	return nil
}
