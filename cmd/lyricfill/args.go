package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"lyricfill/internal/config"
)

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > environment > config file > defaults
func parseArgs() (config.Config, string, error) {
	args := os.Args[1:]

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// A .env next to the invocation dir may carry GENIUS_ACCESS_TOKEN.
	_ = godotenv.Load()
	config.ApplyEnv(&cfg)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--overwrite", "-o":
			cfg.Overwrite = true

		case "--token", "-t":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--token requires a token argument")
			}
			i++
			cfg.GeniusToken = args[i]

		case "--workers", "-j":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--workers requires a number argument")
			}
			i++
			var workers int
			if _, err := fmt.Sscanf(args[i], "%d", &workers); err != nil {
				return config.Config{}, "", fmt.Errorf("invalid workers value: %s", args[i])
			}
			cfg.Workers = workers

		case "--log-level", "-l":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--log-level requires a level argument")
			}
			i++
			cfg.LogLevel = args[i]

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, "", fmt.Errorf("unknown flag: %s", arg)
			}
			cfg.Path = arg
		}
	}

	return cfg, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  genius_token: Genius API access token")
	fmt.Println("  overwrite: true/false (replace lyrics already embedded)")
	fmt.Println("  workers: 1-16 (number of parallel workers)")
	fmt.Println("  log_level: DEBUG, INFO, WARN, ERROR")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("lyricfill - Embed song lyrics into MP3 files")
	fmt.Println()
	fmt.Println("Usage: lyricfill [options] <file-or-directory>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -t, --token <token>        Genius API access token")
	fmt.Println("  -o, --overwrite            Replace lyrics already embedded in files")
	fmt.Println("  -j, --workers <n>          Number of parallel workers (1-16, default: 4)")
	fmt.Println("  -l, --log-level <level>    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./lyricfill.yaml")
	fmt.Println("  ~/.config/lyricfill/config.yaml")
	fmt.Println("  ~/.lyricfill.yaml")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GENIUS_ACCESS_TOKEN        Genius API token (-t takes precedence)")
	fmt.Println("  Without a token only the public providers (lyrics.ovh, lrclib) are used.")
	fmt.Println("  A .env file in the working directory is loaded if present.")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: Progress bar shown, detailed logs saved to:")
	fmt.Println("    ~/.local/share/lyricfill/logs/")
	fmt.Println("  Debug mode (-l DEBUG): All output to stdout, no progress bar, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Enrich every MP3 under a music folder")
	fmt.Println("  lyricfill ~/Music")
	fmt.Println()
	fmt.Println("  # Single file with an explicit Genius token")
	fmt.Println("  lyricfill -t abc123 song.mp3")
	fmt.Println()
	fmt.Println("  # Replace existing lyrics using 8 workers")
	fmt.Println("  lyricfill -o -j 8 ~/Music")
	fmt.Println()
	fmt.Println("  # Create a config file to persist settings")
	fmt.Println("  lyricfill --init-config")
}
