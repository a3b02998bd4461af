package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

// boardOverrides holds rule flags that take precedence over the config file.
// Zero values leave the file's settings alone.
type boardOverrides struct {
	difficulty string
	width      int
	height     int
	win        int
}

// loadRules reads the rules YAML and applies the difficulty and board flags.
func loadRules(o boardOverrides) (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(o.difficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyT2048Preset(&cfg, preset)

	if o.width > 0 {
		cfg.Board.Width = o.width
	}
	if o.height > 0 {
		cfg.Board.Height = o.height
	}
	if o.win > 0 {
		cfg.Board.WinValue = o.win
	}

	return cfg, cfg.Validate()
}

// configureGames hands the rules and logger to every board created afterwards.
func configureGames(cfg config.T2048Config, logger *log.Logger) {
	opts := cfg.Options()
	opts.Logger = logger
	t2048.Configure(opts)
}

// resolveBoard maps a board name or game ID to a registered game ID.
func resolveBoard(name string) (string, error) {
	if registry.Exists(name) {
		return name, nil
	}
	id, err := config.BoardPresetID(name)
	if err != nil {
		return "", fmt.Errorf("%w\nRun 'tilemerge list' to see available boards", err)
	}
	return id, nil
}

// openLogFile returns a debug logger writing to --log-file, or a discarding
// logger when the flag is unset. The TUI owns the terminal, so logs never go
// to stderr while it runs.
func openLogFile() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "tilemerge",
	})
	return logger, func() { f.Close() }
}
