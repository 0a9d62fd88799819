// cge runs cell-grid console games in the terminal.
//
// Usage:
//
//	cge list               - List available games
//	cge play <game>        - Play a game
//	cge menu               - Pick games from an interactive menu
//	cge scores <game>      - Show the best records of a game
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.cge/config.yaml, ./configs/cge.yaml)
//	--backend <name>  - Terminal backend: ansi, tcell, memory
//	--db <path>       - Records database (default: ~/.cge/records.db)
//	--log <path>      - Log file (default: none)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cge/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/cge/internal/games/pixel"
	_ "github.com/vovakirdan/cge/internal/games/pong"
	_ "github.com/vovakirdan/cge/internal/games/retrocar"
)

var (
	// Global flags
	flagConfig     string
	flagBackend    string
	flagDBPath     string
	flagLogFile    string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cge",
	Short: "cge - cell-grid games in your terminal",
	Long: `cge is a console game engine: games draw into a grid of colored cells
and read the keyboard once per frame.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View the best records of a game

Examples:
  cge list
  cge play pong
  cge play retrocar --backend tcell
  cge menu
  cge scores retrocar`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Terminal backend: ansi, tcell, memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagDifficulty != "" {
		cfg.Difficulty = config.Difficulty(flagDifficulty)
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

// newLogger opens the configured log file. The terminal belongs to the game
// while it runs, so without a file logs are discarded. The returned func
// closes the file.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeLog := func() {}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cge",
	})
	logger.SetLevel(cfg.Level())
	return logger, closeLog, nil
}
