package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cge/internal/config"
	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/platform/tui"
	"github.com/vovakirdan/cge/internal/registry"
	"github.com/vovakirdan/cge/internal/storage"
)

// session is what every command shares: the loaded config, the logger and
// the records store.
type session struct {
	cfg      config.Config
	logger   *log.Logger
	store    *storage.Store // nil when the database cannot be opened
	closeLog func()
}

// openSession loads the config and opens the logger and the records store.
// Unless requireStore is set, a store that cannot be opened only disables
// records.
func openSession(requireStore bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closeLog: closeLog}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		if requireStore {
			closeLog()
			return nil, fmt.Errorf("cannot open records database: %w", err)
		}
		// Continue without storage - games still work
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		logger.Warn("records disabled", "path", cfg.DBPath, "error", err)
	} else {
		s.store = store
	}
	return s, nil
}

// Close releases the store and the log file.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	s.closeLog()
}

// recorder returns the store as a registry.Recorder, or nil without one.
func (s *session) recorder() registry.Recorder {
	if s.store == nil {
		return nil
	}
	return s.store
}

// records returns the store as a tui.RecordSource, or nil without one.
func (s *session) records() tui.RecordSource {
	if s.store == nil {
		return nil
	}
	return s.store
}

// playOptions are the per-run overrides of the play command.
type playOptions struct {
	Width, Height int
	Headless      bool
	Frames        int // Headless: frames before Escape is held
}

// play runs game id until it quits. A quit requested by the game is not an error.
func (s *session) play(id string, opts playOptions) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	geom := s.cfg.GeometryFor(id, game.Geometry())
	geom = geom.Merge(core.Geometry{Width: opts.Width, Height: opts.Height})

	if r, ok := game.(registry.Recording); ok {
		if rec := s.recorder(); rec != nil {
			r.SetRecorder(rec)
		}
	}
	if a, ok := game.(registry.Adjustable); ok {
		a.SetDifficulty(s.cfg.Difficulty.Level())
	}

	devOpts := device.Options{
		Backend:      s.cfg.Backend,
		HoldWindow:   s.cfg.HoldWindow,
		SetFont:      s.cfg.SetFont,
		ResizeWindow: s.cfg.ResizeWindow,
	}
	if opts.Headless {
		devOpts.Backend = device.BackendMemory
	}
	if devOpts.Backend == device.BackendMemory {
		devOpts.MaxWidth, devOpts.MaxHeight = geom.Width, geom.Height
		devOpts.QuitAfter = opts.Frames
	}
	dev, err := device.New(devOpts)
	if err != nil {
		return err
	}

	logger := s.logger.With("game", id)
	e, err := engine.New(dev, engine.Options{Title: game.Title(), Geometry: geom}, game, engine.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("cannot start %s: %w", id, err)
	}
	defer e.Close()

	err = e.Run()
	if errors.Is(err, engine.ErrQuit) {
		logger.Info("game quit", "frames", e.Frames())
		return nil
	}
	return err
}

// unknownGame builds the error for an unregistered id, with a suggestion
// when one is close enough.
func unknownGame(id string) error {
	if s := registry.Suggest(id); s != "" {
		return fmt.Errorf("unknown game %q, did you mean %q?\nRun 'cge list' to see available games", id, s)
	}
	return fmt.Errorf("unknown game %q\nRun 'cge list' to see available games", id)
}
