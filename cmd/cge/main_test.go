package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cge/internal/config"
	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/platform/tui"
	"github.com/vovakirdan/cge/internal/registry"
	"github.com/vovakirdan/cge/internal/storage"
)

var errCrashed = errors.New("crashed")

// crashingGame fails on its third update.
type crashingGame struct{ updates int }

func (g *crashingGame) ID() string    { return "crashing" }
func (g *crashingGame) Title() string { return "Crashing" }
func (g *crashingGame) Geometry() core.Geometry {
	return core.Geometry{Width: 8, Height: 4, FontWidth: 8, FontHeight: 8}
}
func (g *crashingGame) OnCreate(*engine.Context) error { return nil }

func (g *crashingGame) OnUpdate(*engine.Context, float64) error {
	g.updates++
	if g.updates == 3 {
		return errCrashed
	}
	return nil
}

func init() {
	registry.Register("crashing", func() registry.Game { return &crashingGame{} })
}

// scriptedScreens replays menu results and counts the screens shown.
type scriptedScreens struct {
	results     []tui.MenuResult
	menus       int
	scoreboards int
	goBack      bool
}

func (s *scriptedScreens) Menu() (tui.MenuResult, error) {
	s.menus++
	if len(s.results) == 0 {
		return tui.MenuResult{Quit: true}, nil
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r, nil
}

func (s *scriptedScreens) Scoreboard() (bool, error) {
	s.scoreboards++
	return s.goBack, nil
}

func newTestSession(t *testing.T) *session {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	s := &session{
		cfg:      config.Default(),
		logger:   log.New(io.Discard),
		store:    store,
		closeLog: func() {},
	}
	t.Cleanup(s.Close)
	return s
}

func TestPlayHeadless(t *testing.T) {
	for _, id := range []string{"pixel", "pong", "retrocar"} {
		t.Run(id, func(t *testing.T) {
			s := newTestSession(t)
			if err := s.play(id, playOptions{Headless: true, Frames: 3}); err != nil {
				t.Errorf("play(%s) = %v, want nil after quit", id, err)
			}
		})
	}
}

func TestPlayHeadlessOverridesSize(t *testing.T) {
	s := newTestSession(t)
	if err := s.play("pixel", playOptions{Width: 80, Height: 40, Headless: true, Frames: 1}); err != nil {
		t.Errorf("play = %v", err)
	}
}

func TestPlayUnknownBackend(t *testing.T) {
	s := newTestSession(t)
	s.cfg.Backend = "vga"
	if err := s.play("pixel", playOptions{}); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestUnknownGame(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"png", `did you mean "pong"?`},
		{"retrocr", `did you mean "retrocar"?`},
		{"tetris", "Run 'cge list'"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := unknownGame(tt.id).Error(); !strings.Contains(got, tt.want) {
				t.Errorf("unknownGame(%q) = %q, want it to contain %q", tt.id, got, tt.want)
			}
		})
	}
	if got := unknownGame("tetris").Error(); strings.Contains(got, "did you mean") {
		t.Errorf("unexpected suggestion: %q", got)
	}
}

func TestListShowsGames(t *testing.T) {
	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	t.Cleanup(func() { listCmd.SetOut(nil) })

	runList(listCmd, nil)

	out := buf.String()
	for _, want := range []string{"pixel", "Pong", "retrocar", "64x32"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionRecords(t *testing.T) {
	s := newTestSession(t)
	if s.records() == nil || s.recorder() == nil {
		t.Error("session with a store should expose it")
	}
	s.store.Close()
	s.store = nil
	if s.records() != nil || s.recorder() != nil {
		t.Error("session without a store should return nil interfaces")
	}
}

func TestMenuLoopStopsOnFailedGame(t *testing.T) {
	s := newTestSession(t)
	s.cfg.Backend = device.BackendMemory
	screens := &scriptedScreens{results: []tui.MenuResult{{GameID: "crashing"}, {GameID: "pixel"}}}

	err := s.menuLoop(screens)

	var updateErr *engine.UpdateError
	if !errors.As(err, &updateErr) {
		t.Fatalf("menuLoop = %v, want an *engine.UpdateError", err)
	}
	if !errors.Is(err, errCrashed) || updateErr.Frame != 3 {
		t.Errorf("error = %v, want %v on frame 3", err, errCrashed)
	}
	if screens.menus != 1 {
		t.Errorf("menu shown %d times, want 1: a failed game ends the loop", screens.menus)
	}
}

func TestMenuLoopScoreboardGoesBack(t *testing.T) {
	s := newTestSession(t)
	screens := &scriptedScreens{results: []tui.MenuResult{{WantsScoreboard: true}}, goBack: true}

	if err := s.menuLoop(screens); err != nil {
		t.Fatalf("menuLoop = %v", err)
	}
	if screens.menus != 2 || screens.scoreboards != 1 {
		t.Errorf("menus=%d scoreboards=%d, want 2 and 1", screens.menus, screens.scoreboards)
	}
}
