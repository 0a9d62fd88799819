package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/engine"
)

type fakeGame struct {
	id, title string
}

func (g fakeGame) OnCreate(*engine.Context) error          { return nil }
func (g fakeGame) OnUpdate(*engine.Context, float64) error { return nil }
func (g fakeGame) ID() string                              { return g.id }
func (g fakeGame) Title() string                           { return g.title }
func (g fakeGame) Geometry() core.Geometry {
	return core.Geometry{Width: 10, Height: 5, FontWidth: 8, FontHeight: 8}
}

// withGames swaps in a fresh registry for the duration of a test.
func withGames(t *testing.T, ids ...string) {
	t.Helper()
	mu.Lock()
	savedF, savedI := factories, infos
	factories = make(map[string]Factory)
	infos = make(map[string]GameInfo)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		factories, infos = savedF, savedI
		mu.Unlock()
	})

	for _, id := range ids {
		Register(id, func() Game { return fakeGame{id: id, title: "Title " + id} })
	}
}

func TestList(t *testing.T) {
	withGames(t, "pong", "pixel", "retrocar")

	geom := core.Geometry{Width: 10, Height: 5, FontWidth: 8, FontHeight: 8}
	expected := []GameInfo{
		{ID: "pixel", Title: "Title pixel", Geometry: geom},
		{ID: "pong", Title: "Title pong", Geometry: geom},
		{ID: "retrocar", Title: "Title retrocar", Geometry: geom},
	}
	if diff := cmp.Diff(expected, List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate(t *testing.T) {
	withGames(t, "pong")

	g, err := Create("pong")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "pong" {
		t.Errorf("ID() = %q, expected pong", g.ID())
	}

	if _, err := Create("tetris"); err == nil {
		t.Error("Create() should fail for an unknown id")
	}
}

func TestExists(t *testing.T) {
	withGames(t, "pong")

	if !Exists("pong") {
		t.Error("Exists(pong) = false")
	}
	if Exists("Pong") {
		t.Error("ids are case-sensitive")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withGames(t, "pong")

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register("pong", func() Game { return fakeGame{id: "pong"} })
}

func TestSuggest(t *testing.T) {
	withGames(t, "pong", "pixel", "retrocar")

	tests := []struct {
		input    string
		expected string
	}{
		{"png", "pong"},
		{"PONG", "pong"},
		{"retrocr", "retrocar"},
		{"pixle", "pixel"},
		{"minesweeper", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := Suggest(tc.input); got != tc.expected {
				t.Errorf("Suggest(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

type recordingGame struct {
	fakeGame
	recorder Recorder
}

func (g *recordingGame) SetRecorder(r Recorder) { g.recorder = r }

func (g *recordingGame) RecordKind() RecordKind {
	return RecordKind{Label: "Lap", Unit: "s", LowerIsBetter: true}
}

func TestInfoRecords(t *testing.T) {
	withGames(t, "pixel")
	Register("retrocar", func() Game { return &recordingGame{fakeGame: fakeGame{id: "retrocar"}} })

	info, ok := Info("retrocar")
	if !ok {
		t.Fatal("Info(retrocar) not found")
	}
	if diff := cmp.Diff(&RecordKind{Label: "Lap", Unit: "s", LowerIsBetter: true}, info.Records); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	plain, _ := Info("pixel")
	if plain.Records != nil {
		t.Errorf("pixel should record nothing, got %+v", plain.Records)
	}

	if _, ok := Info("tetris"); ok {
		t.Error("Info() should miss unknown ids")
	}
}
