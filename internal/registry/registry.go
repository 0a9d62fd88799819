// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the CLI and the
// menu to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agext/levenshtein"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/engine"
)

// Game is an engine client that can describe itself.
type Game interface {
	engine.Client

	// ID returns a unique identifier for this game (e.g., "pong").
	// Used for CLI commands and record storage.
	ID() string

	// Title returns a human-readable name, used as the window title.
	Title() string

	// Geometry returns the surface the game was designed for.
	Geometry() core.Geometry
}

// Recorder stores a game result. storage.Store satisfies it.
type Recorder interface {
	SaveRecord(gameID string, value float64) (int64, error)
}

// RecordKind describes what a game records.
type RecordKind struct {
	Label         string // Column header, e.g. "Rally"
	Unit          string // Suffix when printing a value, e.g. "s"
	LowerIsBetter bool
}

// Recording is implemented by games that store records while they run.
type Recording interface {
	SetRecorder(r Recorder)
	RecordKind() RecordKind
}

// Adjustable is implemented by games with a difficulty setting.
type Adjustable interface {
	// SetDifficulty takes a level from 0.0 (easy) to 1.0 (hard).
	SetDifficulty(level float64)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID       string
	Title    string
	Geometry core.Geometry
	Records  *RecordKind // nil for games that record nothing
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Metadata comes from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title(), Geometry: g.Geometry()}
	if r, ok := g.(Recording); ok {
		kind := r.RecordKind()
		info.Records = &kind
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// maxSuggestDistance bounds how far a typo may be from a real ID.
const maxSuggestDistance = 3

// Suggest returns the registered ID closest to id by edit distance, or ""
// when nothing is close enough.
func Suggest(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	id = strings.ToLower(strings.TrimSpace(id))
	best, bestDist := "", maxSuggestDistance+1
	for candidate := range factories {
		d := levenshtein.Distance(id, candidate, nil)
		if d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	return best
}
