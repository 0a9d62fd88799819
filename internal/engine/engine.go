// Package engine runs the frame loop: it owns the surface and the input
// tracker, measures delta time and calls the client's two hooks.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
)

// Client is the game driven by the engine.
type Client interface {
	// OnCreate is called once, after the surface is ready and before the
	// first frame. An error aborts construction.
	OnCreate(ctx *Context) error

	// OnUpdate is called every frame with the seconds elapsed since the
	// previous frame began. An error ends the loop.
	OnUpdate(ctx *Context, dt float64) error
}

// Context is what a client sees of the engine: the canvas, the input
// predicates and the window title.
type Context struct {
	*Canvas
	input  *InputTracker
	engine *Engine
}

// IsPressed reports whether k went down this frame.
func (c *Context) IsPressed(k core.KeyCode) bool {
	return c.input.IsPressed(k)
}

// IsHeld reports whether k is down and was down last frame.
func (c *Context) IsHeld(k core.KeyCode) bool {
	return c.input.IsHeld(k)
}

// IsReleased reports whether k went up this frame.
func (c *Context) IsReleased(k core.KeyCode) bool {
	return c.input.IsReleased(k)
}

// Title returns the base window title.
func (c *Context) Title() string {
	return c.engine.title
}

// SetTitle changes the base window title; the FPS suffix is added each frame.
func (c *Context) SetTitle(title string) {
	c.engine.title = title
}

// State is the lifecycle state of an engine.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateRunning
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Options are the construction parameters of an engine.
type Options struct {
	Title    string
	Geometry core.Geometry
}

// Option customizes an engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for delta time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine owns the surface and the input tracker for its whole lifetime.
type Engine struct {
	title   string
	device  device.Device
	surface *Surface
	input   *InputTracker
	ctx     *Context
	client  Client

	state  State
	frames int
	last   time.Time
	now    func() time.Time
	logger *log.Logger
}

// New configures the device, validates the geometry against the device
// maximum and calls client.OnCreate. Any failure is an *InitializationError
// and leaves the device closed.
func New(dev device.Device, opts Options, client Client, options ...Option) (*Engine, error) {
	e := &Engine{
		title:  opts.Title,
		device: dev,
		client: client,
		state:  StateUninitialized,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		opt(e)
	}

	e.surface = NewSurface(dev)
	if err := e.surface.Initialize(opts.Geometry, opts.Title); err != nil {
		e.logger.Error("surface rejected", "geometry", opts.Geometry, "error", err)
		return nil, err
	}
	e.input = NewInputTracker(dev)
	e.ctx = &Context{Canvas: NewCanvas(e.surface), input: e.input, engine: e}

	if err := client.OnCreate(e.ctx); err != nil {
		e.surface.Close()
		e.logger.Error("client create failed", "error", err)
		return nil, &InitializationError{Op: "create", Err: err}
	}

	e.state = StateReady
	e.logger.Info("engine ready", "title", opts.Title, "geometry", opts.Geometry, "face", opts.Geometry.FaceName())
	return e, nil
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Frames returns the number of frames started by Run.
func (e *Engine) Frames() int {
	return e.frames
}

// Context returns the client context, the same one passed to the hooks.
func (e *Engine) Context() *Context {
	return e.ctx
}

// Run loops until the client's OnUpdate fails, then returns an *UpdateError.
// A failed flush is ignored and the next frame starts as usual.
func (e *Engine) Run() error {
	if e.state != StateReady {
		return fmt.Errorf("%w: state %s", ErrNotReady, e.state)
	}
	e.state = StateRunning
	e.last = e.now()

	for {
		now := e.now()
		dt := now.Sub(e.last).Seconds()
		e.last = now

		if err := e.frame(dt); err != nil {
			return err
		}
	}
}

// Step runs a single frame with the given delta time instead of a measured
// one. Headless drivers and tests use it to advance a client deterministically.
func (e *Engine) Step(dt float64) error {
	if e.state != StateReady && e.state != StateRunning {
		return fmt.Errorf("%w: state %s", ErrNotReady, e.state)
	}
	e.state = StateRunning
	return e.frame(dt)
}

func (e *Engine) frame(dt float64) error {
	e.frames++
	e.input.Poll()

	// dt can be zero on a coarse clock; the title then shows +Inf.
	e.device.SetTitle(fmt.Sprintf("%s - FPS: %.2f", e.title, 1/dt))

	if err := e.client.OnUpdate(e.ctx, dt); err != nil {
		e.state = StateTerminated
		e.logger.Error("client update failed", "frame", e.frames, "error", err)
		return &UpdateError{Frame: e.frames, Err: err}
	}

	if err := e.surface.Flush(); err != nil {
		e.logger.Debug("flush failed", "frame", e.frames, "error", err)
	}
	return nil
}

// Close releases the device.
func (e *Engine) Close() error {
	return e.surface.Close()
}
