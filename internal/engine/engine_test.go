package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
)

// stubClient runs hooks supplied by the test and counts calls.
type stubClient struct {
	create  func(ctx *Context) error
	update  func(ctx *Context, dt float64) error
	creates int
	updates int
	dts     []float64
}

func (c *stubClient) OnCreate(ctx *Context) error {
	c.creates++
	if c.create != nil {
		return c.create(ctx)
	}
	return nil
}

func (c *stubClient) OnUpdate(ctx *Context, dt float64) error {
	c.updates++
	c.dts = append(c.dts, dt)
	if c.update != nil {
		return c.update(ctx, dt)
	}
	return nil
}

// failOn returns an update hook that fails on the n-th call.
func failOn(n int, err error) func(*Context, float64) error {
	calls := 0
	return func(*Context, float64) error {
		calls++
		if calls == n {
			return err
		}
		return nil
	}
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

var smallGeometry = core.Geometry{Width: 8, Height: 4, FontWidth: 8, FontHeight: 8}

func TestNewRejectsGeometryAboveMaximum(t *testing.T) {
	dev := device.NewMemory(80, 25)
	client := &stubClient{}

	_, err := New(dev, Options{Title: "T", Geometry: core.Geometry{Width: 81, Height: 10, FontWidth: 8, FontHeight: 8}}, client)

	var initErr *InitializationError
	if !errors.As(err, &initErr) {
		t.Fatalf("New() error = %v, expected *InitializationError", err)
	}
	if !errors.Is(err, device.ErrGeometry) {
		t.Errorf("error %v should wrap device.ErrGeometry", err)
	}
	if client.creates != 0 || client.updates != 0 {
		t.Errorf("hooks called: creates=%d updates=%d", client.creates, client.updates)
	}
	if dev.Writes() != 0 {
		t.Errorf("Writes() = %d, expected none", dev.Writes())
	}
	if !dev.Closed() {
		t.Error("device should be closed after a rejected geometry")
	}
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		geom core.Geometry
	}{
		{"zero width", core.Geometry{Width: 0, Height: 10, FontWidth: 8, FontHeight: 8}},
		{"negative height", core.Geometry{Width: 10, Height: -1, FontWidth: 8, FontHeight: 8}},
		{"zero font", core.Geometry{Width: 10, Height: 10, FontWidth: 0, FontHeight: 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev := device.NewMemory(80, 25)
			_, err := New(dev, Options{Title: "T", Geometry: tc.geom}, &stubClient{})

			var initErr *InitializationError
			if !errors.As(err, &initErr) {
				t.Fatalf("New() error = %v, expected *InitializationError", err)
			}
			if initErr.Op != "geometry" {
				t.Errorf("Op = %q, expected geometry", initErr.Op)
			}
			if dev.Opened() {
				t.Error("device should not be opened for an invalid geometry")
			}
		})
	}
}

func TestNewOpenFailure(t *testing.T) {
	dev := device.NewMemory(80, 25)
	dev.FailOpen(device.ErrNotTerminal)

	_, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, &stubClient{})

	var initErr *InitializationError
	if !errors.As(err, &initErr) || initErr.Op != "open" {
		t.Fatalf("New() error = %v, expected open InitializationError", err)
	}
	if !errors.Is(err, device.ErrNotTerminal) {
		t.Errorf("error %v should wrap ErrNotTerminal", err)
	}
}

func TestNewCreateFailure(t *testing.T) {
	dev := device.NewMemory(80, 25)
	boom := errors.New("no assets")
	client := &stubClient{create: func(*Context) error { return boom }}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client)

	if e != nil {
		t.Error("New() should not return an engine when OnCreate fails")
	}
	var initErr *InitializationError
	if !errors.As(err, &initErr) || initErr.Op != "create" {
		t.Fatalf("New() error = %v, expected create InitializationError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v should wrap the client error", err)
	}
	if client.updates != 0 || dev.Writes() != 0 {
		t.Errorf("no frame should run: updates=%d writes=%d", client.updates, dev.Writes())
	}
	if !dev.Closed() {
		t.Error("device should be closed after OnCreate fails")
	}
}

func TestNewConfiguresDevice(t *testing.T) {
	dev := device.NewMemory(80, 25)
	geom := core.Geometry{Width: 64, Height: 20, FontWidth: 3, FontHeight: 3}

	e, err := New(dev, Options{Title: "Game", Geometry: geom}, &stubClient{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if diff := cmp.Diff(device.Config{Title: "Game", Geometry: geom}, dev.Config()); diff != "" {
		t.Errorf("device config mismatch (-want +got):\n%s", diff)
	}
	if e.State() != StateReady {
		t.Errorf("State() = %v, expected Ready", e.State())
	}
	if e.Context().Width() != 64 || e.Context().Height() != 20 {
		t.Errorf("canvas = %dx%d, expected 64x20", e.Context().Width(), e.Context().Height())
	}
}

func TestRunStopsOnUpdateError(t *testing.T) {
	dev := device.NewMemory(80, 25)
	boom := errors.New("game over")
	client := &stubClient{update: failOn(5, boom)}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = e.Run()

	var updErr *UpdateError
	if !errors.As(err, &updErr) {
		t.Fatalf("Run() error = %v, expected *UpdateError", err)
	}
	if updErr.Frame != 5 {
		t.Errorf("Frame = %d, expected 5", updErr.Frame)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v should wrap the client error", err)
	}
	if dev.Writes() != 4 {
		t.Errorf("Writes() = %d, expected 4", dev.Writes())
	}
	if e.State() != StateTerminated {
		t.Errorf("State() = %v, expected Terminated", e.State())
	}
	if e.Frames() != 5 {
		t.Errorf("Frames() = %d, expected 5", e.Frames())
	}
}

func TestRunQuit(t *testing.T) {
	dev := device.NewMemory(80, 25)
	dev.QuitAfter(3)
	client := &stubClient{update: func(ctx *Context, _ float64) error {
		if ctx.IsPressed(core.KeyEscape) {
			return ErrQuit
		}
		return nil
	}}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = e.Run()
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, expected ErrQuit", err)
	}
	if dev.Writes() != 3 {
		t.Errorf("Writes() = %d, expected 3", dev.Writes())
	}
}

func TestRunIgnoresFlushFailure(t *testing.T) {
	dev := device.NewMemory(80, 25)
	dev.FailWrites(errors.New("broken pipe"))
	client := &stubClient{update: failOn(3, ErrQuit)}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = e.Run()

	var updErr *UpdateError
	if !errors.As(err, &updErr) || updErr.Frame != 3 {
		t.Fatalf("Run() error = %v, expected UpdateError on frame 3", err)
	}
	if dev.Writes() != 2 {
		t.Errorf("Writes() = %d, expected 2 attempted flushes", dev.Writes())
	}
}

func TestRunDeltaTimeAndTitle(t *testing.T) {
	dev := device.NewMemory(80, 25)
	var titles []string
	client := &stubClient{update: func(ctx *Context, _ float64) error {
		titles = append(titles, dev.Title())
		if len(titles) == 2 {
			return ErrQuit
		}
		return nil
	}}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client, WithClock(stepClock(10*time.Millisecond)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Run()

	for i, dt := range client.dts {
		if math.Abs(dt-0.01) > 1e-9 {
			t.Errorf("dt[%d] = %v, expected 0.01", i, dt)
		}
	}
	if diff := cmp.Diff([]string{"T - FPS: 100.00", "T - FPS: 100.00"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRunZeroDeltaTime(t *testing.T) {
	dev := device.NewMemory(80, 25)
	var title string
	client := &stubClient{update: func(ctx *Context, dt float64) error {
		title = dev.Title()
		return ErrQuit
	}}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client, WithClock(stepClock(0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Run()

	if client.dts[0] != 0 {
		t.Errorf("dt = %v, expected 0", client.dts[0])
	}
	if title != "T - FPS: +Inf" {
		t.Errorf("title = %q, expected +Inf FPS", title)
	}
}

func TestRunTitleFollowsClient(t *testing.T) {
	dev := device.NewMemory(80, 25)
	client := &stubClient{update: func(ctx *Context, _ float64) error {
		if ctx.Title() == "Pong" {
			return ErrQuit
		}
		ctx.SetTitle("Pong")
		return nil
	}}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client, WithClock(stepClock(time.Second)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Run()

	if got := dev.Title(); got != "Pong - FPS: 1.00" {
		t.Errorf("Title() = %q, expected Pong - FPS: 1.00", got)
	}
}

func TestRunFlushesDrawnFrame(t *testing.T) {
	dev := device.NewMemory(80, 25)
	geom := core.Geometry{Width: 3, Height: 2, FontWidth: 8, FontHeight: 8}
	red := core.NewAttr(core.Red, core.Black)
	client := &stubClient{}
	client.update = func(ctx *Context, _ float64) error {
		if client.updates > 1 {
			return ErrQuit
		}
		ctx.SetPixel(1, 0, red)
		ctx.DrawText(0, 1, core.White, "ok")
		return nil
	}

	e, err := New(dev, Options{Title: "T", Geometry: geom}, client)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Run()

	expected := []core.Cell{
		{}, {Glyph: core.BlockGlyph, Attr: red}, {},
		{Glyph: 'o', Attr: core.White}, {Glyph: 'k', Attr: core.White}, {},
	}
	if diff := cmp.Diff(expected, dev.Frame()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRequiresReady(t *testing.T) {
	dev := device.NewMemory(80, 25)
	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, &stubClient{update: failOn(1, ErrQuit)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Run()

	if err := e.Run(); !errors.Is(err, ErrNotReady) {
		t.Errorf("second Run() error = %v, expected ErrNotReady", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUninitialized: "Uninitialized",
		StateReady:         "Ready",
		StateRunning:       "Running",
		StateTerminated:    "Terminated",
		State(42):          "Unknown",
	}
	for s, expected := range tests {
		if got := s.String(); got != expected {
			t.Errorf("State(%d).String() = %q, expected %q", int(s), got, expected)
		}
	}
}

func TestStep(t *testing.T) {
	dev := device.NewMemory(80, 25)
	client := &stubClient{update: failOn(3, ErrQuit)}

	e, err := New(dev, Options{Title: "T", Geometry: smallGeometry}, client)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range 2 {
		if err := e.Step(0.5); err != nil {
			t.Fatalf("Step() #%d error = %v", i+1, err)
		}
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v, expected Running", e.State())
	}
	if err := e.Step(0.5); !errors.Is(err, ErrQuit) {
		t.Fatalf("third Step() error = %v, expected ErrQuit", err)
	}
	if err := e.Step(0.5); !errors.Is(err, ErrNotReady) {
		t.Errorf("Step() after termination error = %v, expected ErrNotReady", err)
	}

	if diff := cmp.Diff([]float64{0.5, 0.5, 0.5}, client.dts); diff != "" {
		t.Errorf("dts mismatch (-want +got):\n%s", diff)
	}
	if dev.Writes() != 2 {
		t.Errorf("Writes() = %d, expected 2", dev.Writes())
	}
}
