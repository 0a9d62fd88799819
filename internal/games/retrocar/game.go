// Package retrocar implements a pseudo-3D racer: a curving road drawn one
// row at a time with perspective, hills that scroll with the bends, and a
// car that must hold the road through the corners.
package retrocar

import (
	"fmt"
	"math"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/registry"
)

// Handling
const (
	Acceleration = 2.0  // Speed gained per second with Up held
	Deceleration = 1.0  // Speed lost per second otherwise
	SteerRate    = 0.7  // Curvature per second from Left/Right
	MaxSpeed     = 1.0  // Speed is a fraction of TopSpeed
	TopSpeed     = 70.0 // Track distance per second at full speed
	OffTrack     = 0.8  // Curvature difference that counts as off the road
	OffTrackDrag = 0.8  // Speed multiplier per frame off the road
)

// Colors
const (
	skyHigh    = core.DarkBlue
	skyLow     = core.Blue
	hillColor  = core.DarkYellow
	grassDark  = core.DarkGreen
	grassLight = core.Green
	curbRed    = core.DarkRed
	curbWhite  = core.White
	roadColor  = core.DarkGray
	startColor = core.White
	carColor   = core.Cyan
	hudColor   = core.White | core.DarkBlue<<4
)

// carRowMargin places the car sprite's top row this far above the bottom.
const carRowMargin = 20

// Game implements the racer.
type Game struct {
	distance        float64 // Along the lap
	speed           float64 // 0..MaxSpeed
	curvature       float64 // Of the road right ahead, eased toward the section
	trackCurvature  float64 // Accumulated bend, scrolls the hills
	playerCurvature float64 // Accumulated steering
	lapLength       float64
	section         int

	lapTime float64
	laps    int
	pose    int

	recorder registry.Recorder
}

// New creates a new racer instance.
func New() *Game {
	return &Game{lapLength: trackLength(track)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "retrocar"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "RetroCar"
}

// Geometry returns the surface this game is drawn for.
func (g *Game) Geometry() core.Geometry {
	return core.Geometry{Width: 160, Height: 100, FontWidth: 3, FontHeight: 3}
}

// SetRecorder makes every completed lap store its time.
func (g *Game) SetRecorder(r registry.Recorder) {
	g.recorder = r
}

// RecordKind describes retrocar records: lap times, less is better.
func (g *Game) RecordKind() registry.RecordKind {
	return registry.RecordKind{Label: "Lap", Unit: "s", LowerIsBetter: true}
}

// Laps returns the number of completed laps.
func (g *Game) Laps() int {
	return g.laps
}

// OnCreate puts the car on the start line.
func (g *Game) OnCreate(ctx *engine.Context) error {
	*g = Game{lapLength: trackLength(track), recorder: g.recorder}
	return nil
}

// OnUpdate drives the car one frame and redraws the scene.
func (g *Game) OnUpdate(ctx *engine.Context, dt float64) error {
	if ctx.IsPressed(core.KeyEscape) {
		return engine.ErrQuit
	}

	if err := g.drive(ctx, dt); err != nil {
		return err
	}

	g.drawSky(ctx)
	g.drawHills(ctx)
	g.drawRoad(ctx)
	g.drawCar(ctx)
	ctx.DrawText(1, 1, hudColor, fmt.Sprintf("LAP %d %5.1fs", g.laps+1, g.lapTime))
	return nil
}

// drive applies the controls and advances the car along the track.
func (g *Game) drive(ctx *engine.Context, dt float64) error {
	if ctx.IsHeld(core.KeyUp) {
		g.speed += Acceleration * dt
	} else {
		g.speed -= Deceleration * dt
	}

	g.pose = poseStraight
	if ctx.IsHeld(core.KeyLeft) {
		g.pose = poseLeft
		g.playerCurvature -= SteerRate * dt
	}
	if ctx.IsHeld(core.KeyRight) {
		g.pose = poseRight
		g.playerCurvature += SteerRate * dt
	}

	if math.Abs(g.playerCurvature-g.trackCurvature) >= OffTrack {
		g.speed *= OffTrackDrag
	}
	g.speed = core.ClampF(g.speed, 0, MaxSpeed)

	g.distance += TopSpeed * g.speed * dt
	g.lapTime += dt

	if g.distance >= g.lapLength {
		g.distance -= g.lapLength
		if err := g.finishLap(); err != nil {
			return err
		}
	}

	g.section = sectionAt(track, g.distance)
	target := track[g.section].curvature
	g.curvature += (target - g.curvature) * dt * g.speed
	g.trackCurvature += g.curvature * dt * g.speed
	return nil
}

func (g *Game) finishLap() error {
	lap := g.lapTime
	g.laps++
	g.lapTime = 0

	if g.recorder != nil {
		if _, err := g.recorder.SaveRecord(g.ID(), lap); err != nil {
			return fmt.Errorf("retrocar: cannot save lap time: %w", err)
		}
	}
	return nil
}

func (g *Game) drawSky(ctx *engine.Context) {
	w, h := ctx.Width(), ctx.Height()
	for y := range h >> 1 {
		color := skyLow
		if y < h>>2 {
			color = skyHigh
		}
		for x := range w {
			ctx.SetPixel(x, y, color)
		}
	}
}

func (g *Game) drawHills(ctx *engine.Context) {
	w, horizon := ctx.Width(), ctx.Height()>>1
	for x := range w {
		hill := int(math.Abs(math.Sin(float64(x)*0.01+g.trackCurvature) * 16))
		for y := horizon - hill; y < horizon; y++ {
			ctx.SetPixel(x, y, hillColor)
		}
	}
}

// drawRoad fills the lower half row by row. Rows nearer the bottom are
// closer: the road widens and the bend pulls its middle less.
func (g *Game) drawRoad(ctx *engine.Context) {
	w, h := ctx.Width(), ctx.Height()
	fw := float64(w)
	horizon := h >> 1

	road := roadColor
	if g.section == 0 {
		road = startColor
	}

	for y := range horizon {
		perspective := float64(y) / (float64(h) / 2)
		far := 1 - perspective

		middle := 0.5 + g.curvature*far*far*far
		half := (0.1 + perspective*0.8) * 0.5
		curb := half * 2 * 0.15

		leftGrass := (middle - half - curb) * fw
		leftCurb := (middle - half) * fw
		rightCurb := (middle + half) * fw
		rightGrass := (middle + half + curb) * fw

		grass := grassLight
		if math.Sin(20*far*far*far+g.distance*0.1) > 0 {
			grass = grassDark
		}
		curbColor := curbWhite
		if math.Sin(80*far*far+g.distance) > 0 {
			curbColor = curbRed
		}

		row := horizon + y
		for x := range w {
			fx := float64(x)
			switch {
			case fx < leftGrass:
				ctx.SetPixel(x, row, grass)
			case fx < leftCurb:
				ctx.SetPixel(x, row, curbColor)
			case fx < rightCurb:
				ctx.SetPixel(x, row, road)
			case fx < rightGrass:
				ctx.SetPixel(x, row, curbColor)
			default:
				ctx.SetPixel(x, row, grass)
			}
		}
	}
}

// carX returns the left column of the car sprite.
func (g *Game) carX(w int) int {
	offset := g.playerCurvature - g.trackCurvature
	return int(float64(w>>1) + float64(int(float64(w)*offset))/2 - carWidth/2)
}

func (g *Game) drawCar(ctx *engine.Context) {
	x0 := g.carX(ctx.Width())
	y0 := ctx.Height() - carRowMargin
	for cy := range carHeight {
		bits := carSprite[g.pose+cy]
		for cx := range carWidth {
			if bits>>cx&1 == 0 {
				continue
			}
			ctx.SetPixel(x0+cx, y0+cy, carColor)
		}
	}
}

// Register the game with the registry
func init() {
	registry.Register("retrocar", func() registry.Game {
		return New()
	})
}
