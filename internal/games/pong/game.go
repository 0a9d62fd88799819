// Package pong implements Pong against a CPU paddle.
// The player controls the left paddle, the CPU the right one.
package pong

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/registry"
)

// Default game settings
const (
	PaddleSpeed  = 60.0 // Cells per second
	PaddleWidth  = 3
	PaddleHeight = 12
	PaddleOffset = 2 // Distance from edge
	BallSize     = 3
	ServeSpeed   = 40.0
	ServeJitter  = 10
)

// Share of frames on which the CPU paddle reacts, at the easiest and the
// hardest difficulty. Normal sits halfway.
const (
	CPUChanceEasy = 0.5
	CPUChanceHard = 0.9
)

// Colors
const (
	netColor    = core.White
	playerColor = core.Cyan
	cpuColor    = core.Green
	serveColor  = core.DarkBlue
	scoreColor  = core.White
)

type sprite struct {
	body  core.Body
	color core.Attr
}

func (s *sprite) draw(ctx *engine.Context) {
	ctx.FillRect(s.body.Cells(), s.color)
}

// Game implements the Pong game logic.
type Game struct {
	net    sprite
	player sprite
	cpu    sprite
	ball   sprite

	// Ball velocity in cells per second
	ballVX float64
	ballVY float64

	scores [2]int // Player, CPU
	rally  int    // Paddle hits since the last serve

	cpuChance float64
	rng       *rand.Rand
	recorder  registry.Recorder
}

// Option customizes a game.
type Option func(*Game)

// WithRand sets the random source, for reproducible rallies.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// New creates a new Pong game instance.
func New(opts ...Option) *Game {
	g := &Game{}
	g.SetDifficulty(0.5)
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Geometry returns the surface this game is drawn for.
func (g *Game) Geometry() core.Geometry {
	return core.Geometry{Width: 120, Height: 60, FontWidth: 11, FontHeight: 11}
}

// SetRecorder makes every point store a record of the rally length.
func (g *Game) SetRecorder(r registry.Recorder) {
	g.recorder = r
}

// SetDifficulty sets how often the CPU paddle reacts.
func (g *Game) SetDifficulty(level float64) {
	level = core.ClampF(level, 0, 1)
	g.cpuChance = CPUChanceEasy + (CPUChanceHard-CPUChanceEasy)*level
}

// RecordKind describes pong records: hits per rally, more is better.
func (g *Game) RecordKind() registry.RecordKind {
	return registry.RecordKind{Label: "Rally"}
}

// Scores returns the player and CPU scores.
func (g *Game) Scores() (player, cpu int) {
	return g.scores[0], g.scores[1]
}

// OnCreate lays out the court for the canvas size and serves.
func (g *Game) OnCreate(ctx *engine.Context) error {
	w, h := ctx.Width(), ctx.Height()

	g.net = sprite{core.Body{X: middle(w, 1), Y: 0, W: 1, H: h}, netColor}
	g.player = sprite{core.Body{X: PaddleOffset, Y: middle(h, PaddleHeight), W: PaddleWidth, H: PaddleHeight}, playerColor}
	g.cpu = sprite{core.Body{X: float64(w - PaddleWidth - PaddleOffset), Y: middle(h, PaddleHeight), W: PaddleWidth, H: PaddleHeight}, cpuColor}
	g.ball = sprite{core.Body{W: BallSize, H: BallSize}, serveColor}
	g.scores = [2]int{}

	g.serve(w, h)
	return nil
}

// middle returns the start offset that centers size within total.
func middle(total, size int) float64 {
	return float64(total>>1 - size>>1)
}

// serve centers the ball and sends it off in a random diagonal.
func (g *Game) serve(w, h int) {
	g.ball.color = serveColor
	g.ball.body.X = middle(w, BallSize)
	g.ball.body.Y = middle(h, BallSize)
	g.ballVX = g.serveSpeed()
	g.ballVY = g.serveSpeed()
	g.rally = 0
}

func (g *Game) serveSpeed() float64 {
	jitter := float64(g.rng.Intn(ServeJitter))
	if g.rng.Intn(2) == 1 {
		return jitter - ServeSpeed
	}
	return jitter + ServeSpeed
}

// point scores for whoever the ball got past, stores the rally and serves.
func (g *Game) point(w, h int) error {
	if g.ball.body.X < 0 {
		g.scores[1]++
	} else {
		g.scores[0]++
	}

	rally := g.rally
	g.serve(w, h)

	if g.recorder != nil {
		if _, err := g.recorder.SaveRecord(g.ID(), float64(rally)); err != nil {
			return fmt.Errorf("pong: cannot save rally: %w", err)
		}
	}
	return nil
}

// paddleStep returns how far a paddle moves this frame in direction dir
// (-1 up, +1 down), stopping it at the top and bottom edges.
func paddleStep(b core.Body, dir float64, h int, dt float64) float64 {
	if dir < 0 {
		if b.Y <= 0 {
			return -b.Y
		}
		return -PaddleSpeed * dt
	}
	if b.Bottom() >= h {
		return float64(h - b.Bottom())
	}
	return PaddleSpeed * dt
}

// OnUpdate advances the rally and redraws the court.
func (g *Game) OnUpdate(ctx *engine.Context, dt float64) error {
	if ctx.IsPressed(core.KeyEscape) {
		return engine.ErrQuit
	}
	w, h := ctx.Width(), ctx.Height()

	if ctx.IsHeld(core.KeyUp) {
		g.player.body.Move(0, paddleStep(g.player.body, -1, h, dt))
	}
	if ctx.IsHeld(core.KeyDown) {
		g.player.body.Move(0, paddleStep(g.player.body, 1, h, dt))
	}

	if err := g.updateBall(w, h, dt); err != nil {
		return err
	}
	g.updateCPU(h, dt)

	g.draw(ctx)
	return nil
}

// updateBall bounces the ball off the walls and paddles and scores points.
func (g *Game) updateBall(w, h int, dt float64) error {
	ball := &g.ball.body

	if ball.Y <= 0 {
		ball.Y = 0
		g.ballVY = -g.ballVY
	}
	if ball.Bottom() > h {
		ball.Y = float64(h - ball.H)
		g.ballVY = -g.ballVY
	}
	if ball.X < 0 || ball.Right() > w {
		if err := g.point(w, h); err != nil {
			return err
		}
	}

	ball.Move(g.ballVX*dt, g.ballVY*dt)

	if g.hitsPaddle() {
		g.ballVX = -g.ballVX * (1 + g.rng.Float64()/8)
		g.ballVY *= 1 + g.rng.Float64()/8
		if g.ball.color < core.White {
			g.ball.color++
		}
		g.rally++
	}
	return nil
}

// hitsPaddle reports whether the ball touches the paddle it is flying at.
func (g *Game) hitsPaddle() bool {
	ball, cpu, player := g.ball.body, g.cpu.body, g.player.body

	if g.ballVX > 0 {
		return float64(ball.Right()) > cpu.X &&
			float64(ball.Bottom()) >= cpu.Y &&
			ball.Y <= float64(cpu.Bottom())
	}
	if g.ballVX < 0 {
		return ball.X <= float64(player.Right()) &&
			float64(ball.Bottom()) >= player.Y &&
			ball.Y <= float64(player.Bottom())
	}
	return false
}

// updateCPU follows the ball center, but only while the ball is incoming
// and not on every frame.
func (g *Game) updateCPU(h int, dt float64) {
	if g.ballVX <= 0 || g.rng.Float64() >= g.cpuChance {
		return
	}

	ballCenter := g.ball.body.Y + float64(g.ball.body.H>>1)
	paddleCenter := g.cpu.body.Y + float64(g.cpu.body.H>>1)
	switch {
	case ballCenter < paddleCenter:
		g.cpu.body.Move(0, paddleStep(g.cpu.body, -1, h, dt))
	case ballCenter > paddleCenter:
		g.cpu.body.Move(0, paddleStep(g.cpu.body, 1, h, dt))
	}
}

func (g *Game) draw(ctx *engine.Context) {
	ctx.Clear()
	ctx.DrawText(ctx.Width()>>1-4, 1, scoreColor, fmt.Sprintf("%d       %d", g.scores[0], g.scores[1]))
	g.player.draw(ctx)
	g.cpu.draw(ctx)
	g.net.draw(ctx)
	g.ball.draw(ctx)
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
