// File: terminal/headless.go
package terminal

import (
	"fmt"
	"io"

	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/render"
)

// HeadlessOptions configures an unattended run.
type HeadlessOptions struct {
	Ticks     int
	Dt        float64
	Cols      int
	Rows      int
	Autopilot bool // launch and track the ball with the paddle
	Color     bool
}

func DefaultHeadlessOptions() HeadlessOptions {
	return HeadlessOptions{Ticks: 3600, Dt: 1.0 / 60, Cols: 80, Rows: 32, Autopilot: true}
}

// RunHeadless steps the game actor with fixed ticks until the game ends or
// the tick budget runs out, then writes the last frame and a summary to w.
// The actor must have been spawned without its own ticker.
func RunHeadless(engine *bollywood.Engine, pid *bollywood.PID, opts HeadlessOptions, w io.Writer) (game.Snapshot, error) {
	c := client{engine: engine, pid: pid}

	snap, err := c.snapshot()
	if err != nil {
		return snap, err
	}
	for i := 0; i < opts.Ticks && !snap.Won && !snap.Lost && !snap.LoadFailed; i++ {
		if opts.Autopilot {
			steer(c, snap)
		}
		c.send(game.TickCommand{Dt: opts.Dt})
		if snap, err = c.snapshot(); err != nil {
			return snap, err
		}
	}

	pixels := render.Rasterize(snap, opts.Cols, opts.Rows)
	frame := render.RenderPlain(pixels)
	if opts.Color {
		frame = render.RenderToASCII(pixels)
	}
	if _, err := io.WriteString(w, frame); err != nil {
		return snap, err
	}
	_, err = fmt.Fprintf(w, "score %d  lives %d  time %.2fs  won %t  lost %t\n",
		snap.Score, snap.Lives, snap.Time, snap.Won, snap.Lost)
	return snap, err
}

// steer launches a held ball or slides the paddle under the lowest falling
// ball.
func steer(c client, snap game.Snapshot) {
	if snap.Paddle.HasStuckBall {
		c.send(game.LaunchCommand{})
		return
	}
	var target *game.Ball
	for i := range snap.Balls {
		b := &snap.Balls[i]
		if b.Velocity.Y <= 0 {
			continue
		}
		if target == nil || b.Position.Y > target.Position.Y {
			target = b
		}
	}
	if target == nil {
		return
	}
	c.send(game.MoveCommand{DX: target.Position.X - snap.Paddle.Rect.Center().X})
}
