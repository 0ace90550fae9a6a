// File: game/paddle.go
package game

import (
	"math"

	"github.com/lguibr/brickbreaker/utils"
)

type Paddle struct {
	Position  utils.Vector2 `json:"position"` // Center of the top edge
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Sticky    int           `json:"sticky"`   // Active sticky powerup count
	AimAngle  float64       `json:"aimAngle"` // Launch angle from vertical, radians
	StuckBall *Ball         `json:"-"`

	stuckRatio     float64 // Stuck ball offset from center as a fraction of width
	caughtBySticky bool
	ultrawide      bool
	transition     float64 // 0 default width, 1 ultrawide

	cfg utils.Config
}

func NewPaddle(cfg utils.Config) *Paddle {
	p := &Paddle{
		Position: utils.NewVector2(float64(cfg.CanvasWidth)/2, float64(cfg.CanvasHeight)-cfg.PaddleBottomOffset),
		Width:    cfg.PaddleWidth,
		Height:   cfg.PaddleHeight,
		cfg:      cfg,
	}
	return p
}

func (p *Paddle) Rect() Rect {
	half := p.Width / 2
	return Rect{
		Min: utils.NewVector2(p.Position.X-half, p.Position.Y),
		Max: utils.NewVector2(p.Position.X+half, p.Position.Y+p.Height),
	}
}

// SetStuckBall attaches ball on top of the paddle, centered or at its current
// horizontal offset.
func (p *Paddle) SetStuckBall(ball *Ball, keepOffset bool) {
	ratio := 0.0
	if keepOffset && p.Width > 0 {
		ratio = utils.Clamp((ball.Position.X-p.Position.X)/p.Width, -0.5, 0.5)
	}
	ball.Stuck = true
	ball.Velocity = utils.Vector2{}
	p.StuckBall = ball
	p.stuckRatio = ratio
	p.caughtBySticky = false
	p.placeStuckBall()
}

// Catch attaches a ball that landed on a sticky paddle.
func (p *Paddle) Catch(ball *Ball) {
	p.SetStuckBall(ball, true)
	p.caughtBySticky = true
}

// Launch releases the stuck ball along the aim angle. The second result
// reports whether the ball had been caught by a sticky paddle.
func (p *Paddle) Launch(speed float64) (*Ball, bool) {
	if !assertf(p.StuckBall != nil, "launch without a stuck ball") {
		return nil, false
	}
	ball := p.StuckBall
	caught := p.caughtBySticky

	ball.Stuck = false
	ball.Velocity = utils.VectorFromAngle(p.AimAngle, speed)
	p.StuckBall = nil
	p.caughtBySticky = false
	p.stuckRatio = 0
	return ball, caught
}

// Move shifts the paddle horizontally and keeps it inside the walls.
func (p *Paddle) Move(dx float64) {
	p.Position.X += dx
	p.ClampPosition()
}

// Aim rotates the launch angle. It only applies while a ball is stuck.
func (p *Paddle) Aim(dy float64) {
	if p.StuckBall == nil {
		return
	}
	p.AimAngle = utils.Clamp(p.AimAngle+dy*p.cfg.AimSensitivity, -p.cfg.MaxAimAngle, p.cfg.MaxAimAngle)
}

func (p *Paddle) ResetAim() {
	p.AimAngle = 0
}

// ClampPosition keeps the paddle body PaddleMargin away from the side walls
// and re-derives the stuck ball position.
func (p *Paddle) ClampPosition() {
	half := p.Width / 2
	lo := p.cfg.PaddleMargin + half
	hi := float64(p.cfg.CanvasWidth) - p.cfg.PaddleMargin - half
	p.Position.X = utils.Clamp(p.Position.X, lo, math.Max(lo, hi))
	p.placeStuckBall()
}

func (p *Paddle) placeStuckBall() {
	if p.StuckBall == nil {
		return
	}
	p.StuckBall.Position = utils.NewVector2(
		p.Position.X+p.stuckRatio*p.Width,
		p.Position.Y-p.cfg.BallRadius,
	)
}

func (p *Paddle) SetUltrawide(on bool) {
	p.ultrawide = on
}

func (p *Paddle) Ultrawide() bool { return p.ultrawide }

// UpdateWidth animates the width toward the current target over
// PaddleTransitionTime seconds.
func (p *Paddle) UpdateWidth(dt float64) {
	target := 0.0
	if p.ultrawide {
		target = 1
	}
	if p.transition == target {
		return
	}
	step := 1.0
	if p.cfg.PaddleTransitionTime > 0 {
		step = dt / p.cfg.PaddleTransitionTime
	}
	if p.transition < target {
		p.transition = math.Min(target, p.transition+step)
	} else {
		p.transition = math.Max(target, p.transition-step)
	}
	p.Width = utils.Lerp(p.cfg.PaddleWidth, p.cfg.PaddleUltrawideWidth, p.transition)
	p.ClampPosition()
}
