// File: game/collision.go
package game

import (
	"math"

	"github.com/lguibr/brickbreaker/utils"
)

// Direction is the brick face a ball hit.
type Direction int

const (
	DirectionTop Direction = iota
	DirectionRight
	DirectionBottom
	DirectionLeft
)

func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionRight:
		return "right"
	case DirectionBottom:
		return "bottom"
	case DirectionLeft:
		return "left"
	}
	return "unknown"
}

// leaving reports whether v points away from the face. A ball leaving a face
// cannot have struck it.
func (d Direction) leaving(v utils.Vector2) bool {
	switch d {
	case DirectionTop:
		return v.Y < 0
	case DirectionBottom:
		return v.Y > 0
	case DirectionLeft:
		return v.X < 0
	case DirectionRight:
		return v.X > 0
	}
	return false
}

// CollisionHandler resolves ball collisions against walls, bricks, the
// paddle and other balls. It holds no game state.
type CollisionHandler struct {
	cfg         utils.Config
	diagnostics *Diagnostics
}

func NewCollisionHandler(cfg utils.Config, diagnostics *Diagnostics) *CollisionHandler {
	return &CollisionHandler{cfg: cfg, diagnostics: diagnostics}
}

// HandleWallCollisions reflects the ball off the left, right and top walls.
// The bottom is open. Returns whether a wall was hit.
func (h *CollisionHandler) HandleWallCollisions(ball *Ball) bool {
	r := h.cfg.BallRadius
	width := float64(h.cfg.CanvasWidth)
	hit := false

	if ball.Position.X-r <= 0 {
		ball.Position.X = r
		ball.Velocity.X = math.Abs(ball.Velocity.X)
		hit = true
	} else if ball.Position.X+r >= width {
		ball.Position.X = width - r
		ball.Velocity.X = -math.Abs(ball.Velocity.X)
		hit = true
	}
	if ball.Position.Y-r <= 0 {
		ball.Position.Y = r
		ball.Velocity.Y = math.Abs(ball.Velocity.Y)
		hit = true
	}
	return hit
}

// FindIntersectingBricks scans the 3x3 cell neighbourhood around the ball in
// row-major order and returns every brick the ball overlaps.
func (h *CollisionHandler) FindIntersectingBricks(canvas *Canvas, ball *Ball) []*Brick {
	rows, cols := canvas.Rows(), canvas.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}
	row, col := canvas.BrickCoordsFromDrawCoords(ball.Position)
	row = utils.ClampInt(row, 0, rows-1)
	col = utils.ClampInt(col, 0, cols-1)

	var found []*Brick
	for i := utils.MaxInt(0, row-1); i <= utils.MinInt(rows-1, row+1); i++ {
		for j := utils.MaxInt(0, col-1); j <= utils.MinInt(cols-1, col+1); j++ {
			brick := canvas.Grid[i][j]
			if brick != nil && brick.IntersectsBall(ball.Position, h.cfg.BallRadius) {
				found = append(found, brick)
			}
		}
	}
	return found
}

// isAboveLine reports whether p lies above the line through a and b, i.e. on
// the smaller-y side.
func isAboveLine(p, a, b utils.Vector2) bool {
	t := (p.X - a.X) / (b.X - a.X)
	return p.Y < a.Y+t*(b.Y-a.Y)
}

// CollisionDirection classifies which face of the brick the ball hit using
// the brick's two diagonals, then corrects the result against the ball's
// velocity.
func (h *CollisionHandler) CollisionDirection(ball *Ball, brick *Brick) Direction {
	p := ball.Position
	aboveA := isAboveLine(p, brick.UpperLeft, brick.BottomRight)
	aboveB := isAboveLine(p, brick.BottomLeft, brick.UpperRight)

	var dir Direction
	switch {
	case aboveA && aboveB:
		dir = DirectionTop
	case !aboveA && !aboveB:
		dir = DirectionBottom
	case aboveA:
		dir = DirectionRight
	default:
		dir = DirectionLeft
	}

	if !dir.leaving(ball.Velocity) {
		return dir
	}

	center := brick.Center()
	switch dir {
	case DirectionTop, DirectionBottom:
		if p.X < center.X {
			dir = DirectionLeft
		} else {
			dir = DirectionRight
		}
	default:
		if p.Y < center.Y {
			dir = DirectionTop
		} else {
			dir = DirectionBottom
		}
	}
	return dir
}

// BrickCollision bounces the ball off the brick and pushes it out of the
// brick. A fireball passes through destructible bricks untouched.
func (h *CollisionHandler) BrickCollision(ball *Ball, brick *Brick) bool {
	if ball.Fireball && !brick.Indestructible {
		return true
	}

	dir := h.CollisionDirection(ball, brick)
	r := h.cfg.BallRadius
	margin := h.cfg.CollisionMargin

	switch dir {
	case DirectionTop:
		ball.Velocity.Y = -math.Abs(ball.Velocity.Y)
		penetration := ball.Position.Y + r - brick.UpperLeft.Y
		ball.Position.Y -= penetration + margin
	case DirectionBottom:
		ball.Velocity.Y = math.Abs(ball.Velocity.Y)
		penetration := brick.BottomLeft.Y - (ball.Position.Y - r)
		ball.Position.Y += penetration + margin
	case DirectionLeft:
		ball.Velocity.X = -math.Abs(ball.Velocity.X)
		penetration := ball.Position.X + r - brick.UpperLeft.X
		ball.Position.X -= penetration + margin
	case DirectionRight:
		ball.Velocity.X = math.Abs(ball.Velocity.X)
		penetration := brick.UpperRight.X - (ball.Position.X - r)
		ball.Position.X += penetration + margin
	}

	if !dir.leaving(ball.Velocity) {
		h.diagnostics.Reportf("ball %d left brick (%d,%d) %s face with velocity %+v", ball.Id, brick.Row, brick.Col, dir, ball.Velocity)
	}
	return true
}

// PaddleCollision bounces a falling ball off the paddle, or catches it when
// the paddle is sticky and holds no ball.
func (h *CollisionHandler) PaddleCollision(ball *Ball, paddle *Paddle) bool {
	if ball.Stuck || ball.Velocity.Y <= 0 {
		return false
	}
	r := h.cfg.BallRadius
	rect := paddle.Rect()
	if ball.Position.Y >= rect.Max.Y || !rect.IntersectsCircle(ball.Position, r) {
		return false
	}

	if paddle.Sticky > 0 && paddle.StuckBall == nil {
		paddle.Catch(ball)
		return true
	}

	ratio := utils.Clamp((ball.Position.X-paddle.Position.X)/(paddle.Width/2), -1, 1)
	ball.Velocity = utils.VectorFromAngle(ratio*h.cfg.PaddleBounceAngle, h.cfg.BallSpeed)
	ball.Position.Y = math.Min(ball.Position.Y, paddle.Position.Y-r-h.cfg.CollisionMargin)
	return true
}

// HandleBallBallCollisions resolves every overlapping pair of balls once.
// Moving balls exchange their normal velocity components; a stuck ball acts
// as an immovable obstacle. Returns the number of resolved pairs.
func (h *CollisionHandler) HandleBallBallCollisions(balls []*Ball) int {
	minDist := 2 * h.cfg.BallRadius
	resolved := 0

	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			first, second := balls[i], balls[j]
			if first.Stuck && second.Stuck {
				continue
			}
			if first.Position.Distance(second.Position) >= minDist {
				continue
			}
			if second.Stuck {
				first, second = second, first
			}

			normal := second.Position.Minus(first.Position)
			if normal.IsZero() {
				continue
			}
			normal.Normalize()
			tangent := normal.Perpendicular()
			if !utils.ApproxEqual(tangent.Magnitude(), 1, 1e-9) {
				h.diagnostics.Reportf("ball-ball tangent has length %f", tangent.Magnitude())
			}

			v1n, v1t := first.Velocity.Dot(normal), first.Velocity.Dot(tangent)
			v2n, v2t := second.Velocity.Dot(normal), second.Velocity.Dot(tangent)
			if first.Stuck {
				v2n = math.Abs(v2n)
			} else if v1n > v2n {
				v1n, v2n = v2n, v1n
			}

			first.Velocity = normal.Times(v1n).Plus(tangent.Times(v1t))
			second.Velocity = normal.Times(v2n).Plus(tangent.Times(v2t))
			h.restoreSpeed(first, normal.Times(-1))
			h.restoreSpeed(second, normal)

			h.separate(first, second, minDist)
			if first.Stuck {
				first.Velocity = utils.Vector2{}
			}

			for _, b := range []*Ball{first, second} {
				if !b.Stuck && !utils.ApproxEqual(b.Speed(), h.cfg.BallSpeed, h.cfg.SpeedTolerance) {
					h.diagnostics.Reportf("ball %d speed %f after ball-ball collision", b.Id, b.Speed())
				}
			}
			resolved++
		}
	}
	return resolved
}

// restoreSpeed renormalizes the ball to the fixed speed. A zero result falls
// back to the given direction.
func (h *CollisionHandler) restoreSpeed(ball *Ball, fallback utils.Vector2) {
	if ball.Stuck {
		return
	}
	if ball.Velocity.IsZero() {
		ball.Velocity = fallback
	}
	ball.Velocity.SetMagnitude(h.cfg.BallSpeed)
}

// separate nudges the second ball along its velocity until the pair no
// longer overlaps, giving up after SeparationMaxIterations steps.
func (h *CollisionHandler) separate(first, second *Ball, minDist float64) {
	step := second.Velocity.Times(h.cfg.SeparationStep)
	if step.IsZero() {
		return
	}
	for i := 0; i < h.cfg.SeparationMaxIterations; i++ {
		if first.Position.Distance(second.Position) >= minDist {
			return
		}
		second.Position.Add(step)
	}
	if first.Position.Distance(second.Position) < minDist {
		h.diagnostics.Reportf("balls %d and %d still overlap after separation", first.Id, second.Id)
	}
}
