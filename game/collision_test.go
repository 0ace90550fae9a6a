// File: game/collision_test.go
package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lguibr/brickbreaker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(cfg utils.Config) (*CollisionHandler, *Diagnostics) {
	diag := &Diagnostics{}
	return NewCollisionHandler(cfg, diag), diag
}

func TestHandleWallCollisions(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)
	r := cfg.BallRadius
	v := cfg.BallSpeed
	w := float64(cfg.CanvasWidth)

	testCases := []struct {
		name    string
		pos     utils.Vector2
		vel     utils.Vector2
		wantPos utils.Vector2
		wantVel utils.Vector2
		wantHit bool
	}{
		{"left wall", utils.NewVector2(r, 100), utils.NewVector2(-v, 0), utils.NewVector2(r, 100), utils.NewVector2(v, 0), true},
		{"left wall penetrated", utils.NewVector2(2, 100), utils.NewVector2(-3, 4), utils.NewVector2(r, 100), utils.NewVector2(3, 4), true},
		{"right wall", utils.NewVector2(w-2, 200), utils.NewVector2(5, -1), utils.NewVector2(w-r, 200), utils.NewVector2(-5, -1), true},
		{"top wall", utils.NewVector2(300, 1), utils.NewVector2(1, -7), utils.NewVector2(300, r), utils.NewVector2(1, 7), true},
		{"top left corner", utils.NewVector2(0, 0), utils.NewVector2(-1, -1), utils.NewVector2(r, r), utils.NewVector2(1, 1), true},
		{"no bottom wall", utils.NewVector2(300, 10000), utils.NewVector2(0, 5), utils.NewVector2(300, 10000), utils.NewVector2(0, 5), false},
		{"inside bounds", utils.NewVector2(300, 300), utils.NewVector2(-4, -4), utils.NewVector2(300, 300), utils.NewVector2(-4, -4), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ball := NewBall(1, tc.pos)
			ball.Velocity = tc.vel
			assert.Equal(t, tc.wantHit, h.HandleWallCollisions(ball))
			assert.Equal(t, tc.wantPos, ball.Position)
			assert.Equal(t, tc.wantVel, ball.Velocity)

			// A second pass changes nothing.
			pos, vel := ball.Position, ball.Velocity
			h.HandleWallCollisions(ball)
			assert.Equal(t, pos, ball.Position)
			assert.Equal(t, vel, ball.Velocity)
		})
	}
}

func TestFindIntersectingBricks(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)
	canvas := newTestCanvas(cfg, map[cell]rune{
		{2, 2}: '1', {2, 3}: '2', {3, 2}: '3', {10, 10}: '*',
	})
	corner := canvas.DrawCoordsFromBrickCoords(3, 3) // shared corner of the four cells

	t.Run("row-major order", func(t *testing.T) {
		ball := NewBall(1, corner.Plus(utils.NewVector2(1, 1)))
		bricks := h.FindIntersectingBricks(canvas, ball)
		require.Len(t, bricks, 3)
		assert.Equal(t, 1, bricks[0].Variant)
		assert.Equal(t, 2, bricks[1].Variant)
		assert.Equal(t, 3, bricks[2].Variant)
	})

	t.Run("touching is not intersecting", func(t *testing.T) {
		brick := canvas.Grid[10][10]
		ball := NewBall(1, utils.NewVector2(brick.Center().X, brick.UpperLeft.Y-cfg.BallRadius))
		assert.Empty(t, h.FindIntersectingBricks(canvas, ball))
	})

	t.Run("ball outside the grid", func(t *testing.T) {
		ball := NewBall(1, utils.NewVector2(5, 5))
		assert.Empty(t, h.FindIntersectingBricks(canvas, ball))
		ball.Position = utils.NewVector2(400, 600)
		assert.Empty(t, h.FindIntersectingBricks(canvas, ball))
	})

	t.Run("grid edge brick from outside", func(t *testing.T) {
		edge := newTestCanvas(cfg, map[cell]rune{{0, 0}: '4'})
		ball := NewBall(1, utils.NewVector2(edge.OffsetX-4, edge.OffsetY+10))
		bricks := h.FindIntersectingBricks(edge, ball)
		require.Len(t, bricks, 1)
		assert.Equal(t, 4, bricks[0].Variant)
	})
}

func TestCollisionDirection(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)
	canvas := newTestCanvas(cfg, map[cell]rune{{0, 0}: '1'})
	brick := canvas.Grid[0][0] // (40,48)-(88,72), center (64,60)

	testCases := []struct {
		name string
		pos  utils.Vector2
		vel  utils.Vector2
		want Direction
	}{
		{"top", utils.NewVector2(64, 42), utils.NewVector2(0, 1), DirectionTop},
		{"bottom", utils.NewVector2(64, 78), utils.NewVector2(0, -1), DirectionBottom},
		{"left", utils.NewVector2(34, 60), utils.NewVector2(1, 0), DirectionLeft},
		{"right", utils.NewVector2(94, 60), utils.NewVector2(-1, 0), DirectionRight},
		{"top moving up on left half", utils.NewVector2(50, 42), utils.NewVector2(1, -1), DirectionLeft},
		{"top moving up on right half", utils.NewVector2(80, 42), utils.NewVector2(-1, -1), DirectionRight},
		{"bottom moving down on left half", utils.NewVector2(45, 77), utils.NewVector2(1, 1), DirectionLeft},
		{"left moving left on upper half", utils.NewVector2(34, 50), utils.NewVector2(-1, 1), DirectionTop},
		{"right moving right on lower half", utils.NewVector2(94, 70), utils.NewVector2(1, -1), DirectionBottom},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ball := NewBall(1, tc.pos)
			ball.Velocity = tc.vel
			assert.Equal(t, tc.want, h.CollisionDirection(ball, brick))
		})
	}
}

func TestBrickCollision_PenetrationCorrection(t *testing.T) {
	cfg := testConfig()
	h, diag := newTestHandler(cfg)
	canvas := newTestCanvas(cfg, map[cell]rune{{0, 0}: '1'})
	brick := canvas.Grid[0][0]
	r, m, v := cfg.BallRadius, cfg.CollisionMargin, cfg.BallSpeed

	testCases := []struct {
		name    string
		pos     utils.Vector2
		vel     utils.Vector2
		wantPos utils.Vector2
		wantVel utils.Vector2
	}{
		{"top", utils.NewVector2(64, 45), utils.NewVector2(0, v), utils.NewVector2(64, 48-r-m), utils.NewVector2(0, -v)},
		{"bottom", utils.NewVector2(64, 75), utils.NewVector2(0, -v), utils.NewVector2(64, 72+r+m), utils.NewVector2(0, v)},
		{"left", utils.NewVector2(35, 60), utils.NewVector2(v, 0), utils.NewVector2(40-r-m, 60), utils.NewVector2(-v, 0)},
		{"right", utils.NewVector2(92, 60), utils.NewVector2(-v, 0), utils.NewVector2(88+r+m, 60), utils.NewVector2(v, 0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ball := NewBall(1, tc.pos)
			ball.Velocity = tc.vel
			require.True(t, h.BrickCollision(ball, brick))
			assert.InDelta(t, tc.wantPos.X, ball.Position.X, 1e-9)
			assert.InDelta(t, tc.wantPos.Y, ball.Position.Y, 1e-9)
			assert.Equal(t, tc.wantVel, ball.Velocity)
		})
	}
	assert.Zero(t, diag.Count)
}

func TestBrickCollision_Fireball(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)
	canvas := newTestCanvas(cfg, map[cell]rune{{0, 0}: '1', {0, 2}: '*'})

	t.Run("passes through destructible", func(t *testing.T) {
		ball := NewBall(1, utils.NewVector2(64, 45))
		ball.Velocity = utils.NewVector2(0, cfg.BallSpeed)
		ball.Fireball = true
		assert.True(t, h.BrickCollision(ball, canvas.Grid[0][0]))
		assert.Equal(t, utils.NewVector2(64, 45), ball.Position)
		assert.Equal(t, utils.NewVector2(0, cfg.BallSpeed), ball.Velocity)
	})

	t.Run("bounces off indestructible", func(t *testing.T) {
		brick := canvas.Grid[0][2]
		ball := NewBall(1, utils.NewVector2(brick.Center().X, 45))
		ball.Velocity = utils.NewVector2(0, cfg.BallSpeed)
		ball.Fireball = true
		assert.True(t, h.BrickCollision(ball, brick))
		assert.Less(t, ball.Velocity.Y, 0.0)
		assert.False(t, brick.IntersectsBall(ball.Position, cfg.BallRadius))
	})
}

// Random overlapping balls: after the response the ball sits outside the
// brick and leaves through the face that was chosen.
func TestBrickCollision_Properties(t *testing.T) {
	cfg := testConfig()
	h, diag := newTestHandler(cfg)
	canvas := newTestCanvas(cfg, map[cell]rune{{5, 5}: '1'})
	brick := canvas.Grid[5][5]
	rect := brick.Rect()
	r := cfg.BallRadius
	rng := rand.New(rand.NewSource(42))

	checked := 0
	for checked < 2000 {
		pos := utils.NewVector2(
			rect.Min.X-r+rng.Float64()*(rect.Width()+2*r),
			rect.Min.Y-r+rng.Float64()*(rect.Height()+2*r),
		)
		if !brick.IntersectsBall(pos, r) {
			continue
		}
		angle := rng.Float64() * 2 * math.Pi
		vel := utils.VectorFromAngle(angle, cfg.BallSpeed)
		if math.Abs(vel.X) < 1e-6 || math.Abs(vel.Y) < 1e-6 {
			continue
		}
		checked++

		ball := NewBall(1, pos)
		ball.Velocity = vel
		dir := h.CollisionDirection(ball, brick)
		require.True(t, h.BrickCollision(ball, brick))

		closest := rect.ClosestPoint(ball.Position)
		assert.GreaterOrEqual(t, closest.Distance(ball.Position), r-1e-9, "ball left inside brick from %+v", pos)
		assert.True(t, dir.leaving(ball.Velocity), "direction %s with velocity %+v", dir, ball.Velocity)
		assert.InDelta(t, cfg.BallSpeed, ball.Speed(), 1e-9)
	}
	assert.Zero(t, diag.Count)
}

func TestPaddleCollision(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)
	r := cfg.BallRadius

	t.Run("center hit bounces straight up", func(t *testing.T) {
		p := NewPaddle(cfg)
		ball := NewBall(1, utils.NewVector2(p.Position.X, p.Position.Y-r+2))
		ball.Velocity = utils.NewVector2(0, cfg.BallSpeed)
		require.True(t, h.PaddleCollision(ball, p))
		assert.InDelta(t, 0, ball.Velocity.X, 1e-9)
		assert.InDelta(t, -cfg.BallSpeed, ball.Velocity.Y, 1e-9)
		assert.Equal(t, p.Position.Y-r-cfg.CollisionMargin, ball.Position.Y)
	})

	t.Run("edge hit bounces at max angle", func(t *testing.T) {
		p := NewPaddle(cfg)
		ball := NewBall(1, utils.NewVector2(p.Position.X+p.Width/2, p.Position.Y-r+2))
		ball.Velocity = utils.NewVector2(-10, cfg.BallSpeed)
		require.True(t, h.PaddleCollision(ball, p))
		want := utils.VectorFromAngle(cfg.PaddleBounceAngle, cfg.BallSpeed)
		assert.InDelta(t, want.X, ball.Velocity.X, 1e-9)
		assert.InDelta(t, want.Y, ball.Velocity.Y, 1e-9)
	})

	t.Run("rising ball ignored", func(t *testing.T) {
		p := NewPaddle(cfg)
		ball := NewBall(1, utils.NewVector2(p.Position.X, p.Position.Y))
		ball.Velocity = utils.NewVector2(0, -cfg.BallSpeed)
		assert.False(t, h.PaddleCollision(ball, p))
	})

	t.Run("sticky paddle catches", func(t *testing.T) {
		p := NewPaddle(cfg)
		p.Sticky = 1
		ball := NewBall(1, utils.NewVector2(p.Position.X+20, p.Position.Y-r+2))
		ball.Velocity = utils.NewVector2(0, cfg.BallSpeed)
		require.True(t, h.PaddleCollision(ball, p))
		assert.True(t, ball.Stuck)
		assert.Same(t, ball, p.StuckBall)
		assert.True(t, ball.Velocity.IsZero())
		assert.InDelta(t, p.Position.X+20, ball.Position.X, 1e-9)
	})
}

func TestBallBallCollision_HeadOn(t *testing.T) {
	cfg := testConfig()
	h, diag := newTestHandler(cfg)
	s := cfg.BallSpeed
	minDist := 2 * cfg.BallRadius

	a := NewBall(1, utils.NewVector2(100, 300))
	a.Velocity = utils.NewVector2(s, 0)
	b := NewBall(2, utils.NewVector2(100+minDist-1, 300))
	b.Velocity = utils.NewVector2(-s, 0)

	assert.Equal(t, 1, h.HandleBallBallCollisions([]*Ball{a, b}))
	assert.InDelta(t, -s, a.Velocity.X, 1e-9)
	assert.InDelta(t, s, b.Velocity.X, 1e-9)
	assert.InDelta(t, s, a.Speed(), cfg.SpeedTolerance)
	assert.InDelta(t, s, b.Speed(), cfg.SpeedTolerance)
	assert.GreaterOrEqual(t, a.Position.Distance(b.Position), minDist)
	assert.Zero(t, diag.Count)
}

func TestBallBallCollision_StuckBall(t *testing.T) {
	cfg := testConfig()
	h, diag := newTestHandler(cfg)
	s := cfg.BallSpeed
	minDist := 2 * cfg.BallRadius

	stuck := NewBall(1, utils.NewVector2(100, 300))
	stuck.Velocity = utils.NewVector2(s, 0)
	stuck.Stuck = true
	moving := NewBall(2, utils.NewVector2(100+minDist-1, 300))
	moving.Velocity = utils.NewVector2(-s, 0)

	// Stuck ball second in the list to exercise the pair normalization.
	assert.Equal(t, 1, h.HandleBallBallCollisions([]*Ball{moving, stuck}))
	assert.Equal(t, utils.Vector2{}, stuck.Velocity)
	assert.Equal(t, utils.NewVector2(100, 300), stuck.Position)
	assert.InDelta(t, s, moving.Speed(), cfg.SpeedTolerance)
	away := moving.Position.Minus(stuck.Position)
	assert.Greater(t, moving.Velocity.Dot(away), 0.0)
	assert.GreaterOrEqual(t, moving.Position.Distance(stuck.Position), minDist)
	assert.Zero(t, diag.Count)
}

func TestBallBallCollision_Skips(t *testing.T) {
	cfg := testConfig()
	h, _ := newTestHandler(cfg)

	t.Run("coincident centers", func(t *testing.T) {
		a := NewBall(1, utils.NewVector2(200, 200))
		a.Velocity = utils.NewVector2(cfg.BallSpeed, 0)
		b := NewBall(2, utils.NewVector2(200, 200))
		b.Velocity = utils.NewVector2(0, cfg.BallSpeed)
		assert.Zero(t, h.HandleBallBallCollisions([]*Ball{a, b}))
		assert.Equal(t, utils.NewVector2(cfg.BallSpeed, 0), a.Velocity)
	})

	t.Run("not overlapping", func(t *testing.T) {
		a := NewBall(1, utils.NewVector2(200, 200))
		b := NewBall(2, utils.NewVector2(200+2*cfg.BallRadius, 200))
		assert.Zero(t, h.HandleBallBallCollisions([]*Ball{a, b}))
	})
}

func TestBallBallCollision_SpeedProperty(t *testing.T) {
	cfg := testConfig()
	h, diag := newTestHandler(cfg)
	rng := rand.New(rand.NewSource(7))
	r := cfg.BallRadius

	for i := 0; i < 500; i++ {
		a := NewBall(1, utils.NewVector2(400, 300))
		a.Velocity = utils.VectorFromAngle(rng.Float64()*2*math.Pi, cfg.BallSpeed)
		offset := utils.VectorFromAngle(rng.Float64()*2*math.Pi, 0.5+rng.Float64()*(2*r-1))
		b := NewBall(2, a.Position.Plus(offset))
		b.Velocity = utils.VectorFromAngle(rng.Float64()*2*math.Pi, cfg.BallSpeed)

		require.Equal(t, 1, h.HandleBallBallCollisions([]*Ball{a, b}))
		assert.InDelta(t, cfg.BallSpeed, a.Speed(), cfg.SpeedTolerance)
		assert.InDelta(t, cfg.BallSpeed, b.Speed(), cfg.SpeedTolerance)
	}
	assert.Zero(t, diag.Count, diag.Last)
}
