// File: game/game.go
package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lguibr/brickbreaker/utils"
)

var (
	ErrNotEditing  = errors.New("game is not in editor mode")
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// axisEpsilon is the velocity component, relative to speed, below which a
// ball is considered to travel along an axis.
const axisEpsilon = 1e-6

// Game is the single-threaded breakout simulation. It owns the balls, the
// brick grid and the powerups; nothing else may mutate them.
type Game struct {
	SessionID   uuid.UUID
	Canvas      *Canvas
	Paddle      *Paddle
	Balls       []*Ball
	Powerups    []*Powerup        // Active time/repetition limited powerups
	Falling     []*FallingPowerup // Pickups on their way down
	Score       int
	Lives       int
	Time        float64
	Paused      bool
	EditorMode  bool
	Won         bool
	Lost        bool
	LoadFailed  bool
	Diagnostics Diagnostics

	cfg        utils.Config
	collisions *CollisionHandler
	rng        *rand.Rand
	levelText  string
	lastBreak  float64
	lifeLost   bool
	fireball   bool
	hasTargets bool // Level started with destructible bricks
	nextBallID int
	events     []Event
}

// NewGame creates a game on an empty level.
func NewGame(cfg utils.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		SessionID: uuid.New(),
		Canvas:    NewCanvas(cfg),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		levelText: EmptyLevel(cfg.LevelHeight, cfg.LevelWidth),
	}
	g.collisions = NewCollisionHandler(cfg, &g.Diagnostics)
	g.Reset()
	return g, nil
}

func (g *Game) Config() utils.Config { return g.cfg }

// LoadLevel parses level text and restarts the game on it. On error the
// current grid is kept and the game refuses to run until a level loads.
func (g *Game) LoadLevel(text string) error {
	if _, err := ParseLevel(g.Canvas, text); err != nil {
		g.LoadFailed = true
		log.Printf("ERROR: Game %s: failed to load level: %v", g.SessionID, err)
		return err
	}
	g.levelText = text
	g.LoadFailed = false
	g.Reset()
	return nil
}

// Reset restarts the current level from scratch.
func (g *Game) Reset() {
	if err := g.Canvas.LoadLevel(g.levelText); err != nil {
		g.LoadFailed = true
		log.Printf("ERROR: Game %s: failed to reload level: %v", g.SessionID, err)
		return
	}
	g.Paddle = NewPaddle(g.cfg)
	g.Balls = nil
	g.Powerups = nil
	g.Falling = nil
	g.Score = 0
	g.Lives = g.cfg.InitialLives
	g.Time = 0
	g.Won = false
	g.Lost = false
	g.Paused = false
	g.lastBreak = math.Inf(-1)
	g.lifeLost = false
	g.fireball = false
	g.hasTargets = g.Canvas.Grid.CountDestructible() > 0
	g.events = nil
	g.resetBalls()
}

// resetBalls leaves a single ball stuck to the paddle. Powerups, score and
// bricks are untouched.
func (g *Game) resetBalls() {
	ball := g.newBall(g.Paddle.Position)
	g.Balls = []*Ball{ball}
	g.Paddle.ResetAim()
	g.Paddle.SetStuckBall(ball, false)
}

func (g *Game) newBall(position utils.Vector2) *Ball {
	g.nextBallID++
	ball := NewBall(g.nextBallID, position)
	ball.Fireball = g.fireball
	return ball
}

func (g *Game) emit(t EventType, position utils.Vector2, value int) {
	if len(g.events) >= maxPendingEvents {
		g.events = g.events[1:]
	}
	g.events = append(g.events, Event{Type: t, Position: position, Value: value})
}

// DrainEvents returns and clears the events emitted since the last call.
func (g *Game) DrainEvents() []Event {
	events := g.events
	g.events = nil
	return events
}

// Update advances the simulation by dt seconds.
func (g *Game) Update(dt float64) {
	if g.EditorMode || g.Paused || g.Won || g.LoadFailed {
		return
	}
	if g.cfg.MaxTickDelta > 0 && dt > g.cfg.MaxTickDelta {
		dt = g.cfg.MaxTickDelta
	}
	if dt <= 0 {
		return
	}

	if !g.Lost {
		g.Time += dt
	}
	g.updatePowerups(dt)
	g.moveBalls(dt)
	g.Paddle.UpdateWidth(dt)
	g.handleCollisions()
	if len(g.Balls) >= 2 {
		g.collisions.HandleBallBallCollisions(g.Balls)
	}
	g.nudgeAxisAlignedBalls()
	g.handlePickups()
	g.checkWin()
}

func (g *Game) updatePowerups(dt float64) {
	active := make([]*Powerup, 0, len(g.Powerups))
	for _, p := range g.Powerups {
		if p.Tick(dt) {
			g.emit(EventPowerupExpired, g.Paddle.Position, int(p.Type))
			continue
		}
		if p.State == PowerupActive {
			active = append(active, p)
		}
	}
	g.Powerups = active

	for _, f := range g.Falling {
		f.Update(dt, g.cfg.PowerupFallSpeed)
	}
}

func (g *Game) moveBalls(dt float64) {
	for _, ball := range g.Balls {
		if ball.Stuck {
			if !ball.Velocity.IsZero() {
				g.Diagnostics.Reportf("stuck ball %d has velocity %+v", ball.Id, ball.Velocity)
			}
		} else {
			ball.Move(dt)
			if ball.Fireball {
				ball.Rotation = math.Mod(ball.Rotation+g.cfg.FireballSpinSpeed*dt, 2*math.Pi)
			}
		}
		ball.Collided = false
	}
}

func (g *Game) handleCollisions() {
	kept := make([]*Ball, 0, len(g.Balls))
	for _, ball := range g.Balls {
		if ball.Stuck {
			kept = append(kept, ball)
			continue
		}

		if g.collisions.HandleWallCollisions(ball) {
			g.emit(EventWallBounce, ball.Position, 0)
		}
		if !ball.Collided {
			if bricks := g.collisions.FindIntersectingBricks(g.Canvas, ball); len(bricks) > 0 {
				brick := bricks[0]
				if g.collisions.BrickCollision(ball, brick) {
					ball.Collided = true
					g.hitBrick(ball, brick)
				}
			}
		}
		if !ball.Collided && g.collisions.PaddleCollision(ball, g.Paddle) {
			ball.Collided = true
			if ball.Stuck {
				g.emit(EventBallCaught, ball.Position, 0)
			} else {
				g.emit(EventPaddleBounce, ball.Position, 0)
			}
		}

		if ball.Velocity.Y > 0 && ball.Position.Y-g.cfg.BallRadius > g.Canvas.Height {
			g.emit(EventBallLost, ball.Position, 0)
			continue
		}
		kept = append(kept, ball)
	}
	g.Balls = kept

	if len(g.Balls) == 0 {
		g.loseLife()
	} else {
		g.lifeLost = false
	}
}

func (g *Game) hitBrick(ball *Ball, brick *Brick) {
	if !brick.Hit(ball.Fireball) {
		g.emit(EventBrickHit, brick.Center(), 0)
		return
	}
	g.Canvas.Grid[brick.Row][brick.Col] = nil
	points := g.breakScore(brick.Score)
	g.Score += points
	g.lastBreak = g.Time
	g.emit(EventBrickDestroyed, brick.Center(), points)
	g.maybeSpawnPowerup(brick.Center())
}

// breakScore rewards quick successive breaks.
func (g *Game) breakScore(base int) int {
	elapsed := g.Time - g.lastBreak
	multiplier := 1.0
	switch {
	case elapsed < 0.1:
		multiplier = 1.3
	case elapsed < 0.35:
		multiplier = 1.5
	case elapsed < 1.2:
		multiplier = 1.2
	}
	return int(math.Round(float64(base) * multiplier))
}

func (g *Game) maybeSpawnPowerup(position utils.Vector2) {
	if g.rng.Float64()*100 >= g.cfg.PowerupChance {
		return
	}
	t := PowerupTypes[g.rng.Intn(len(PowerupTypes))]
	g.Falling = append(g.Falling, &FallingPowerup{Type: t, Position: position})
	g.emit(EventPowerupSpawned, position, int(t))
}

// loseLife runs once per emptied ball list.
func (g *Game) loseLife() {
	if g.lifeLost || g.Lost {
		return
	}
	g.lifeLost = true
	g.Lives--
	g.emit(EventLifeLost, g.Paddle.Position, g.Lives)
	if g.Lives <= 0 {
		g.Lives = 0
		g.Lost = true
		g.emit(EventGameLost, g.Paddle.Position, g.Score)
		log.Printf("Game %s: lost with score %d", g.SessionID, g.Score)
		return
	}
	g.resetBalls()
}

// nudgeAxisAlignedBalls rotates purely horizontal or vertical trajectories
// slightly so a ball cannot bounce along one axis forever.
func (g *Game) nudgeAxisAlignedBalls() {
	for _, ball := range g.Balls {
		if ball.Stuck {
			continue
		}
		speed := ball.Speed()
		if speed == 0 {
			continue
		}
		if math.Abs(ball.Velocity.X) < axisEpsilon*speed || math.Abs(ball.Velocity.Y) < axisEpsilon*speed {
			ball.Velocity = ball.Velocity.Rotated(g.cfg.AxisNudgeAngle)
		}
	}
}

func (g *Game) handlePickups() {
	paddleRect := g.Paddle.Rect()
	kept := make([]*FallingPowerup, 0, len(g.Falling))
	for _, f := range g.Falling {
		rect := f.Rect(g.cfg.PowerupSize)
		if rect.Intersects(paddleRect) {
			g.emit(EventPowerupPicked, f.Position, int(f.Type))
			g.ActivatePowerup(f.Type)
			continue
		}
		if rect.Min.Y > g.Canvas.Height {
			continue
		}
		kept = append(kept, f)
	}
	g.Falling = kept
}

func (g *Game) checkWin() {
	if g.Won || g.Lost || !g.hasTargets || g.Canvas.Grid.CountDestructible() > 0 {
		return
	}
	g.Won = true
	g.emit(EventGameWon, g.Paddle.Position, g.Score)
	log.Printf("Game %s: won with score %d in %.1fs", g.SessionID, g.Score, g.Time)
}

// --- Input entry points ---

func (g *Game) acceptsInput() bool {
	return !g.EditorMode && !g.Paused && !g.Won && !g.Lost && !g.LoadFailed
}

// Launch releases the ball stuck to the paddle, if any.
func (g *Game) Launch() {
	if !g.acceptsInput() || g.Paddle.StuckBall == nil {
		return
	}
	ball, caught := g.Paddle.Launch(g.cfg.BallSpeed)
	if ball == nil {
		return
	}
	g.emit(EventBallLaunched, ball.Position, 0)
	if caught {
		g.triggerPowerup(PowerupSticky)
	}
}

// Move applies pointer motion: dx slides the paddle, dy aims a stuck ball.
func (g *Game) Move(dx, dy float64) {
	if !g.acceptsInput() {
		return
	}
	g.Paddle.Move(dx)
	g.Paddle.Aim(dy)
}

// SpawnExtraBall adds a ball: stuck to the paddle when it holds none,
// otherwise launched from above it.
func (g *Game) SpawnExtraBall() {
	if g.Lost || g.LoadFailed {
		return
	}
	ball := g.newBall(g.Paddle.Position)
	if g.Paddle.StuckBall == nil {
		g.Paddle.SetStuckBall(ball, false)
		g.Balls = append(g.Balls, ball)
		return
	}

	r := g.cfg.BallRadius
	x := utils.Clamp(g.Paddle.Position.X, r, g.Canvas.Width-r)
	ball.Position = utils.NewVector2(x, g.Paddle.Position.Y-3*r-g.cfg.CollisionMargin)
	spread := (g.rng.Float64() - 0.5) * g.cfg.MaxAimAngle
	angle := utils.Clamp(g.Paddle.AimAngle+spread, -g.cfg.MaxAimAngle, g.cfg.MaxAimAngle)
	ball.Velocity = utils.VectorFromAngle(angle, g.cfg.BallSpeed)
	g.Balls = append(g.Balls, ball)
}

// ActivatePowerup applies a powerup of type t, stacking onto an active one of
// the same type.
func (g *Game) ActivatePowerup(t PowerupType) {
	if !assertf(t.Valid(), "unknown powerup type %d", t) {
		return
	}
	for _, p := range g.Powerups {
		if p.Type == t && p.State == PowerupActive {
			p.AddInstance()
			return
		}
	}
	p := g.newPowerup(t)
	p.Activate()
	if p.State == PowerupActive {
		g.Powerups = append(g.Powerups, p)
	}
}

// ActivePowerup returns the active powerup of type t, or nil.
func (g *Game) ActivePowerup(t PowerupType) *Powerup {
	for _, p := range g.Powerups {
		if p.Type == t && p.State == PowerupActive {
			return p
		}
	}
	return nil
}

func (g *Game) triggerPowerup(t PowerupType) {
	p := g.ActivePowerup(t)
	if p == nil || !p.Trigger() {
		return
	}
	g.emit(EventPowerupExpired, g.Paddle.Position, int(t))
	active := g.Powerups[:0]
	for _, other := range g.Powerups {
		if other != p {
			active = append(active, other)
		}
	}
	g.Powerups = active
}

func (g *Game) newPowerup(t PowerupType) *Powerup {
	switch t {
	case PowerupFireball:
		return NewTimeLimitedPowerup(t, g.cfg.FireballTime, g.cfg.FireballMaxTime,
			func() { g.setFireball(true) },
			func() { g.setFireball(false) })
	case PowerupUltrawide:
		return NewTimeLimitedPowerup(t, g.cfg.UltrawideTime, g.cfg.UltrawideMaxTime,
			func() { g.Paddle.SetUltrawide(true) },
			func() { g.Paddle.SetUltrawide(false) })
	case PowerupSticky:
		return NewRepetitionLimitedPowerup(t, g.cfg.StickyRepetitions, g.cfg.StickyMaxRepetitions,
			func() { g.Paddle.Sticky++ },
			func() { g.Paddle.Sticky-- })
	case PowerupMultiball:
		return NewInstantPowerup(t, func() {
			for i := 0; i < g.cfg.MultiballBalls; i++ {
				g.SpawnExtraBall()
			}
		})
	case PowerupExtraLife:
		return NewInstantPowerup(t, func() {
			g.Lives = utils.MinInt(g.Lives+1, g.cfg.MaxLives)
		})
	}
	return NewInstantPowerup(t, nil)
}

func (g *Game) setFireball(on bool) {
	g.fireball = on
	for _, ball := range g.Balls {
		ball.Fireball = on
		if !on {
			ball.Rotation = 0
		}
	}
}

func (g *Game) TogglePause() {
	g.Paused = !g.Paused
}

// --- Editor hooks ---

// SetEditorMode enters or leaves the level editor. Leaving restarts the game
// on the edited level.
func (g *Game) SetEditorMode(on bool) {
	if g.EditorMode == on {
		return
	}
	g.EditorMode = on
	if !on {
		g.levelText = FormatLevel(g.Canvas.Grid)
		g.LoadFailed = false
		g.Reset()
	}
}

// PlaceBrick sets the cell at (row, col) from a level symbol.
func (g *Game) PlaceBrick(row, col int, symbol rune) error {
	if !g.EditorMode {
		return ErrNotEditing
	}
	if !g.Canvas.Grid.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	brick, err := g.Canvas.NewBrickAt(row, col, symbol)
	if err != nil {
		return err
	}
	g.Canvas.Grid[row][col] = brick
	return nil
}

func (g *Game) EraseBrick(row, col int) error {
	return g.PlaceBrick(row, col, utils.EmptyCell)
}

// LevelText returns the current grid in level text form.
func (g *Game) LevelText() string {
	return FormatLevel(g.Canvas.Grid)
}
