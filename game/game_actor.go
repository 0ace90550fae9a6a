// File: game/game_actor.go
package game

import (
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lguibr/brickbreaker/bollywood"
)

// GameActor owns a Game and confines every mutation of it to the actor
// goroutine.
type GameActor struct {
	engine       *bollywood.Engine
	game         *Game
	selfPID      *bollywood.PID
	tickPeriod   time.Duration
	ticker       *time.Ticker
	stopTickerCh chan struct{}
	stopOnce     sync.Once
	lastTick     time.Time
	events       []Event
}

// NewGameActorProducer hands g over to a new GameActor. The caller must not
// touch g afterwards. A zero tickPeriod disables the internal ticker; the
// host then drives time with TickCommand.
func NewGameActorProducer(engine *bollywood.Engine, g *Game, tickPeriod time.Duration) bollywood.Producer {
	return func() bollywood.Actor {
		return &GameActor{
			engine:       engine,
			game:         g,
			tickPeriod:   tickPeriod,
			stopTickerCh: make(chan struct{}),
		}
	}
}

func (a *GameActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch m := ctx.Message().(type) {
	case bollywood.Started:
		log.Printf("GameActor %s: started for session %s", a.selfPID, a.game.SessionID)
		if a.tickPeriod > 0 {
			a.lastTick = time.Now()
			a.ticker = time.NewTicker(a.tickPeriod)
			go a.runTickerLoop()
		}

	case GameTick:
		now := time.Now()
		dt := now.Sub(a.lastTick).Seconds()
		a.lastTick = now
		a.step(dt)

	case TickCommand:
		a.step(m.Dt)

	case LaunchCommand:
		a.game.Launch()
		a.collectEvents()

	case MoveCommand:
		a.game.Move(m.DX, m.DY)

	case SpawnBallCommand:
		a.game.SpawnExtraBall()

	case ActivatePowerupCommand:
		a.game.ActivatePowerup(m.Type)
		a.collectEvents()

	case TogglePauseCommand:
		a.game.TogglePause()
		// Avoid a catch-up jump after unpausing.
		a.lastTick = time.Now()

	case ResetCommand:
		a.game.Reset()
		a.events = nil

	case SetEditorModeCommand:
		a.game.SetEditorMode(m.Enabled)

	case GetSnapshotRequest:
		ctx.Respond(a.game.Snapshot())

	case DrainEventsRequest:
		a.collectEvents()
		events := a.events
		a.events = nil
		ctx.Respond(events)

	case LoadLevelRequest:
		err := a.game.LoadLevel(m.Text)
		a.events = nil
		ctx.Respond(LoadLevelResponse{Err: err})

	case EditCellRequest:
		var err error
		if m.Symbol == 0 {
			err = a.game.EraseBrick(m.Row, m.Col)
		} else {
			err = a.game.PlaceBrick(m.Row, m.Col, m.Symbol)
		}
		ctx.Respond(EditCellResponse{Err: err})

	case GetLevelTextRequest:
		ctx.Respond(a.game.LevelText())

	case bollywood.Stopping:
		log.Printf("GameActor %s: stopping", a.selfPID)
		a.stopTicker()

	case bollywood.Stopped:

	default:
		log.Printf("WARN: GameActor %s: unknown message type %T", a.selfPID, m)
	}
}

func (a *GameActor) step(dt float64) {
	a.game.Update(dt)
	a.collectEvents()
}

func (a *GameActor) collectEvents() {
	events := a.game.DrainEvents()
	if len(events) == 0 {
		return
	}
	a.events = append(a.events, events...)
	if over := len(a.events) - maxPendingEvents; over > 0 {
		a.events = a.events[over:]
	}
}

func (a *GameActor) stopTicker() {
	a.stopOnce.Do(func() {
		if a.ticker != nil {
			a.ticker.Stop()
		}
		close(a.stopTickerCh)
	})
}

// runTickerLoop sends GameTick messages to the actor's own mailbox.
func (a *GameActor) runTickerLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: GameActor %s: ticker loop panicked: %v\n%s", a.selfPID, r, debug.Stack())
		}
	}()

	pid := a.selfPID
	tick := GameTick{}
	for {
		select {
		case <-a.stopTickerCh:
			return
		case <-a.ticker.C:
			select {
			case <-a.stopTickerCh:
				return
			default:
				a.engine.Send(pid, tick, nil)
			}
		}
	}
}
