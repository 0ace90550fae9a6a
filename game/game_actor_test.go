// File: game/game_actor_test.go
package game

import (
	"testing"
	"time"

	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const askTimeout = time.Second

func spawnGameActor(t *testing.T, tickPeriod time.Duration) (*bollywood.Engine, *bollywood.PID) {
	t.Helper()
	cfg := testConfig()
	g := newTestGame(t, cfg, levelWith(cfg, map[cell]rune{{0, 0}: '1', {1, 1}: '2'}))
	engine := bollywood.NewEngine()
	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, g, tickPeriod)))
	require.NotNil(t, pid)
	t.Cleanup(func() { engine.Shutdown(askTimeout) })
	return engine, pid
}

func askSnapshot(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID) Snapshot {
	t.Helper()
	resp, err := engine.Ask(pid, GetSnapshotRequest{}, askTimeout)
	require.NoError(t, err)
	snap, ok := resp.(Snapshot)
	require.True(t, ok, "unexpected response %T", resp)
	return snap
}

func TestGameActor_CommandsAndSnapshot(t *testing.T) {
	engine, pid := spawnGameActor(t, 0)

	engine.Send(pid, MoveCommand{DX: -100, DY: 20}, nil)
	engine.Send(pid, LaunchCommand{}, nil)
	engine.Send(pid, TickCommand{Dt: 1.0 / 60}, nil)

	snap := askSnapshot(t, engine, pid)
	require.Len(t, snap.Balls, 1)
	assert.False(t, snap.Balls[0].Stuck)
	assert.False(t, snap.Paddle.HasStuckBall)
	assert.Greater(t, snap.Time, 0.0)
	assert.Greater(t, snap.Balls[0].Velocity.X, 0.0, "aimed right before launch")

	resp, err := engine.Ask(pid, DrainEventsRequest{}, askTimeout)
	require.NoError(t, err)
	events, ok := resp.([]Event)
	require.True(t, ok)
	require.NotEmpty(t, events)
	assert.Equal(t, EventBallLaunched, events[0].Type)
}

func TestGameActor_LoadLevel(t *testing.T) {
	engine, pid := spawnGameActor(t, 0)

	resp, err := engine.Ask(pid, LoadLevelRequest{Text: "bad"}, askTimeout)
	require.NoError(t, err)
	assert.ErrorIs(t, resp.(LoadLevelResponse).Err, ErrLevelFormat)
	assert.True(t, askSnapshot(t, engine, pid).LoadFailed)

	cfg := testConfig()
	level := levelWith(cfg, map[cell]rune{{2, 2}: '*', {3, 3}: '4'})
	resp, err = engine.Ask(pid, LoadLevelRequest{Text: level}, askTimeout)
	require.NoError(t, err)
	assert.NoError(t, resp.(LoadLevelResponse).Err)

	resp, err = engine.Ask(pid, GetLevelTextRequest{}, askTimeout)
	require.NoError(t, err)
	assert.Equal(t, level, resp)
}

func TestGameActor_Editor(t *testing.T) {
	engine, pid := spawnGameActor(t, 0)

	engine.Send(pid, SetEditorModeCommand{Enabled: true}, nil)
	resp, err := engine.Ask(pid, EditCellRequest{Row: 4, Col: 4, Symbol: 'A'}, askTimeout)
	require.NoError(t, err)
	require.NoError(t, resp.(EditCellResponse).Err)
	resp, err = engine.Ask(pid, EditCellRequest{Row: 0, Col: 0}, askTimeout)
	require.NoError(t, err)
	require.NoError(t, resp.(EditCellResponse).Err)

	snap := askSnapshot(t, engine, pid)
	assert.True(t, snap.EditorMode)
	assert.Nil(t, snap.Bricks[0][0])
	require.NotNil(t, snap.Bricks[4][4])
	assert.Equal(t, 10, snap.Bricks[4][4].Variant)
}

func TestGameActor_TickerAdvancesTime(t *testing.T) {
	engine, pid := spawnGameActor(t, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		resp, err := engine.Ask(pid, GetSnapshotRequest{}, askTimeout)
		if err != nil {
			return false
		}
		snap, ok := resp.(Snapshot)
		return ok && snap.Time > 0
	}, askTimeout, 10*time.Millisecond)

	engine.Stop(pid)
	assert.Eventually(t, func() bool { return engine.ActorCount() == 0 }, askTimeout, 5*time.Millisecond)
}
