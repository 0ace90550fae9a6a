// File: terminal/terminal_test.go
package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/brickbreaker/app"
	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnGame(t *testing.T, a *app.App, level string) (*bollywood.Engine, *bollywood.PID) {
	t.Helper()
	g, err := a.NewGame(context.Background(), level)
	require.NoError(t, err)
	engine := bollywood.NewEngine()
	pid := engine.Spawn(bollywood.NewProps(game.NewGameActorProducer(engine, g, 0)))
	require.NotNil(t, pid)
	t.Cleanup(func() { engine.Shutdown(time.Second) })
	return engine, pid
}

func testApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.Open(context.Background(), app.Options{})
	require.NoError(t, err)
	a.Config.PowerupChance = 0
	a.Config.RandomSeed = 1
	t.Cleanup(a.Close)
	return a
}

func TestRunHeadless_AutopilotPlays(t *testing.T) {
	a := testApp(t)
	engine, pid := spawnGame(t, a, "classic")

	opts := DefaultHeadlessOptions()
	opts.Ticks = 300
	var out bytes.Buffer
	snap, err := RunHeadless(engine, pid, opts, &out)
	require.NoError(t, err)

	assert.InDelta(t, 300*opts.Dt, snap.Time, 1e-6)
	assert.Positive(t, snap.Score)
	assert.Equal(t, a.Config.InitialLives, snap.Lives)
	assert.False(t, snap.Lost)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, opts.Rows+1)
	assert.Len(t, lines[0], opts.Cols)
	assert.Contains(t, lines[opts.Rows], "score ")
}

func TestRunHeadless_WithoutAutopilotKeepsBall(t *testing.T) {
	a := testApp(t)
	engine, pid := spawnGame(t, a, "classic")

	opts := DefaultHeadlessOptions()
	opts.Ticks = 30
	opts.Autopilot = false
	snap, err := RunHeadless(engine, pid, opts, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, snap.Paddle.HasStuckBall)
	assert.Zero(t, snap.Score)
}

func newTestUI(t *testing.T) *UI {
	a := testApp(t)
	engine, pid := spawnGame(t, a, "classic")
	return NewUI(nil, engine, pid, a, nil, "classic", "tester")
}

func TestMapKey(t *testing.T) {
	u := newTestUI(t)
	testCases := []struct {
		name string
		key  tcell.Key
		r    rune
		msg  interface{}
		ctrl control
	}{
		{"escape quits", tcell.KeyEscape, 0, nil, controlQuit},
		{"q quits", tcell.KeyRune, 'q', nil, controlQuit},
		{"left", tcell.KeyLeft, 0, game.MoveCommand{DX: -keyStep}, controlNone},
		{"right", tcell.KeyRight, 0, game.MoveCommand{DX: keyStep}, controlNone},
		{"up aims", tcell.KeyUp, 0, game.MoveCommand{DY: -aimStep}, controlNone},
		{"space launches", tcell.KeyRune, ' ', game.LaunchCommand{}, controlNone},
		{"pause", tcell.KeyRune, 'p', game.TogglePauseCommand{}, controlNone},
		{"reset", tcell.KeyRune, 'r', game.ResetCommand{}, controlNone},
		{"spawn ball", tcell.KeyRune, 'm', game.SpawnBallCommand{}, controlNone},
		{"f1 fireball", tcell.KeyF1, 0, game.ActivatePowerupCommand{Type: game.PowerupFireball}, controlNone},
		{"f5 extra life", tcell.KeyF5, 0, game.ActivatePowerupCommand{Type: game.PowerupExtraLife}, controlNone},
		{"save outside editor", tcell.KeyRune, 's', nil, controlNone},
		{"unbound", tcell.KeyTab, 0, nil, controlNone},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ctrl := u.mapKey(tc.key, tc.r)
			assert.Equal(t, tc.msg, msg)
			assert.Equal(t, tc.ctrl, ctrl)
		})
	}
}

func TestMapKey_Editor(t *testing.T) {
	u := newTestUI(t)

	msg, _ := u.mapKey(tcell.KeyRune, 'e')
	assert.Equal(t, game.SetEditorModeCommand{Enabled: true}, msg)

	msg, _ = u.mapKey(tcell.KeyRune, 'b')
	assert.Nil(t, msg)
	assert.Equal(t, 'b', u.symbol)

	_, ctrl := u.mapKey(tcell.KeyRune, 's')
	assert.Equal(t, controlSave, ctrl)

	msg, _ = u.mapKey(tcell.KeyRune, 'e')
	assert.Equal(t, game.SetEditorModeCommand{Enabled: false}, msg)
}

func TestEditAt(t *testing.T) {
	u := newTestUI(t)
	u.game.send(game.SetEditorModeCommand{Enabled: true})

	p := u.canvas.DrawCoordsFromBrickCoords(0, 0)
	u.symbol = '*'
	u.editAt(tcell.Button1, p.X+1, p.Y+1)
	require.Empty(t, u.status)

	text, err := u.game.levelText()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "*"))

	u.editAt(tcell.Button3, p.X+1, p.Y+1)
	text, err = u.game.levelText()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "."))

	// Outside the grid is ignored.
	u.editAt(tcell.Button1, 1, 1)
	assert.Empty(t, u.status)
}

func TestCellToDraw(t *testing.T) {
	x, y := cellToDraw(0, 0, 80, 32, 800, 640)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
	x, y = cellToDraw(79, 31, 80, 32, 800, 640)
	assert.InDelta(t, 795.0, x, 1e-9)
	assert.InDelta(t, 630.0, y, 1e-9)
}

type recorder map[[2]int]rune

func (r recorder) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	r[[2]int{x, y}] = primary
}

func TestDrawPixels_SkipsBackground(t *testing.T) {
	rec := recorder{}
	drawPixels(rec, [][]render.RGBPixel{
		{render.Background, render.BallColor},
		{render.Background, render.Background},
	})
	assert.Equal(t, recorder{{1, 0}: render.Glyph(render.BallColor)}, rec)
}

func TestHudLine(t *testing.T) {
	snap := game.Snapshot{Score: 40, Lives: 2, Time: 1.25, Paused: true}
	line := hudLine(snap, "classic", '1', "")
	assert.Contains(t, line, "score 40")
	assert.Contains(t, line, "lives 2")
	assert.Contains(t, line, "PAUSED")

	snap.EditorMode = true
	assert.Contains(t, hudLine(snap, "classic", 'A', "saved"), "EDITOR brick A")
}
