// File: app/app_test.go
package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestApp(t *testing.T) *App {
	t.Helper()
	a, err := Open(context.Background(), Options{LevelsDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestOpen_Defaults(t *testing.T) {
	a := openTestApp(t)
	assert.Equal(t, 15, a.Config.LevelWidth)
	names, err := a.LevelNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"classic", "checker", "fortress"}, names)
}

func TestOpen_BadConfigPath(t *testing.T) {
	_, err := Open(context.Background(), Options{ConfigPath: "/nonexistent/brickbreaker.yaml"})
	assert.Error(t, err)
}

func TestNewGame_FromPack(t *testing.T) {
	a := openTestApp(t)
	g, err := a.NewGame(context.Background(), "classic")
	require.NoError(t, err)
	assert.False(t, g.LoadFailed)
	assert.Positive(t, g.Canvas.Grid.CountDestructible())
	require.NotNil(t, g.Paddle.StuckBall)
}

func TestNewGame_UnknownLevel(t *testing.T) {
	a := openTestApp(t)
	_, err := a.NewGame(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSaveLevel_RoundTrip(t *testing.T) {
	ctx := context.Background()
	a := openTestApp(t)
	g, err := a.NewGame(ctx, "classic")
	require.NoError(t, err)

	g.SetEditorMode(true)
	require.NoError(t, g.PlaceBrick(0, 0, '*'))
	require.NoError(t, a.SaveLevel(ctx, "mine", g))

	names, err := a.LevelNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "mine")

	text, err := a.LoadLevel(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, g.LevelText(), text)
	assert.Equal(t, '*', []rune(text)[0])
}

func TestSubmitResult(t *testing.T) {
	ctx := context.Background()
	a := openTestApp(t)
	g, err := a.NewGame(ctx, "classic")
	require.NoError(t, err)

	snap := g.Snapshot()
	require.NoError(t, a.SubmitResult(ctx, "p1", "classic", snap))
	top, err := a.Scores.Top(ctx, "classic", 10)
	require.NoError(t, err)
	assert.Empty(t, top, "unfinished games are not recorded")

	snap.Lost = true
	snap.Score = 120
	require.NoError(t, a.SubmitResult(ctx, "p1", "classic", snap))
	top, err = a.Scores.Top(ctx, "classic", 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 120, top[0].Score)
	assert.Equal(t, snap.SessionID, top[0].SessionID)
}

