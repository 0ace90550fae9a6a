// File: game/helpers_test.go
package game

import (
	"strings"
	"testing"

	"github.com/lguibr/brickbreaker/utils"
	"github.com/stretchr/testify/require"
)

type cell struct{ row, col int }

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.RandomSeed = 1
	cfg.PowerupChance = 0
	return cfg
}

// levelWith returns level text with the given symbols placed on an empty grid.
func levelWith(cfg utils.Config, cells map[cell]rune) string {
	lines := make([][]rune, cfg.LevelHeight)
	for i := range lines {
		lines[i] = []rune(strings.Repeat(".", cfg.LevelWidth))
	}
	for c, symbol := range cells {
		lines[c.row][c.col] = symbol
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func newTestGame(t *testing.T, cfg utils.Config, level string) *Game {
	t.Helper()
	g, err := NewGame(cfg)
	require.NoError(t, err)
	if level != "" {
		require.NoError(t, g.LoadLevel(level))
	}
	return g
}

func newTestCanvas(cfg utils.Config, cells map[cell]rune) *Canvas {
	canvas := NewCanvas(cfg)
	if err := canvas.LoadLevel(levelWith(cfg, cells)); err != nil {
		panic(err)
	}
	return canvas
}
