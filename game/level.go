// File: game/level.go
package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lguibr/brickbreaker/utils"
)

// ErrLevelFormat is wrapped by every level text parse error.
var ErrLevelFormat = errors.New("invalid level format")

func errUnknownSymbol(symbol rune) error {
	return fmt.Errorf("%w: unknown cell symbol %q", ErrLevelFormat, symbol)
}

// variantFromSymbol maps 1-9 and A-C (either case) to variants 1-12.
func variantFromSymbol(symbol rune) (int, bool) {
	switch {
	case symbol >= '1' && symbol <= '9':
		return int(symbol - '0'), true
	case symbol >= 'a' && symbol <= 'c':
		return int(symbol-'a') + 10, true
	case symbol >= 'A' && symbol <= 'C':
		return int(symbol-'A') + 10, true
	}
	return 0, false
}

// ParseLevel builds a fresh grid for the canvas from level text: exactly one
// line per row and one character per column, a single trailing newline
// allowed.
func ParseLevel(canvas *Canvas, text string) (Grid, error) {
	rows, cols := canvas.Rows(), canvas.Cols()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if len(lines) != rows {
		return nil, fmt.Errorf("%w: expected %d lines, got %d", ErrLevelFormat, rows, len(lines))
	}

	grid := NewGrid(rows, cols)
	for row, line := range lines {
		if n := utf8.RuneCountInString(line); n != cols {
			return nil, fmt.Errorf("%w: line %d has %d characters, expected %d", ErrLevelFormat, row+1, n, cols)
		}
		col := 0
		for _, symbol := range line {
			brick, err := canvas.NewBrickAt(row, col, symbol)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", row+1, col+1, err)
			}
			grid[row][col] = brick
			col++
		}
	}
	return grid, nil
}

// LoadLevel parses text into the canvas grid. On error the grid is left
// untouched.
func (c *Canvas) LoadLevel(text string) error {
	grid, err := ParseLevel(c, text)
	if err != nil {
		return err
	}
	c.Grid.copyFrom(grid)
	return nil
}

// FormatLevel is the inverse of ParseLevel.
func FormatLevel(grid Grid) string {
	var sb strings.Builder
	for _, row := range grid {
		for _, brick := range row {
			sb.WriteRune(brick.Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// EmptyLevel returns level text with no bricks for the given dimensions.
func EmptyLevel(rows, cols int) string {
	line := strings.Repeat(string(utils.EmptyCell), cols) + "\n"
	return strings.Repeat(line, rows)
}
