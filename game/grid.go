// File: game/grid.go
package game

// Grid is the level brick grid indexed [row][col]. Empty cells are nil.
type Grid [][]*Brick

// NewGrid creates an empty grid with fixed dimensions.
func NewGrid(rows, cols int) Grid {
	grid := make(Grid, rows)
	for i := range grid {
		grid[i] = make([]*Brick, cols)
	}
	return grid
}

func (g Grid) Rows() int { return len(g) }

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.Cols()
}

// At returns the brick at (row, col), or nil when empty or out of bounds.
func (g Grid) At(row, col int) *Brick {
	if !g.InBounds(row, col) {
		return nil
	}
	return g[row][col]
}

// CountDestructible returns how many bricks can still be broken.
func (g Grid) CountDestructible() int {
	count := 0
	for _, row := range g {
		for _, brick := range row {
			if brick != nil && !brick.Indestructible {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the grid and its bricks.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for i, row := range g {
		clone[i] = make([]*Brick, len(row))
		for j, brick := range row {
			clone[i][j] = brick.Clone()
		}
	}
	return clone
}

// copyFrom replaces the contents of g cell by cell, keeping its dimensions.
func (g Grid) copyFrom(src Grid) {
	for i := range g {
		for j := range g[i] {
			g[i][j] = src.At(i, j)
		}
	}
}
