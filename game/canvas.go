// File: game/canvas.go
package game

import (
	"math"

	"github.com/lguibr/brickbreaker/utils"
)

// Canvas is the play field: its size, the brick grid and the transforms
// between draw coordinates and grid cells.
type Canvas struct {
	Grid        Grid    `json:"grid"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	OffsetX     float64 `json:"offsetX"`
	OffsetY     float64 `json:"offsetY"`
	BrickWidth  float64 `json:"brickWidth"`
	BrickHeight float64 `json:"brickHeight"`

	brickHealth int
	brickScore  int
}

func NewCanvas(cfg utils.Config) *Canvas {
	return &Canvas{
		Grid:        NewGrid(cfg.LevelHeight, cfg.LevelWidth),
		Width:       float64(cfg.CanvasWidth),
		Height:      float64(cfg.CanvasHeight),
		OffsetX:     float64(cfg.LevelOffsetX),
		OffsetY:     float64(cfg.LevelOffsetY),
		BrickWidth:  float64(cfg.BrickWidth),
		BrickHeight: float64(cfg.BrickHeight),
		brickHealth: cfg.BrickHealth,
		brickScore:  cfg.BrickScore,
	}
}

func (c *Canvas) Rows() int { return c.Grid.Rows() }
func (c *Canvas) Cols() int { return c.Grid.Cols() }

// DrawCoordsFromBrickCoords returns the upper-left corner of a grid cell.
func (c *Canvas) DrawCoordsFromBrickCoords(row, col int) utils.Vector2 {
	return utils.NewVector2(
		c.OffsetX+float64(col)*c.BrickWidth,
		c.OffsetY+float64(row)*c.BrickHeight,
	)
}

// BrickCoordsFromDrawCoords returns the cell containing p. The result may lie
// outside the grid.
func (c *Canvas) BrickCoordsFromDrawCoords(p utils.Vector2) (row, col int) {
	row = int(math.Floor((p.Y - c.OffsetY) / c.BrickHeight))
	col = int(math.Floor((p.X - c.OffsetX) / c.BrickWidth))
	return row, col
}

// NewBrickAt builds the brick for a level symbol at (row, col). A nil brick
// with a nil error means an empty cell.
func (c *Canvas) NewBrickAt(row, col int, symbol rune) (*Brick, error) {
	upperLeft := c.DrawCoordsFromBrickCoords(row, col)
	switch {
	case symbol == utils.EmptyCell:
		return nil, nil
	case symbol == utils.IndestructibleCell:
		return NewIndestructibleBrick(row, col, upperLeft, c.BrickWidth, c.BrickHeight), nil
	}
	variant, ok := variantFromSymbol(symbol)
	if !ok {
		return nil, errUnknownSymbol(symbol)
	}
	return NewBrick(row, col, variant, c.brickHealth, c.brickScore, upperLeft, c.BrickWidth, c.BrickHeight), nil
}

// Bounds returns the rectangle covered by the grid.
func (c *Canvas) Bounds() Rect {
	return Rect{
		Min: utils.NewVector2(c.OffsetX, c.OffsetY),
		Max: utils.NewVector2(
			c.OffsetX+float64(c.Cols())*c.BrickWidth,
			c.OffsetY+float64(c.Rows())*c.BrickHeight,
		),
	}
}
