// File: game/brick.go
package game

import (
	"github.com/lguibr/brickbreaker/utils"
)

// Rect is an axis-aligned rectangle in draw coordinates (y grows downward).
type Rect struct {
	Min utils.Vector2 `json:"min"`
	Max utils.Vector2 `json:"max"`
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() utils.Vector2 {
	return utils.NewVector2((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// ClosestPoint clamps p to the rectangle.
func (r Rect) ClosestPoint(p utils.Vector2) utils.Vector2 {
	return utils.ClosestPointOnRect(p, r.Min, r.Max)
}

// IntersectsCircle reports whether the circle overlaps the rectangle.
// Touching exactly is not an overlap.
func (r Rect) IntersectsCircle(center utils.Vector2, radius float64) bool {
	return r.ClosestPoint(center).Distance(center) < radius
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X < other.Max.X && other.Min.X < r.Max.X &&
		r.Min.Y < other.Max.Y && other.Min.Y < r.Max.Y
}

func (r Rect) ContainsPoint(p utils.Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Brick is one occupied cell of the level grid.
type Brick struct {
	Row            int           `json:"row"`
	Col            int           `json:"col"`
	Health         int           `json:"health"`
	Score          int           `json:"score"`
	Variant        int           `json:"variant"`
	Indestructible bool          `json:"indestructible"`
	UpperLeft      utils.Vector2 `json:"upperLeft"`
	UpperRight     utils.Vector2 `json:"upperRight"`
	BottomLeft     utils.Vector2 `json:"bottomLeft"`
	BottomRight    utils.Vector2 `json:"bottomRight"`

	width, height float64
}

// NewBrick creates a destructible brick of the given variant (1-12).
func NewBrick(row, col, variant, health, score int, upperLeft utils.Vector2, width, height float64) *Brick {
	b := &Brick{
		Row:     row,
		Col:     col,
		Health:  health,
		Score:   score,
		Variant: variant,
		width:   width,
		height:  height,
	}
	b.SetPosition(upperLeft)
	return b
}

// NewIndestructibleBrick creates a brick that is never damaged.
func NewIndestructibleBrick(row, col int, upperLeft utils.Vector2, width, height float64) *Brick {
	b := &Brick{
		Row:            row,
		Col:            col,
		Indestructible: true,
		width:          width,
		height:         height,
	}
	b.SetPosition(upperLeft)
	return b
}

// SetPosition moves the brick, recomputing all four corners together.
func (b *Brick) SetPosition(upperLeft utils.Vector2) {
	b.UpperLeft = upperLeft
	b.UpperRight = utils.NewVector2(upperLeft.X+b.width, upperLeft.Y)
	b.BottomLeft = utils.NewVector2(upperLeft.X, upperLeft.Y+b.height)
	b.BottomRight = utils.NewVector2(upperLeft.X+b.width, upperLeft.Y+b.height)
}

func (b *Brick) Width() float64  { return b.width }
func (b *Brick) Height() float64 { return b.height }

func (b *Brick) Rect() Rect {
	return Rect{Min: b.UpperLeft, Max: b.BottomRight}
}

func (b *Brick) Center() utils.Vector2 {
	return b.Rect().Center()
}

// IntersectsBall reports whether a ball of the given radius overlaps the brick.
func (b *Brick) IntersectsBall(center utils.Vector2, radius float64) bool {
	return b.Rect().IntersectsCircle(center, radius)
}

// Hit applies one hit and reports whether the brick was destroyed.
// A fireball destroys any destructible brick outright.
func (b *Brick) Hit(fireball bool) bool {
	if b.Indestructible {
		return false
	}
	if fireball {
		b.Health = 0
	} else {
		b.Health--
	}
	return b.Health <= 0
}

// Clone returns a deep copy of the brick.
func (b *Brick) Clone() *Brick {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Symbol returns the level text character for the brick.
func (b *Brick) Symbol() rune {
	if b == nil {
		return utils.EmptyCell
	}
	if b.Indestructible {
		return utils.IndestructibleCell
	}
	if b.Variant <= 9 {
		return rune('0' + b.Variant)
	}
	return rune('A' + b.Variant - 10)
}
