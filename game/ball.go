// File: game/ball.go
package game

import (
	"github.com/lguibr/brickbreaker/utils"
)

type Ball struct {
	Id       int           `json:"id"`
	Position utils.Vector2 `json:"position"`
	Velocity utils.Vector2 `json:"velocity"`
	Rotation float64       `json:"rotation"` // Fireball spin, radians
	Stuck    bool          `json:"stuck"`
	Fireball bool          `json:"fireball"`
	Collided bool          `json:"collided"` // Already hit a brick or the paddle this tick
}

func NewBall(id int, position utils.Vector2) *Ball {
	return &Ball{
		Id:       id,
		Position: position,
	}
}

// Move integrates the position over dt seconds. Stuck balls do not move.
func (b *Ball) Move(dt float64) {
	if b.Stuck {
		return
	}
	b.Position.Add(b.Velocity.Times(dt))
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}
