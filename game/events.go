// File: game/events.go
package game

import "github.com/lguibr/brickbreaker/utils"

type EventType int

const (
	EventBrickHit EventType = iota
	EventBrickDestroyed
	EventPaddleBounce
	EventBallCaught
	EventBallLaunched
	EventWallBounce
	EventBallLost
	EventLifeLost
	EventPowerupSpawned
	EventPowerupPicked
	EventPowerupExpired
	EventGameWon
	EventGameLost
)

var eventNames = [...]string{
	EventBrickHit:       "brick_hit",
	EventBrickDestroyed: "brick_destroyed",
	EventPaddleBounce:   "paddle_bounce",
	EventBallCaught:     "ball_caught",
	EventBallLaunched:   "ball_launched",
	EventWallBounce:     "wall_bounce",
	EventBallLost:       "ball_lost",
	EventLifeLost:       "life_lost",
	EventPowerupSpawned: "powerup_spawned",
	EventPowerupPicked:  "powerup_picked",
	EventPowerupExpired: "powerup_expired",
	EventGameWon:        "game_won",
	EventGameLost:       "game_lost",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is something audible or visible that happened during a tick.
// Value carries the score delta, powerup type or remaining lives.
type Event struct {
	Type     EventType     `json:"type"`
	Position utils.Vector2 `json:"position"`
	Value    int           `json:"value"`
}

// maxPendingEvents bounds the queue when nobody drains it.
const maxPendingEvents = 256
