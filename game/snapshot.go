// File: game/snapshot.go
package game

import "github.com/google/uuid"

// PaddleState is the render view of the paddle.
type PaddleState struct {
	Rect         Rect    `json:"rect"`
	AimAngle     float64 `json:"aimAngle"`
	Sticky       bool    `json:"sticky"`
	HasStuckBall bool    `json:"hasStuckBall"`
}

// PowerupStatus is the HUD view of an active powerup.
type PowerupStatus struct {
	Type      PowerupType `json:"type"`
	Kind      PowerupKind `json:"kind"`
	Remaining float64     `json:"remaining"`
}

// Snapshot is a deep copy of everything a renderer needs. It shares no memory
// with the Game it came from.
type Snapshot struct {
	SessionID   uuid.UUID        `json:"sessionId"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	BallRadius  float64          `json:"ballRadius"`
	PowerupSize float64          `json:"powerupSize"`
	Bricks      Grid             `json:"bricks"`
	Balls       []Ball           `json:"balls"`
	Paddle      PaddleState      `json:"paddle"`
	Powerups    []PowerupStatus  `json:"powerups"`
	Falling     []FallingPowerup `json:"falling"`
	Score       int              `json:"score"`
	Lives       int              `json:"lives"`
	Time        float64          `json:"time"`
	Paused      bool             `json:"paused"`
	EditorMode  bool             `json:"editorMode"`
	Won         bool             `json:"won"`
	Lost        bool             `json:"lost"`
	LoadFailed  bool             `json:"loadFailed"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		SessionID:   g.SessionID,
		Width:       g.Canvas.Width,
		Height:      g.Canvas.Height,
		BallRadius:  g.cfg.BallRadius,
		PowerupSize: g.cfg.PowerupSize,
		Bricks:      g.Canvas.Grid.Clone(),
		Balls:       make([]Ball, 0, len(g.Balls)),
		Paddle: PaddleState{
			Rect:         g.Paddle.Rect(),
			AimAngle:     g.Paddle.AimAngle,
			Sticky:       g.Paddle.Sticky > 0,
			HasStuckBall: g.Paddle.StuckBall != nil,
		},
		Powerups:   make([]PowerupStatus, 0, len(g.Powerups)),
		Falling:    make([]FallingPowerup, 0, len(g.Falling)),
		Score:      g.Score,
		Lives:      g.Lives,
		Time:       g.Time,
		Paused:     g.Paused,
		EditorMode: g.EditorMode,
		Won:        g.Won,
		Lost:       g.Lost,
		LoadFailed: g.LoadFailed,
	}
	for _, b := range g.Balls {
		s.Balls = append(s.Balls, *b)
	}
	for _, p := range g.Powerups {
		s.Powerups = append(s.Powerups, PowerupStatus{Type: p.Type, Kind: p.Kind, Remaining: p.Remaining()})
	}
	for _, f := range g.Falling {
		s.Falling = append(s.Falling, *f)
	}
	return s
}
