// File: game/powerup.go
package game

import (
	"github.com/lguibr/brickbreaker/utils"
)

type PowerupType int

const (
	PowerupFireball PowerupType = iota
	PowerupUltrawide
	PowerupSticky
	PowerupMultiball
	PowerupExtraLife
	powerupTypeCount
)

// PowerupTypes lists every pickup type in spawn order.
var PowerupTypes = []PowerupType{PowerupFireball, PowerupUltrawide, PowerupSticky, PowerupMultiball, PowerupExtraLife}

func (t PowerupType) String() string {
	switch t {
	case PowerupFireball:
		return "fireball"
	case PowerupUltrawide:
		return "ultrawide"
	case PowerupSticky:
		return "sticky"
	case PowerupMultiball:
		return "multiball"
	case PowerupExtraLife:
		return "extralife"
	}
	return "unknown"
}

func (t PowerupType) Valid() bool {
	return t >= 0 && t < powerupTypeCount
}

// PowerupKind selects how a powerup expires.
type PowerupKind int

const (
	TimeLimited PowerupKind = iota
	RepetitionLimited
	Instant
)

type PowerupState int

const (
	PowerupInactive PowerupState = iota
	PowerupActive
	PowerupExpired
)

// Powerup is a tagged union over the three kinds. Only the fields of its
// Kind are meaningful.
type Powerup struct {
	Type  PowerupType  `json:"type"`
	Kind  PowerupKind  `json:"kind"`
	State PowerupState `json:"state"`

	// TimeLimited
	ActiveTime    float64 `json:"activeTime"`
	EffectTime    float64 `json:"effectTime"`
	MaxEffectTime float64 `json:"maxEffectTime"`

	// RepetitionLimited
	Triggers           int `json:"triggers"`
	RepetitionLimit    int `json:"repetitionLimit"`
	MaxRepetitionLimit int `json:"maxRepetitionLimit"`

	OnActivate   func() `json:"-"`
	OnDeactivate func() `json:"-"`

	baseEffectTime  float64
	baseRepetitions int
}

func NewTimeLimitedPowerup(t PowerupType, effectTime, maxEffectTime float64, onActivate, onDeactivate func()) *Powerup {
	return &Powerup{
		Type:           t,
		Kind:           TimeLimited,
		EffectTime:     effectTime,
		MaxEffectTime:  maxEffectTime,
		OnActivate:     onActivate,
		OnDeactivate:   onDeactivate,
		baseEffectTime: effectTime,
	}
}

func NewRepetitionLimitedPowerup(t PowerupType, repetitions, maxRepetitions int, onActivate, onDeactivate func()) *Powerup {
	return &Powerup{
		Type:               t,
		Kind:               RepetitionLimited,
		RepetitionLimit:    repetitions,
		MaxRepetitionLimit: maxRepetitions,
		OnActivate:         onActivate,
		OnDeactivate:       onDeactivate,
		baseRepetitions:    repetitions,
	}
}

func NewInstantPowerup(t PowerupType, onActivate func()) *Powerup {
	return &Powerup{
		Type:       t,
		Kind:       Instant,
		OnActivate: onActivate,
	}
}

// Activate moves an inactive powerup to active and fires OnActivate. Instant
// powerups expire immediately.
func (p *Powerup) Activate() {
	if p.State != PowerupInactive {
		return
	}
	p.State = PowerupActive
	if p.OnActivate != nil {
		p.OnActivate()
	}
	if p.Kind == Instant {
		p.State = PowerupExpired
	}
}

// Tick advances a time-limited powerup and reports whether it expired during
// this call.
func (p *Powerup) Tick(dt float64) bool {
	if p.Kind != TimeLimited || p.State != PowerupActive {
		return false
	}
	p.ActiveTime += dt
	if p.ActiveTime >= p.EffectTime {
		p.expire()
		return true
	}
	return false
}

// Trigger counts one use of a repetition-limited powerup and reports whether
// it expired during this call.
func (p *Powerup) Trigger() bool {
	if p.Kind != RepetitionLimited || p.State != PowerupActive {
		return false
	}
	p.Triggers++
	if p.Triggers >= p.RepetitionLimit {
		p.expire()
		return true
	}
	return false
}

// AddInstance stacks another pickup of the same type onto an active powerup,
// extending its limit up to the maximum.
func (p *Powerup) AddInstance() {
	switch p.Kind {
	case TimeLimited:
		p.EffectTime += p.baseEffectTime
		if p.MaxEffectTime > 0 && p.EffectTime > p.MaxEffectTime {
			p.EffectTime = p.MaxEffectTime
		}
	case RepetitionLimited:
		p.RepetitionLimit += p.baseRepetitions
		if p.MaxRepetitionLimit > 0 && p.RepetitionLimit > p.MaxRepetitionLimit {
			p.RepetitionLimit = p.MaxRepetitionLimit
		}
	}
}

// Remaining returns the fraction of the effect left, for HUD bars.
func (p *Powerup) Remaining() float64 {
	switch p.Kind {
	case TimeLimited:
		if p.EffectTime <= 0 {
			return 0
		}
		return utils.Clamp(1-p.ActiveTime/p.EffectTime, 0, 1)
	case RepetitionLimited:
		if p.RepetitionLimit <= 0 {
			return 0
		}
		return utils.Clamp(1-float64(p.Triggers)/float64(p.RepetitionLimit), 0, 1)
	}
	return 0
}

func (p *Powerup) expire() {
	if p.State == PowerupExpired {
		return
	}
	p.State = PowerupExpired
	if p.OnDeactivate != nil {
		p.OnDeactivate()
	}
}

// FallingPowerup is a pickup dropped by a destroyed brick.
type FallingPowerup struct {
	Type      PowerupType   `json:"type"`
	Position  utils.Vector2 `json:"position"` // Center
	Animation float64       `json:"animation"`
}

func (f *FallingPowerup) Update(dt, fallSpeed float64) {
	f.Position.Y += fallSpeed * dt
	f.Animation += dt
}

func (f *FallingPowerup) Rect(size float64) Rect {
	half := size / 2
	return Rect{
		Min: utils.NewVector2(f.Position.X-half, f.Position.Y-half),
		Max: utils.NewVector2(f.Position.X+half, f.Position.Y+half),
	}
}
