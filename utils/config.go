// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	TickPeriodMs int     `json:"tickPeriodMs" mapstructure:"tickPeriodMs"` // Actor tick period in milliseconds
	MaxTickDelta float64 `json:"maxTickDelta" mapstructure:"maxTickDelta"` // Largest dt (seconds) fed into one update

	// Canvas & Level Grid
	CanvasWidth  int `json:"canvasWidth" mapstructure:"canvasWidth"`   // Play field width in draw units
	CanvasHeight int `json:"canvasHeight" mapstructure:"canvasHeight"` // Play field height in draw units
	LevelWidth   int `json:"levelWidth" mapstructure:"levelWidth"`     // Number of brick columns
	LevelHeight  int `json:"levelHeight" mapstructure:"levelHeight"`   // Number of brick rows
	BrickWidth   int `json:"brickWidth" mapstructure:"brickWidth"`     // Brick width in draw units
	BrickHeight  int `json:"brickHeight" mapstructure:"brickHeight"`   // Brick height in draw units
	LevelOffsetX int `json:"levelOffsetX" mapstructure:"-"`            // Calculated: centers the grid horizontally
	LevelOffsetY int `json:"levelOffsetY" mapstructure:"levelOffsetY"` // Distance between the top wall and the first row
	BrickHealth  int `json:"brickHealth" mapstructure:"brickHealth"`   // Health of a destructible brick
	BrickScore   int `json:"brickScore" mapstructure:"brickScore"`     // Base score of a destructible brick

	// Ball Physics & Properties
	BallRadius              float64 `json:"ballRadius" mapstructure:"ballRadius"`                           // Radius of every ball
	BallSpeed               float64 `json:"ballSpeed" mapstructure:"ballSpeed"`                             // Fixed ball speed (units per second)
	CollisionMargin         float64 `json:"collisionMargin" mapstructure:"collisionMargin"`                 // Extra push-out after a brick/paddle hit
	SpeedTolerance          float64 `json:"speedTolerance" mapstructure:"speedTolerance"`                   // Allowed speed drift before a diagnostic
	SeparationStep          float64 `json:"separationStep" mapstructure:"separationStep"`                   // Seconds of travel per ball-ball separation nudge
	SeparationMaxIterations int     `json:"separationMaxIterations" mapstructure:"separationMaxIterations"` // Cap on the ball-ball separation loop
	AxisNudgeAngle          float64 `json:"axisNudgeAngle" mapstructure:"axisNudgeAngle"`                   // Radians added to axis-aligned trajectories
	FireballSpinSpeed       float64 `json:"fireballSpinSpeed" mapstructure:"fireballSpinSpeed"`             // Radians per second

	// Paddle Properties
	PaddleWidth          float64 `json:"paddleWidth" mapstructure:"paddleWidth"`                   // Default paddle width
	PaddleUltrawideWidth float64 `json:"paddleUltrawideWidth" mapstructure:"paddleUltrawideWidth"` // Width while ultrawide is active
	PaddleHeight         float64 `json:"paddleHeight" mapstructure:"paddleHeight"`                 // Thickness of the paddle
	PaddleBottomOffset   float64 `json:"paddleBottomOffset" mapstructure:"paddleBottomOffset"`     // Distance between the paddle top and the canvas bottom
	PaddleMargin         float64 `json:"paddleMargin" mapstructure:"paddleMargin"`                 // Minimum distance between paddle body and side walls
	PaddleTransitionTime float64 `json:"paddleTransitionTime" mapstructure:"paddleTransitionTime"` // Seconds to grow/shrink to ultrawide
	PaddleBounceAngle    float64 `json:"paddleBounceAngle" mapstructure:"paddleBounceAngle"`       // Max outgoing angle from vertical (radians)
	MaxAimAngle          float64 `json:"maxAimAngle" mapstructure:"maxAimAngle"`                   // Aim cone half-angle (radians)
	AimSensitivity       float64 `json:"aimSensitivity" mapstructure:"aimSensitivity"`             // Radians per unit of vertical motion

	// Lives & Scoring
	InitialLives int `json:"initialLives" mapstructure:"initialLives"`
	MaxLives     int `json:"maxLives" mapstructure:"maxLives"`

	// Power-ups
	PowerupChance        float64 `json:"powerupChance" mapstructure:"powerupChance"`               // Percent chance (0-100) to drop on brick break
	PowerupFallSpeed     float64 `json:"powerupFallSpeed" mapstructure:"powerupFallSpeed"`         // Units per second
	PowerupSize          float64 `json:"powerupSize" mapstructure:"powerupSize"`                   // Side of the falling powerup square
	FireballTime         float64 `json:"fireballTime" mapstructure:"fireballTime"`                 // Seconds per fireball pickup
	FireballMaxTime      float64 `json:"fireballMaxTime" mapstructure:"fireballMaxTime"`           // Stacking cap
	UltrawideTime        float64 `json:"ultrawideTime" mapstructure:"ultrawideTime"`               // Seconds per ultrawide pickup
	UltrawideMaxTime     float64 `json:"ultrawideMaxTime" mapstructure:"ultrawideMaxTime"`         // Stacking cap
	StickyRepetitions    int     `json:"stickyRepetitions" mapstructure:"stickyRepetitions"`       // Catches per sticky pickup
	StickyMaxRepetitions int     `json:"stickyMaxRepetitions" mapstructure:"stickyMaxRepetitions"` // Stacking cap
	MultiballBalls       int     `json:"multiballBalls" mapstructure:"multiballBalls"`             // Balls spawned by multiball
	RandomSeed           int64   `json:"randomSeed" mapstructure:"randomSeed"`                     // 0 means seed from the clock
}

// ErrInvalidConfig is returned by Validate for inconsistent parameters.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	levelWidth := 15
	brickWidth := 48
	canvasWidth := 800

	return Config{
		// Timing
		TickPeriodMs: 16,
		MaxTickDelta: 0.05,

		// Canvas & Level Grid
		CanvasWidth:  canvasWidth,
		CanvasHeight: 640,
		LevelWidth:   levelWidth,
		LevelHeight:  14,
		BrickWidth:   brickWidth,
		BrickHeight:  24,
		LevelOffsetX: (canvasWidth - levelWidth*brickWidth) / 2, // 40
		LevelOffsetY: 48,
		BrickHealth:  1,
		BrickScore:   10,

		// Ball Physics & Properties
		BallRadius:              8,
		BallSpeed:               420,
		CollisionMargin:         2,
		SpeedTolerance:          0.01,
		SeparationStep:          0.001,
		SeparationMaxIterations: 100,
		AxisNudgeAngle:          0.05,
		FireballSpinSpeed:       4 * math.Pi,

		// Paddle Properties
		PaddleWidth:          100,
		PaddleUltrawideWidth: 170,
		PaddleHeight:         14,
		PaddleBottomOffset:   48,
		PaddleMargin:         4,
		PaddleTransitionTime: 0.3,
		PaddleBounceAngle:    math.Pi / 3,
		MaxAimAngle:          0.89, // ~51 degrees
		AimSensitivity:       0.01,

		// Lives & Scoring
		InitialLives: 3,
		MaxLives:     9,

		// Power-ups
		PowerupChance:        12,
		PowerupFallSpeed:     140,
		PowerupSize:          18,
		FireballTime:         8,
		FireballMaxTime:      20,
		UltrawideTime:        12,
		UltrawideMaxTime:     30,
		StickyRepetitions:    3,
		StickyMaxRepetitions: 8,
		MultiballBalls:       2,
		RandomSeed:           0,
	}
}

// Validate checks the relationships the physics relies on. The brick
// neighbourhood scan only looks one cell away, so a ball must never be larger
// than a brick.
func (c Config) Validate() error {
	switch {
	case c.LevelWidth <= 0 || c.LevelHeight <= 0:
		return fmt.Errorf("%w: level dimensions must be positive", ErrInvalidConfig)
	case c.BrickWidth <= 0 || c.BrickHeight <= 0:
		return fmt.Errorf("%w: brick dimensions must be positive", ErrInvalidConfig)
	case c.BallRadius <= 0 || c.BallSpeed <= 0:
		return fmt.Errorf("%w: ball radius and speed must be positive", ErrInvalidConfig)
	case c.BallRadius > float64(MinInt(c.BrickWidth, c.BrickHeight)):
		return fmt.Errorf("%w: ball radius %.1f exceeds brick size", ErrInvalidConfig, c.BallRadius)
	case c.LevelOffsetX < 0 || c.LevelOffsetX+c.LevelWidth*c.BrickWidth > c.CanvasWidth:
		return fmt.Errorf("%w: level grid does not fit the canvas width", ErrInvalidConfig)
	case c.LevelOffsetY < 0 || float64(c.LevelOffsetY+c.LevelHeight*c.BrickHeight) > float64(c.CanvasHeight)-c.PaddleBottomOffset:
		return fmt.Errorf("%w: level grid overlaps the paddle row", ErrInvalidConfig)
	case c.PaddleWidth <= 0 || c.PaddleUltrawideWidth < c.PaddleWidth:
		return fmt.Errorf("%w: ultrawide paddle must not be narrower than the default", ErrInvalidConfig)
	case c.PaddleUltrawideWidth+2*c.PaddleMargin > float64(c.CanvasWidth):
		return fmt.Errorf("%w: paddle does not fit the canvas", ErrInvalidConfig)
	case c.PowerupChance < 0 || c.PowerupChance > 100:
		return fmt.Errorf("%w: powerup chance must be a percentage", ErrInvalidConfig)
	case c.InitialLives <= 0 || c.MaxLives < c.InitialLives:
		return fmt.Errorf("%w: lives out of range", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig overlays a config file (yaml, json or toml, picked by extension)
// and BRICKBREAKER_* environment variables on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("brickbreaker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LevelOffsetX = (cfg.CanvasWidth - cfg.LevelWidth*cfg.BrickWidth) / 2

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setDefaults registers every tagged field so viper resolves environment
// overrides for keys that are absent from the config file.
func setDefaults(v *viper.Viper, cfg Config) {
	val := reflect.ValueOf(cfg)
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		key := typ.Field(i).Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		v.SetDefault(key, val.Field(i).Interface())
	}
}
