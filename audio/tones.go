// File: audio/tones.go
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lguibr/brickbreaker/game"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone generates a fixed-frequency wave with a linear fade-out over its
// last quarter.
type tone struct {
	freq     float64
	phase    float64
	samples  int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone returns a streamer that plays freq for duration.
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, samples: rate.N(duration), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	fadeStart := t.samples * 3 / 4
	for i := range samples {
		if t.position >= t.samples {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		if t.position > fadeStart {
			val *= float64(t.samples-t.position) / float64(t.samples-fadeStart)
		}

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

type note struct {
	freq     float64
	duration time.Duration
	wave     Wave
}

// cues maps events to short note sequences. Events without an entry are
// silent.
var cues = map[game.EventType][]note{
	game.EventBrickHit:       {{660, 40 * time.Millisecond, WaveSquare}},
	game.EventBrickDestroyed: {{880, 60 * time.Millisecond, WaveSquare}},
	game.EventPaddleBounce:   {{440, 50 * time.Millisecond, WaveTriangle}},
	game.EventBallCaught:     {{330, 60 * time.Millisecond, WaveTriangle}},
	game.EventBallLaunched:   {{523, 40 * time.Millisecond, WaveSine}, {784, 40 * time.Millisecond, WaveSine}},
	game.EventWallBounce:     {{220, 30 * time.Millisecond, WaveTriangle}},
	game.EventBallLost:       {{196, 120 * time.Millisecond, WaveSine}},
	game.EventLifeLost:       {{392, 100 * time.Millisecond, WaveSquare}, {262, 180 * time.Millisecond, WaveSquare}},
	game.EventPowerupPicked:  {{988, 50 * time.Millisecond, WaveSine}, {1319, 80 * time.Millisecond, WaveSine}},
	game.EventGameWon: {
		{523, 100 * time.Millisecond, WaveSquare},
		{659, 100 * time.Millisecond, WaveSquare},
		{784, 200 * time.Millisecond, WaveSquare},
	},
	game.EventGameLost: {
		{392, 150 * time.Millisecond, WaveTriangle},
		{330, 150 * time.Millisecond, WaveTriangle},
		{262, 300 * time.Millisecond, WaveTriangle},
	},
}

// SoundFor builds the cue for an event, or nil when the event is silent.
func SoundFor(t game.EventType, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cues[t]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewTone(n.freq, n.duration, n.wave, rate))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
		Silent:   volume <= minVolume,
	}
}
