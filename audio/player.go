// File: audio/player.go
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lguibr/brickbreaker/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	// minVolume mutes the output entirely.
	minVolume = -8

	// maxVoices bounds overlapping cues so a multiball frenzy stays audible.
	maxVoices = 8
)

// Player turns game events into sound cues through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player. volume is in halvings, 0 is full scale.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Callers treat a failure as "no sound".
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the cues for events. It is a no-op before Init succeeds.
func (p *Player) Play(events []game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	for _, e := range events {
		if p.mixer.Len() >= maxVoices {
			return
		}
		if s := SoundFor(e.Type, sampleRate, p.volume); s != nil {
			p.mixer.Add(s)
		}
	}
}

// Close silences pending cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
