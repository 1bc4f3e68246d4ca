// Package audio plays a short sound for every shot fired.
// Audio is optional: when the speaker cannot be opened every call is a no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/gunsim"
)

const (
	sampleRate   = beep.SampleRate(48000)
	shotDuration = 120 * time.Millisecond
)

// ShotPlayer mixes a pop sound into the speaker on every shot.
type ShotPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        int64
}

var _ gunsim.ShotListener = (*ShotPlayer)(nil)

// NewShotPlayer creates a player. Call Initialize before use.
func NewShotPlayer() *ShotPlayer {
	return &ShotPlayer{
		mixer: &beep.Mixer{},
		seed:  time.Now().UnixNano(),
	}
}

// Initialize opens the speaker.
func (p *ShotPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences all pending sounds.
func (p *ShotPlayer) Cleanup() {
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

// OnShot plays a pop. Louder guns pop at a lower pitch.
func (p *ShotPlayer) OnShot(b ballistics.Bullet) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.seed++
	gen := NewPopGenerator(sampleRate, PopFrequency(b.Body.VX), p.seed)
	streamer := beep.Take(sampleRate.N(shotDuration), gen)

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// PopFrequency maps muzzle velocity to a base tone between 90 and 600 Hz.
func PopFrequency(muzzleVelocity float64) float64 {
	return core.ClampF(600-math.Abs(muzzleVelocity), 90, 600)
}

// PopGenerator generates a gunshot-like pop: a noise burst over a low
// tone with a fast exponential decay.
type PopGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	seed int64
}

// NewPopGenerator creates a pop sound generator.
func NewPopGenerator(sr beep.SampleRate, freq float64, seed int64) *PopGenerator {
	return &PopGenerator{
		sr:   sr,
		freq: freq,
		seed: seed & 0x7fffffff,
	}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 40)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		tone := math.Sin(2 * math.Pi * g.freq * t)

		sample := envelope * (0.35*noise + 0.25*tone)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
