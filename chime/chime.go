// Package chime synthesises the celebration sound and plays it through the
// system speaker.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/mochi"
)

// SampleRate is the rate the speaker is opened at.
const SampleRate = beep.SampleRate(44100)

// Note is one tone of a phrase.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Arpeggio is the celebration phrase: a C major arpeggio ending on a held
// octave.
var Arpeggio = []Note{
	{523.25, 110 * time.Millisecond},  // C5
	{659.25, 110 * time.Millisecond},  // E5
	{783.99, 110 * time.Millisecond},  // G5
	{1046.50, 450 * time.Millisecond}, // C6
}

const (
	noteAttack  = 8 * time.Millisecond
	noteRelease = 90 * time.Millisecond
)

// tone generates a sine wave for a fixed number of samples.
type tone struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{freq: freq, total: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume wraps s with a linear gain. Zero or less is silence.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Phrase renders notes one after another, each with a soft octave overtone.
func Phrase(notes []Note, rate beep.SampleRate, gain float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		fund := newEnvelope(newTone(n.Freq, n.Duration, rate), n.Duration, noteAttack, noteRelease, rate)
		over := newEnvelope(newTone(n.Freq*2, n.Duration, rate), n.Duration, noteAttack, noteRelease/2, rate)
		parts = append(parts, beep.Mix(volume(fund, 0.75), volume(over, 0.25)))
	}
	return volume(beep.Seq(parts...), gain)
}

// Celebration is the celebration phrase at the given gain.
func Celebration(gain float64) beep.Streamer {
	return Phrase(Arpeggio, SampleRate, gain)
}

// Player opens the speaker on first use. If the audio device cannot be
// opened the player goes quiet for good; sound is never required.
type Player struct {
	Gain float64

	mu     sync.Mutex
	opened bool
	failed bool

	// Replaced in tests.
	init func(beep.SampleRate, int) error
	play func(...beep.Streamer)
}

// NewPlayer returns a player at the given gain.
func NewPlayer(gain float64) *Player {
	return &Player{Gain: gain, init: speaker.Init, play: speaker.Play}
}

// Play starts the celebration phrase. It does not block.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return
	}
	if !p.opened {
		if err := p.init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
			p.failed = true
			mochi.Debugf("audio unavailable: %v", err)
			return
		}
		p.opened = true
	}
	p.play(Celebration(p.Gain))
}

// Available reports whether the player has not failed to open the device.
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.failed
}

// Watch plays the phrase once when the lifecycle's celebration activates.
func (p *Player) Watch(l *mochi.Lifecycle) mochi.CallbackHandle {
	played := l.State().CelebrationActive
	return l.OnChange(func(st mochi.LifecycleState) {
		if st.CelebrationActive && !played {
			played = true
			p.Play()
		}
	})
}
