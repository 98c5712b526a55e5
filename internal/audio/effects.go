package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// Player plays streamers, mixing them with whatever is already playing.
type Player interface {
	Play(s beep.Streamer)
	SampleRate() beep.SampleRate
}

// Note frequencies, C major from C5.
var chime = [...]float64{523.25, 659.25, 783.99, 1046.50}

// Effects turns engine events into sounds.
type Effects struct {
	player Player
	volume float64
}

var _ engine.Observer = (*Effects)(nil)

// NewEffects creates an effects observer. volume is linear in [0, 1].
func NewEffects(p Player, volume float64) *Effects {
	return &Effects{player: p, volume: max(0, min(volume, 1))}
}

// OnLock plays a click, or a two-note flourish after a spin.
func (e *Effects) OnLock(spin engine.Spin) {
	rate := e.player.SampleRate()
	if spin == engine.SpinNone {
		e.play(tone(1320, 25*time.Millisecond, WaveSquare, rate), 0.25)
		return
	}
	e.play(beep.Seq(
		tone(880, 60*time.Millisecond, WaveTriangle, rate),
		tone(1320, 90*time.Millisecond, WaveTriangle, rate),
	), 0.5)
}

// OnSoftDrop is silent; it fires every tick while the key is held.
func (e *Effects) OnSoftDrop(int) {}

// OnHardDrop plays a low thud.
func (e *Effects) OnHardDrop(int) {
	e.play(tone(110, 80*time.Millisecond, WaveSine, e.player.SampleRate()), 0.8)
}

// OnLineClear plays a rising arpeggio with one note per cleared row.
func (e *Effects) OnLineClear(rows int) {
	rate := e.player.SampleRate()
	n := max(1, min(rows, len(chime)))
	notes := make([]beep.Streamer, 0, n)
	for _, freq := range chime[:n] {
		notes = append(notes, tone(freq, 70*time.Millisecond, WaveTriangle, rate))
	}
	e.play(beep.Seq(notes...), 0.6)
}

func (e *Effects) play(s beep.Streamer, gain float64) {
	if e.volume <= 0 {
		return
	}
	e.player.Play(newVolume(s, gain*e.volume))
}
