package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

const testRate = beep.SampleRate(8000)

type recordingPlayer struct {
	played []beep.Streamer
}

func (p *recordingPlayer) Play(s beep.Streamer)        { p.played = append(p.played, s) }
func (p *recordingPlayer) SampleRate() beep.SampleRate { return testRate }

// drain streams s to the end and returns the sample count and peak level.
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, sample := range buf[:k] {
			peak = max(peak, sample[0], -sample[0])
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		n, peak := drain(osc)
		assert.Equal(t, testRate.N(100*time.Millisecond), n, "wave %d", wave)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.5)
		assert.NoError(t, osc.Err())
	}
}

func TestEnvelopeFadesEnds(t *testing.T) {
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, d/4, d/4, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.InDelta(t, 0, buf[0][0], 1e-9)
	assert.InDelta(t, 1, buf[n/2][0], 1e-9)
	assert.Less(t, buf[n-1][0], 0.1)
}

func TestEffectsPlayOnEvents(t *testing.T) {
	p := &recordingPlayer{}
	fx := NewEffects(p, 1)

	fx.OnLock(engine.SpinNone)
	fx.OnLock(engine.SpinRegular)
	fx.OnHardDrop(12)
	fx.OnSoftDrop(1)
	fx.OnLineClear(4)

	require.Len(t, p.played, 4, "soft drop is silent")
	for _, s := range p.played {
		n, peak := drain(s)
		assert.Positive(t, n)
		assert.LessOrEqual(t, peak, 1.0)
	}
}

func TestLineClearArpeggioGrowsWithRows(t *testing.T) {
	p := &recordingPlayer{}
	fx := NewEffects(p, 1)

	fx.OnLineClear(1)
	fx.OnLineClear(4)
	fx.OnLineClear(9)

	single, _ := drain(p.played[0])
	four, _ := drain(p.played[1])
	many, _ := drain(p.played[2])
	assert.Equal(t, 4*single, four)
	assert.Equal(t, four, many, "capped at four notes")
}

func TestEffectsMuted(t *testing.T) {
	p := &recordingPlayer{}
	fx := NewEffects(p, 0)

	fx.OnLock(engine.SpinNone)
	fx.OnHardDrop(3)
	fx.OnLineClear(2)
	assert.Empty(t, p.played)
}

func TestEffectsVolumeScales(t *testing.T) {
	loud, quiet := &recordingPlayer{}, &recordingPlayer{}
	NewEffects(loud, 1).OnHardDrop(1)
	NewEffects(quiet, 0.25).OnHardDrop(1)

	_, loudPeak := drain(loud.played[0])
	_, quietPeak := drain(quiet.played[0])
	assert.InDelta(t, loudPeak/4, quietPeak, 1e-6)
}
