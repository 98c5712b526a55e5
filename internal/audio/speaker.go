package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used when opening the speaker.
const DefaultSampleRate = beep.SampleRate(44100)

// Speaker plays streamers on the system audio device.
type Speaker struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
}

// OpenSpeaker initializes the audio device. Only one speaker may be open.
func OpenSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	s := &Speaker{rate: rate, mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes s into the output.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// SampleRate returns the device sample rate.
func (s *Speaker) SampleRate() beep.SampleRate {
	return s.rate
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
