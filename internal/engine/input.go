package engine

import (
	"sync"

	"github.com/kamstrup/intmap"
)

// Action is a player intent the engine understands.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
	Hold
)

var allActions = [...]Action{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop, Hold}

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	case SoftDrop:
		return "SoftDrop"
	case HardDrop:
		return "HardDrop"
	case Hold:
		return "Hold"
	default:
		return "Unknown"
	}
}

// ActionSet is a set of actions.
type ActionSet uint8

// With returns the set with a added.
func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<a
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

// inputBuffer collects signals between ticks. Signals come from the
// frontend's event loop, the drain happens inside Tick.
type inputBuffer struct {
	mu      sync.Mutex
	pending ActionSet
}

func (b *inputBuffer) signal(a Action) {
	b.mu.Lock()
	b.pending = b.pending.With(a)
	b.mu.Unlock()
}

func (b *inputBuffer) drain() ActionSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	pressed := b.pending
	b.pending = 0
	return pressed
}

// inputState turns per-tick pressed signals into the actions that fire this
// tick. It tracks how many consecutive ticks each action has been held.
type inputState struct {
	durations   *intmap.Map[Action, int]
	repeatDelay int
	repeatRate  int
}

func newInputState(t Timing) *inputState {
	durations := intmap.New[Action, int](len(allActions))
	for _, a := range allActions {
		durations.Put(a, 0)
	}
	return &inputState{
		durations:   durations,
		repeatDelay: t.AutoRepeatDelay,
		repeatRate:  t.AutoRepeatRate,
	}
}

// duration returns how many consecutive ticks a has been held.
func (s *inputState) duration(a Action) int {
	d, _ := s.durations.Get(a)
	return d
}

// resolve folds this tick's pressed set into the hold durations and returns
// the set of actions that fire.
func (s *inputState) resolve(pressed ActionSet) ActionSet {
	for _, a := range allActions {
		if pressed.Has(a) {
			s.durations.Put(a, s.duration(a)+1)
		} else {
			s.durations.Put(a, 0)
		}
	}

	// Left wins over right. Right is reset rather than paused so that it
	// starts cold, not mid auto-repeat, once left is released.
	if s.duration(MoveLeft) > 0 {
		s.durations.Put(MoveRight, 0)
	}

	var active ActionSet
	for _, a := range allActions {
		if s.fires(a, s.duration(a)) {
			active = active.With(a)
		}
	}
	return active
}

func (s *inputState) fires(a Action, d int) bool {
	switch a {
	case SoftDrop:
		return d >= 1
	case MoveLeft, MoveRight:
		return d == 1 ||
			d == s.repeatDelay ||
			(d > s.repeatDelay && (d-s.repeatDelay)%s.repeatRate == 0)
	default:
		return d == 1
	}
}
