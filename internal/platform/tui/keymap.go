package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionMoveLeft, false
	case "d", "right", "l":
		return core.ActionMoveRight, false
	case "w", "up", "x", "k":
		return core.ActionRotateCW, false
	case "z", "ctrl+z":
		return core.ActionRotateCCW, false
	case "s", "down", "j":
		return core.ActionSoftDrop, false
	case " ":
		return core.ActionHardDrop, false
	case "c", "shift+tab":
		return core.ActionHold, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Window lengths, in ticks, for presses that repeat on their own.
const (
	// DefaultKeyHoldTicks is how long a move or soft drop stays held after
	// its last press. Terminal auto-repeat refreshes it well inside this.
	DefaultKeyHoldTicks = 8
	edgeHoldTicks       = 3
	toggleHoldTicks     = 1
)

// HoldTracker turns key presses into held actions. Terminals only report
// presses, so an action counts as held for a short window after its most
// recent press. Toggles like pause last exactly one tick.
type HoldTracker struct {
	windows  *intmap.Map[core.Action, int]
	lastSeen *intmap.Map[core.Action, int]
	tick     int
}

// NewHoldTracker creates a tracker holding moves and soft drop for
// keyHoldTicks ticks. Values below 1 use DefaultKeyHoldTicks.
func NewHoldTracker(keyHoldTicks int) *HoldTracker {
	h := &HoldTracker{
		windows:  intmap.New[core.Action, int](10),
		lastSeen: intmap.New[core.Action, int](10),
	}
	h.SetKeyHoldTicks(keyHoldTicks)
	for _, a := range []core.Action{core.ActionRotateCW, core.ActionRotateCCW, core.ActionHardDrop, core.ActionHold} {
		h.windows.Put(a, edgeHoldTicks)
	}
	for _, a := range []core.Action{core.ActionPause, core.ActionRestart} {
		h.windows.Put(a, toggleHoldTicks)
	}
	return h
}

// SetKeyHoldTicks changes the window for moves and soft drop.
func (h *HoldTracker) SetKeyHoldTicks(n int) {
	if n < 1 {
		n = DefaultKeyHoldTicks
	}
	for _, a := range []core.Action{core.ActionMoveLeft, core.ActionMoveRight, core.ActionSoftDrop} {
		h.windows.Put(a, n)
	}
}

// Press records a press of a for the upcoming tick.
func (h *HoldTracker) Press(a core.Action) {
	if !h.windows.Has(a) {
		return
	}
	// The opposite direction cancels a held move right away.
	switch a {
	case core.ActionMoveLeft:
		h.lastSeen.Del(core.ActionMoveRight)
	case core.ActionMoveRight:
		h.lastSeen.Del(core.ActionMoveLeft)
	}
	at := h.tick
	// A re-press of a one-shot action releases it for a tick so the engine
	// sees a second press instead of one long hold.
	if prev, ok := h.lastSeen.Get(a); ok && isOneShot(a) {
		if prev > h.tick {
			return
		}
		if prev < h.tick && h.tick-prev < edgeHoldTicks {
			at = h.tick + 1
		}
	}
	h.lastSeen.Put(a, at)
}

func isOneShot(a core.Action) bool {
	switch a {
	case core.ActionRotateCW, core.ActionRotateCCW, core.ActionHardDrop, core.ActionHold:
		return true
	}
	return false
}

// Next returns the actions held on the current tick and advances to the
// next one.
func (h *HoldTracker) Next() core.InputFrame {
	frame := core.NewInputFrame()
	h.lastSeen.ForEach(func(a core.Action, at int) bool {
		window, _ := h.windows.Get(a)
		if at <= h.tick && h.tick-at < window {
			frame.Set(a)
		}
		return true
	})
	h.tick++
	return frame
}

// Reset forgets every press.
func (h *HoldTracker) Reset() {
	h.lastSeen.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
