package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// StateKind tags the engine's current state.
type StateKind uint8

const (
	StateSpawn StateKind = iota
	StateFalling
	StateLock
	StateLineClear
	StateTopOut
)

func (k StateKind) String() string {
	switch k {
	case StateSpawn:
		return "Spawn"
	case StateFalling:
		return "Falling"
	case StateLock:
		return "Lock"
	case StateLineClear:
		return "LineClear"
	case StateTopOut:
		return "TopOut"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}

// State is the engine state. Ticks counts ticks spent in Falling, Lock and
// LineClear and is zero for Spawn and TopOut.
type State struct {
	Kind  StateKind
	Ticks int
}

func (s State) String() string {
	switch s.Kind {
	case StateFalling, StateLock, StateLineClear:
		return fmt.Sprintf("%v(%d)", s.Kind, s.Ticks)
	default:
		return s.Kind.String()
	}
}

func spawn() State             { return State{Kind: StateSpawn} }
func falling(n int) State      { return State{Kind: StateFalling, Ticks: n} }
func locking(n int) State      { return State{Kind: StateLock, Ticks: n} }
func lineClearing(n int) State { return State{Kind: StateLineClear, Ticks: n} }
func topOut() State            { return State{Kind: StateTopOut} }

// Timing holds the tick-counted delays of the game rules.
type Timing struct {
	// LockDelay is how many ticks a resting piece waits before locking.
	LockDelay int
	// LineClearDelay is the pause between locking and removing full rows.
	LineClearDelay int
	// AutoRepeatDelay is the hold duration at which horizontal movement
	// starts repeating.
	AutoRepeatDelay int
	// AutoRepeatRate is the interval between repeats after the delay.
	AutoRepeatRate int
	// SoftDropFactor multiplies gravity while soft drop is held.
	SoftDropFactor float64
	// QueueSize is the number of upcoming pieces kept visible.
	QueueSize int
}

// DefaultTiming returns the standard rule timings, in ticks at 60 ticks per second.
func DefaultTiming() Timing {
	return Timing{
		LockDelay:       30,
		LineClearDelay:  30,
		AutoRepeatDelay: 12,
		AutoRepeatRate:  7,
		SoftDropFactor:  20,
		QueueSize:       5,
	}
}

func (t Timing) validate() error {
	switch {
	case t.LockDelay < 1:
		return fmt.Errorf("lock delay must be >= 1, got %d", t.LockDelay)
	case t.LineClearDelay < 1:
		return fmt.Errorf("line clear delay must be >= 1, got %d", t.LineClearDelay)
	case t.AutoRepeatDelay < 2:
		return fmt.Errorf("auto-repeat delay must be >= 2, got %d", t.AutoRepeatDelay)
	case t.AutoRepeatRate < 1:
		return fmt.Errorf("auto-repeat rate must be >= 1, got %d", t.AutoRepeatRate)
	case t.SoftDropFactor <= 0:
		return fmt.Errorf("soft drop factor must be > 0, got %v", t.SoftDropFactor)
	case t.QueueSize < 1:
		return fmt.Errorf("queue size must be >= 1, got %d", t.QueueSize)
	}
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithTiming overrides the rule timings.
func WithTiming(t Timing) Option {
	return func(e *Engine) { e.timing = t }
}

// WithGravity sets the initial gravity.
func WithGravity(g Gravity) Option {
	return func(e *Engine) { e.gravity = g }
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithLogger sets the logger used for debug tracing of state changes.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine is the single-player rules state machine. It is advanced by Tick and
// is not safe for concurrent use, except for the Signal methods, which may be
// called from another goroutine.
type Engine struct {
	field         Field
	current       Piece
	randomizer    Randomizer
	hold          Shape
	hasHold       bool
	holdAvailable bool
	queue         []Shape
	gravity       Gravity
	state         State
	spin          spinMarker
	observers     []Observer
	timing        Timing
	logger        *log.Logger

	pending inputBuffer
	inputs  *inputState
}

// New creates an engine that draws pieces from r. The first piece is placed
// immediately and the engine starts in Falling(1).
func New(r Randomizer, opts ...Option) *Engine {
	e := &Engine{
		randomizer:    r,
		holdAvailable: true,
		gravity:       TicksPerRow(30),
		timing:        DefaultTiming(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.timing.validate(); err != nil {
		panic("engine: " + err.Error())
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.inputs = newInputState(e.timing)
	e.current = NewPiece(r.Next())
	e.queue = make([]Shape, 0, e.timing.QueueSize)
	for range e.timing.QueueSize {
		e.queue = append(e.queue, r.Next())
	}
	e.state = falling(1)
	return e
}

// AddObserver registers an observer.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// SetGravity changes the automatic fall speed.
func (e *Engine) SetGravity(g Gravity) {
	e.gravity = g
}

// Gravity returns the current automatic fall speed.
func (e *Engine) Gravity() Gravity {
	return e.gravity
}

// State returns the current state without advancing.
func (e *Engine) State() State {
	return e.state
}

// Field returns a copy of the playfield.
func (e *Engine) Field() Field {
	return e.field
}

// CurrentPiece returns the active piece.
func (e *Engine) CurrentPiece() Piece {
	return e.current
}

// GhostPiece returns where the active piece would land if hard dropped.
func (e *Engine) GhostPiece() Piece {
	ghost, _ := Drop(e.current, &e.field, TotalHeight)
	return ghost
}

// HoldPiece returns the held shape, if any.
func (e *Engine) HoldPiece() (Shape, bool) {
	return e.hold, e.hasHold
}

// HoldAvailable reports whether hold may be used for the current piece.
func (e *Engine) HoldAvailable() bool {
	return e.holdAvailable
}

// UpcomingPieces returns a copy of the upcoming queue, next piece first.
func (e *Engine) UpcomingPieces() []Shape {
	out := make([]Shape, len(e.queue))
	copy(out, e.queue)
	return out
}

// Spin returns the spin classification of the active piece's last rotation.
func (e *Engine) Spin() Spin {
	return e.spin.Public()
}

// Signal methods mark an action as pressed for the next tick. Repeated calls
// before a tick have no additional effect.

func (e *Engine) SignalMoveLeft()  { e.pending.signal(MoveLeft) }
func (e *Engine) SignalMoveRight() { e.pending.signal(MoveRight) }
func (e *Engine) SignalRotateCW()  { e.pending.signal(RotateCW) }
func (e *Engine) SignalRotateCCW() { e.pending.signal(RotateCCW) }
func (e *Engine) SignalSoftDrop()  { e.pending.signal(SoftDrop) }
func (e *Engine) SignalHardDrop()  { e.pending.signal(HardDrop) }
func (e *Engine) SignalHold()      { e.pending.signal(Hold) }

// Signal marks an arbitrary action as pressed for the next tick.
func (e *Engine) Signal(a Action) {
	e.pending.signal(a)
}

// Tick advances the simulation by one step and returns the resulting state.
func (e *Engine) Tick() State {
	// Input is resolved in every state so hold durations stay accurate.
	actions := e.inputs.resolve(e.pending.drain())

	switch e.state.Kind {
	case StateSpawn:
		e.tickSpawn()
	case StateFalling:
		e.tickFalling(actions)
	case StateLock:
		e.tickLock(actions)
	case StateLineClear:
		e.tickLineClear()
	case StateTopOut:
	}
	return e.state
}

func (e *Engine) tickSpawn() {
	if Collides(e.current, &e.field) {
		e.logger.Debug("top out", "piece", e.current)
		e.state = topOut()
	} else {
		e.state = falling(1)
	}
	e.spin = spinMarkerNone
}

func (e *Engine) tickFalling(actions ActionSet) {
	n := e.state.Ticks
	applied := e.applyActions(actions)
	switch {
	case applied.Has(HardDrop):
		e.applyLock()
	case applied.Has(Hold):
		e.state = falling(1)
	default:
		dropped := e.applyGravity(actions.Has(SoftDrop))
		switch {
		case IsResting(e.current, &e.field):
			e.state = locking(1)
		case dropped:
			e.state = falling(1)
		default:
			e.state = falling(n + 1)
		}
	}
}

func (e *Engine) tickLock(actions ActionSet) {
	n := e.state.Ticks
	if n >= e.timing.LockDelay {
		e.applyLock()
		return
	}

	applied := e.applyActions(actions)
	switch {
	case applied.Has(Hold):
		e.state = falling(1)
	case applied.Has(HardDrop):
		e.applyLock()
	case applied.Has(MoveLeft), applied.Has(MoveRight),
		applied.Has(RotateCW), applied.Has(RotateCCW):
		// Any successful move or rotation restarts the lock delay.
		if IsResting(e.current, &e.field) {
			e.state = locking(1)
		} else {
			e.state = falling(1)
		}
	default:
		e.state = locking(n + 1)
	}
}

func (e *Engine) tickLineClear() {
	n := e.state.Ticks
	if n < e.timing.LineClearDelay {
		e.state = lineClearing(n + 1)
		return
	}

	rows := ClearRows(&e.field)
	e.logger.Debug("rows cleared", "rows", rows)
	e.notify(func(o Observer) { o.OnLineClear(rows) })
	e.nextPiece()
	e.state = spawn()
}

// applyActions applies the firing actions and returns the ones that had an
// effect. Hold pre-empts everything else.
func (e *Engine) applyActions(actions ActionSet) ActionSet {
	var applied ActionSet
	if e.applyHold(actions) {
		return applied.With(Hold)
	}
	if a, ok := e.applyMove(actions); ok {
		applied = applied.With(a)
	}
	if a, ok := e.applyRotation(actions); ok {
		applied = applied.With(a)
	}
	if e.applyHardDrop(actions) {
		applied = applied.With(HardDrop)
	}
	return applied
}

func (e *Engine) applyHold(actions ActionSet) bool {
	if !actions.Has(Hold) || !e.holdAvailable {
		return false
	}

	held := e.current.Shape
	if e.hasHold {
		e.current = NewPiece(e.hold)
	} else {
		e.nextPiece()
	}
	e.hold, e.hasHold = held, true
	e.holdAvailable = false
	e.spin = spinMarkerNone
	e.logger.Debug("hold", "held", held, "current", e.current.Shape)
	return true
}

func (e *Engine) applyMove(actions ActionSet) (Action, bool) {
	var dir int
	var action Action
	switch {
	case actions.Has(MoveLeft):
		dir, action = -1, MoveLeft
	case actions.Has(MoveRight):
		dir, action = 1, MoveRight
	default:
		return 0, false
	}

	moved, n := Shift(e.current, &e.field, dir)
	if n != 1 {
		return 0, false
	}
	e.current = moved
	e.spin = spinMarkerNone
	return action, true
}

func (e *Engine) applyRotation(actions ActionSet) (Action, bool) {
	var target Rotation
	var action Action
	switch {
	case actions.Has(RotateCW):
		target, action = e.current.Rotation.CW(), RotateCW
	case actions.Has(RotateCCW):
		target, action = e.current.Rotation.CCW(), RotateCCW
	default:
		return 0, false
	}

	rotated, kick, ok := AttemptRotation(e.current, &e.field, target)
	if !ok {
		return 0, false
	}
	e.current = rotated
	e.spin = classifySpin(e.current, &e.field, e.spin, kick)
	return action, true
}

func (e *Engine) applyHardDrop(actions ActionSet) bool {
	if !actions.Has(HardDrop) {
		return false
	}
	dropped, rows := Drop(e.current, &e.field, TotalHeight)
	e.current = dropped
	if rows > 0 {
		e.spin = spinMarkerNone
	}
	e.notify(func(o Observer) { o.OnHardDrop(rows) })
	return true
}

// applyGravity drops the piece according to the current gravity, accelerated
// while soft drop is held. Returns whether the piece moved.
func (e *Engine) applyGravity(softDrop bool) bool {
	g := e.gravity
	if softDrop {
		g = g.Mul(e.timing.SoftDropFactor)
	}

	var rows int
	if tpr, ok := g.TicksPerRow(); ok {
		if e.state.Ticks < tpr {
			return false
		}
		e.current, rows = Drop(e.current, &e.field, 1)
	} else {
		rpt, _ := g.RowsPerTick()
		e.current, rows = Drop(e.current, &e.field, rpt)
	}

	if rows == 0 {
		return false
	}
	if softDrop {
		e.notify(func(o Observer) { o.OnSoftDrop(rows) })
	}
	return true
}

// applyLock writes the current piece into the field, reports the lock, and
// moves on to LineClear when rows are full or straight to Spawn otherwise.
// A piece resting with any cell above the field tops out instead.
func (e *Engine) applyLock() {
	cells := e.current.Cells()
	for _, c := range cells {
		if c.Row > TotalHeight {
			e.logger.Debug("top out", "piece", e.current, "reason", "locked above field")
			e.state = topOut()
			return
		}
	}
	for _, c := range cells {
		e.field.Set(c.Row, c.Col)
	}
	spin := e.spin.Public()
	e.notify(func(o Observer) { o.OnLock(spin) })
	e.spin = spinMarkerNone

	full := ContainsFullRow(&e.field)
	e.nextPiece()
	if full {
		e.state = lineClearing(1)
	} else {
		e.state = spawn()
	}
}

// nextPiece brings the front of the queue into play and refills the queue.
func (e *Engine) nextPiece() {
	if len(e.queue) == 0 {
		panic("engine: upcoming queue is empty")
	}
	e.current = NewPiece(e.queue[0])
	copy(e.queue, e.queue[1:])
	e.queue[len(e.queue)-1] = e.randomizer.Next()
	e.holdAvailable = true
}

func (e *Engine) notify(fn func(Observer)) {
	for _, o := range e.observers {
		fn(o)
	}
}
