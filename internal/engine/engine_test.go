package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cycleRandomizer deals shapes in a fixed repeating order.
type cycleRandomizer struct {
	shapes []Shape
	i      int
}

func (r *cycleRandomizer) Next() Shape {
	s := r.shapes[r.i%len(r.shapes)]
	r.i++
	return s
}

func newCycle(shapes ...Shape) *cycleRandomizer {
	return &cycleRandomizer{shapes: shapes}
}

// recorder logs observer events as strings.
type recorder struct {
	events []string
}

func (r *recorder) OnLock(s Spin)        { r.events = append(r.events, "lock:"+s.String()) }
func (r *recorder) OnSoftDrop(rows int)  { r.events = append(r.events, fmt.Sprintf("soft_drop:%d", rows)) }
func (r *recorder) OnHardDrop(rows int)  { r.events = append(r.events, fmt.Sprintf("hard_drop:%d", rows)) }
func (r *recorder) OnLineClear(rows int) { r.events = append(r.events, fmt.Sprintf("line_clear:%d", rows)) }

func tickN(e *Engine, n int) State {
	var s State
	for range n {
		s = e.Tick()
	}
	return s
}

func TestNewEngine(t *testing.T) {
	e := New(newCycle(T, I, O, S, Z, J, L))

	assert.Equal(t, falling(1), e.State())
	assert.Equal(t, NewPiece(T), e.CurrentPiece())
	assert.Equal(t, []Shape{I, O, S, Z, J}, e.UpcomingPieces())
	_, ok := e.HoldPiece()
	assert.False(t, ok)
	assert.True(t, e.HoldAvailable())
	assert.Equal(t, TicksPerRow(30), e.Gravity())
}

func TestNewEngineRejectsBadTiming(t *testing.T) {
	timing := DefaultTiming()
	timing.QueueSize = 0
	assert.Panics(t, func() { New(newCycle(T), WithTiming(timing)) })
}

func TestGravityCadence(t *testing.T) {
	e := New(newCycle(T))
	start := e.CurrentPiece().Row

	assert.Equal(t, falling(30), tickN(e, 29))
	assert.Equal(t, start, e.CurrentPiece().Row)

	assert.Equal(t, falling(1), e.Tick())
	assert.Equal(t, start-1, e.CurrentPiece().Row)
}

func TestRowsPerTickGravity(t *testing.T) {
	e := New(newCycle(I), WithGravity(RowsPerTick(VisibleHeight)))
	assert.Equal(t, locking(1), e.Tick())
	for _, c := range e.CurrentPiece().Cells() {
		assert.Equal(t, 1, c.Row)
	}
}

func TestMoveSignalsAreIdempotent(t *testing.T) {
	e := New(newCycle(T))
	col := e.CurrentPiece().Col

	e.SignalMoveLeft()
	e.SignalMoveLeft()
	e.Tick()
	assert.Equal(t, col-1, e.CurrentPiece().Col)
}

func TestSurroundedRotationKeepsState(t *testing.T) {
	e := New(newCycle(T))
	e.current = Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}
	cells := e.current.Cells()
	fillExcept(&e.field, cells[:]...)

	e.SignalRotateCW()
	e.Tick()
	assert.Equal(t, Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}, e.CurrentPiece())

	e.Tick()
	e.SignalRotateCCW()
	e.Tick()
	assert.Equal(t, Spawn, e.CurrentPiece().Rotation)
}

func TestHold(t *testing.T) {
	e := New(newCycle(T, I, O, S, Z, J, L))

	e.SignalHold()
	assert.Equal(t, falling(1), e.Tick())
	held, ok := e.HoldPiece()
	require.True(t, ok)
	assert.Equal(t, T, held)
	assert.Equal(t, NewPiece(I), e.CurrentPiece())
	assert.False(t, e.HoldAvailable())
	assert.Equal(t, []Shape{O, S, Z, J, L}, e.UpcomingPieces())

	// A second hold for the same piece does nothing.
	e.Tick()
	e.SignalHold()
	e.Tick()
	held, _ = e.HoldPiece()
	assert.Equal(t, T, held)
	assert.Equal(t, I, e.CurrentPiece().Shape)

	// Locking draws a new piece and makes hold available again.
	e.SignalHardDrop()
	assert.Equal(t, spawn(), e.Tick())
	assert.True(t, e.HoldAvailable())
	assert.Equal(t, O, e.CurrentPiece().Shape)
	assert.Equal(t, falling(1), e.Tick())

	e.SignalHold()
	e.Tick()
	held, _ = e.HoldPiece()
	assert.Equal(t, O, held)
	assert.Equal(t, T, e.CurrentPiece().Shape)
	assert.Equal(t, SpawnRow, e.CurrentPiece().Row)
	assert.Equal(t, []Shape{S, Z, J, L, T}, e.UpcomingPieces())
}

func TestHoldPreemptsMovement(t *testing.T) {
	e := New(newCycle(T, I))
	e.SignalHold()
	e.SignalMoveLeft()
	e.SignalRotateCW()
	e.Tick()
	assert.Equal(t, NewPiece(I), e.CurrentPiece())
}

func TestLockDelay(t *testing.T) {
	rec := &recorder{}
	e := New(newCycle(O), WithObserver(rec))
	e.current = Piece{Shape: O, Rotation: Spawn, Row: -1, Col: 4}

	assert.Equal(t, locking(1), e.Tick())
	assert.Equal(t, locking(30), tickN(e, 29))
	assert.Empty(t, rec.events)

	assert.Equal(t, spawn(), e.Tick())
	assert.Equal(t, []string{"lock:none"}, rec.events)
	field := e.Field()
	for _, c := range []Cell{{1, 5}, {1, 6}, {2, 5}, {2, 6}} {
		assert.True(t, field.IsOccupied(c.Row, c.Col))
	}
	assert.Equal(t, falling(1), e.Tick())
}

func TestMoveResetsLockDelay(t *testing.T) {
	e := New(newCycle(O))
	e.current = Piece{Shape: O, Rotation: Spawn, Row: -1, Col: 4}

	assert.Equal(t, locking(5), tickN(e, 5))
	e.SignalMoveLeft()
	assert.Equal(t, locking(1), e.Tick())
	assert.Equal(t, 3, e.CurrentPiece().Col)
}

func TestMoveOffLedgeReturnsToFalling(t *testing.T) {
	e := New(newCycle(O))
	e.field.Set(5, 5)
	e.field.Set(5, 6)
	e.current = Piece{Shape: O, Rotation: Spawn, Row: 4, Col: 4}

	assert.Equal(t, locking(1), e.Tick())
	e.SignalMoveRight()
	assert.Equal(t, locking(1), e.Tick())
	e.Tick()
	e.SignalMoveRight()
	assert.Equal(t, falling(1), e.Tick())
}

func TestHardDropLineClear(t *testing.T) {
	rec := &recorder{}
	e := New(newCycle(I, O, S, Z, J, L, T), WithObserver(rec))
	for _, col := range []int{1, 2, 3, 8, 9, 10} {
		e.field.Set(1, col)
	}

	e.SignalHardDrop()
	assert.Equal(t, lineClearing(1), e.Tick())
	assert.Equal(t, []string{"hard_drop:20", "lock:none"}, rec.events)
	assert.Equal(t, O, e.CurrentPiece().Shape)

	// Input is ignored during the clear delay.
	e.SignalMoveLeft()
	assert.Equal(t, lineClearing(2), e.Tick())
	assert.Equal(t, lineClearing(30), tickN(e, 28))
	assert.Equal(t, spawn(), e.Tick())
	assert.Equal(t, []string{"hard_drop:20", "lock:none", "line_clear:1"}, rec.events)

	field := e.Field()
	assert.False(t, ContainsFullRow(&field))
	for col := 1; col <= Width; col++ {
		assert.False(t, field.IsOccupied(1, col))
	}
	// The piece drawn at lock time is replaced when the clear completes.
	assert.Equal(t, S, e.CurrentPiece().Shape)
	assert.Equal(t, []Shape{Z, J, L, T, I}, e.UpcomingPieces())
}

func TestSoftDrop(t *testing.T) {
	rec := &recorder{}
	e := New(newCycle(T), WithObserver(rec))
	row := e.CurrentPiece().Row

	e.SignalSoftDrop()
	assert.Equal(t, falling(2), e.Tick())
	e.SignalSoftDrop()
	assert.Equal(t, falling(1), e.Tick())
	assert.Equal(t, row-1, e.CurrentPiece().Row)
	assert.Equal(t, []string{"soft_drop:1"}, rec.events)
}

func TestSpinReportedOnLock(t *testing.T) {
	rec := &recorder{}
	e := New(newCycle(T), WithObserver(rec))
	e.field.Set(11, 5)
	e.field.Set(12, 4)
	e.current = Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	e.SignalRotateCW()
	e.Tick()
	assert.Equal(t, SpinRegular, e.Spin())

	// Hard drop translates the piece, which clears the spin.
	e.SignalHardDrop()
	e.Tick()
	assert.Equal(t, []string{"hard_drop:8", "lock:none"}, rec.events)
	assert.Equal(t, SpinNone, e.Spin())
}

// newGroundedTSpin sets up a T that needs the last kick to rotate clockwise
// and lands on the floor on the same tick.
func newGroundedTSpin(t *testing.T, rec *recorder) *Engine {
	t.Helper()
	e := New(newCycle(T), WithObserver(rec), WithGravity(RowsPerTick(VisibleHeight)))
	e.field.Set(11, 5)
	e.field.Set(12, 4)
	e.current = Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	e.SignalRotateCW()
	require.Equal(t, locking(1), e.Tick())
	require.Equal(t, Piece{Shape: T, Rotation: Clockwise, Row: 0, Col: 3}, e.CurrentPiece())
	require.Equal(t, SpinRegular, e.Spin())
	return e
}

func TestHardDropInPlaceKeepsSpin(t *testing.T) {
	rec := &recorder{}
	e := newGroundedTSpin(t, rec)

	e.SignalHardDrop()
	assert.Equal(t, spawn(), e.Tick())
	assert.Equal(t, []string{"hard_drop:0", "lock:regular"}, rec.events)
}

func TestLastKickSpinSurvivesRotation(t *testing.T) {
	rec := &recorder{}
	e := newGroundedTSpin(t, rec)

	// The open corners would classify this rotation as no spin on its own.
	e.SignalRotateCW()
	assert.Equal(t, locking(1), e.Tick())
	assert.Equal(t, Piece{Shape: T, Rotation: OneEighty, Row: 0, Col: 3}, e.CurrentPiece())
	assert.Equal(t, SpinRegular, e.Spin())

	assert.Equal(t, locking(30), tickN(e, 29))
	assert.Equal(t, spawn(), e.Tick())
	assert.Equal(t, []string{"lock:regular"}, rec.events)
}

func TestLockStateInputs(t *testing.T) {
	tests := []struct {
		name   string
		piece  Piece
		signal func(*Engine)
		want   State
		events []string
		check  func(t *testing.T, e *Engine)
	}{
		{
			name:   "hold returns to falling",
			piece:  Piece{Shape: O, Rotation: Spawn, Row: -1, Col: 4},
			signal: (*Engine).SignalHold,
			want:   falling(1),
			check: func(t *testing.T, e *Engine) {
				held, ok := e.HoldPiece()
				require.True(t, ok)
				assert.Equal(t, O, held)
				assert.Equal(t, NewPiece(I), e.CurrentPiece())
				field := e.Field()
				assert.False(t, field.IsOccupied(1, 5))
			},
		},
		{
			name:   "hard drop locks at once",
			piece:  Piece{Shape: O, Rotation: Spawn, Row: -1, Col: 4},
			signal: (*Engine).SignalHardDrop,
			want:   spawn(),
			events: []string{"hard_drop:0", "lock:none"},
			check: func(t *testing.T, e *Engine) {
				field := e.Field()
				assert.True(t, field.IsOccupied(1, 5))
				assert.True(t, field.IsOccupied(2, 6))
			},
		},
		{
			name:   "rotation while resting restarts the delay",
			piece:  Piece{Shape: T, Rotation: Spawn, Row: -1, Col: 4},
			signal: (*Engine).SignalRotateCW,
			want:   locking(1),
			check: func(t *testing.T, e *Engine) {
				assert.Equal(t, Piece{Shape: T, Rotation: Clockwise, Row: 0, Col: 3}, e.CurrentPiece())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := New(newCycle(O, I), WithObserver(rec))
			e.current = tt.piece

			require.Equal(t, locking(1), e.Tick())
			require.Equal(t, locking(5), tickN(e, 4))

			tt.signal(e)
			assert.Equal(t, tt.want, e.Tick())
			if tt.events == nil {
				assert.Empty(t, rec.events)
			} else {
				assert.Equal(t, tt.events, rec.events)
			}
			tt.check(t, e)
		})
	}
}

func TestLockAboveFieldTopsOut(t *testing.T) {
	rec := &recorder{}
	e := New(newCycle(O), WithObserver(rec))
	e.field.Set(39, 5)
	e.field.Set(39, 6)
	e.current = Piece{Shape: O, Rotation: Spawn, Row: 38, Col: 4}

	e.SignalHardDrop()
	assert.NotPanics(t, func() { assert.Equal(t, topOut(), e.Tick()) })
	assert.Equal(t, []string{"hard_drop:0"}, rec.events)
	field := e.Field()
	assert.False(t, field.IsOccupied(40, 5))
}

func TestMoveResetsSpin(t *testing.T) {
	e := New(newCycle(T))
	e.field.Set(11, 5)
	e.field.Set(12, 4)
	e.current = Piece{Shape: T, Rotation: Spawn, Row: 10, Col: 4}

	e.SignalRotateCW()
	e.Tick()
	assert.Equal(t, SpinRegular, e.Spin())

	e.SignalMoveLeft()
	e.Tick()
	assert.Equal(t, 2, e.CurrentPiece().Col)
	assert.Equal(t, SpinNone, e.Spin())
}

func TestTopOut(t *testing.T) {
	e := New(newCycle(O, I))
	for col := 1; col < Width; col++ {
		e.field.Set(21, col)
		e.field.Set(22, col)
	}
	e.current = Piece{Shape: O, Rotation: Spawn, Row: -1, Col: 1}

	e.SignalHardDrop()
	assert.Equal(t, spawn(), e.Tick())
	assert.Equal(t, topOut(), e.Tick())

	before := e.Field()
	e.SignalHardDrop()
	assert.Equal(t, topOut(), tickN(e, 10))
	assert.Equal(t, before, e.Field())
}

func TestGhostPiece(t *testing.T) {
	e := New(newCycle(I))
	ghost := e.GhostPiece()
	for _, c := range ghost.Cells() {
		assert.Equal(t, 1, c.Row)
	}
	assert.Equal(t, SpawnRow, e.CurrentPiece().Row)
}

func TestEngineDeterministic(t *testing.T) {
	script := func(e *Engine, tick int) {
		switch tick % 9 {
		case 0:
			e.SignalMoveLeft()
		case 3:
			e.SignalRotateCW()
		case 5:
			e.SignalSoftDrop()
		case 7:
			e.SignalHardDrop()
		}
	}

	a := New(NewBagRandomizer(99))
	b := New(NewBagRandomizer(99))
	for tick := range 2000 {
		script(a, tick)
		script(b, tick)
		require.Equal(t, a.Tick(), b.Tick(), "tick %d", tick)
	}
	assert.Equal(t, a.Field(), b.Field())
	assert.Equal(t, a.CurrentPiece(), b.CurrentPiece())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Falling(3)", falling(3).String())
	assert.Equal(t, "LineClear(1)", lineClearing(1).String())
	assert.Equal(t, "TopOut", topOut().String())
}
