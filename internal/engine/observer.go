package engine

// Observer receives gameplay events from the engine. Calls are synchronous and
// made from inside Tick, in the order the events happen; an observer must not
// call back into the engine.
type Observer interface {
	// OnLock is called when a piece is written into the field.
	OnLock(spin Spin)
	// OnSoftDrop is called when soft drop moved the piece down.
	OnSoftDrop(rows int)
	// OnHardDrop is called on every applied hard drop, even one that moved 0 rows.
	OnHardDrop(rows int)
	// OnLineClear is called when full rows are removed.
	OnLineClear(rows int)
}

// NopObserver implements Observer with no-ops. Embed it to implement only
// the events you care about.
type NopObserver struct{}

func (NopObserver) OnLock(Spin)     {}
func (NopObserver) OnSoftDrop(int)  {}
func (NopObserver) OnHardDrop(int)  {}
func (NopObserver) OnLineClear(int) {}

var _ Observer = NopObserver{}
