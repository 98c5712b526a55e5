package engine

// Spin is the classification of the rotation that preceded a lock, as seen
// by observers.
type Spin uint8

const (
	SpinNone Spin = iota
	SpinRegular
	SpinMini
)

func (s Spin) String() string {
	switch s {
	case SpinRegular:
		return "regular"
	case SpinMini:
		return "mini"
	default:
		return "none"
	}
}

// spinMarker is the engine's internal record of the current piece's last
// rotation. spinBorderline is set when a T rotation needed the last kick and
// survives further rotations until the piece moves or locks.
type spinMarker uint8

const (
	spinMarkerNone spinMarker = iota
	spinMarkerRegular
	spinMarkerMini
	spinMarkerBorderline
)

// Public maps the marker to what observers see. Borderline counts as regular.
func (m spinMarker) Public() Spin {
	switch m {
	case spinMarkerRegular, spinMarkerBorderline:
		return SpinRegular
	case spinMarkerMini:
		return SpinMini
	default:
		return SpinNone
	}
}

// Corner cells of the T's 3x3 footprint as (row, col) offsets from the piece
// anchor, labelled A, B, C, D. A and B flank the pointing side.
//
//	3  A # B -   C # A -   D - C -   B # D -
//	2  # # # -   - # # -   # # # -   # # - -
//	1  C - D -   D # B -   B # A -   A # C -
//	   0 1 2 3   0 1 2 3   0 1 2 3   0 1 2 3
var spinCorners = [4][4]Cell{
	Spawn:            {{3, 0}, {3, 2}, {1, 0}, {1, 2}},
	Clockwise:        {{3, 2}, {1, 2}, {3, 0}, {1, 0}},
	OneEighty:        {{1, 2}, {1, 0}, {3, 2}, {3, 0}},
	CounterClockwise: {{1, 0}, {3, 0}, {1, 2}, {3, 2}},
}

// classifySpin classifies a rotation that just succeeded, leaving p in its
// new position. prev is the marker before the rotation.
func classifySpin(p Piece, f *Field, prev spinMarker, kick Kick) spinMarker {
	if p.Shape != T {
		return spinMarkerNone
	}
	if prev == spinMarkerBorderline || kick.Point == lastKickPoint {
		return spinMarkerBorderline
	}

	corners := spinCorners[p.Rotation]
	a := cornerOccupied(p, f, corners[0])
	b := cornerOccupied(p, f, corners[1])
	c := cornerOccupied(p, f, corners[2])
	d := cornerOccupied(p, f, corners[3])

	switch {
	case a && b && (c || d):
		return spinMarkerRegular
	case c && d && (a || b):
		return spinMarkerMini
	default:
		return spinMarkerNone
	}
}

// cornerOccupied treats anything outside the field as support.
func cornerOccupied(p Piece, f *Field, off Cell) bool {
	row, col := p.Row+off.Row, p.Col+off.Col
	if !InBounds(row, col) {
		return true
	}
	return f.IsOccupied(row, col)
}
