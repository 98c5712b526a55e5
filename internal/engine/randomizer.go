package engine

import "math/rand"

// Randomizer produces the sequence of shapes fed into play.
type Randomizer interface {
	Next() Shape
}

// BagRandomizer deals shapes from shuffled bags of all seven shapes, so every
// aligned group of seven draws contains each shape exactly once.
type BagRandomizer struct {
	rng *rand.Rand
	bag []Shape
}

// NewBagRandomizer creates a bag randomizer with a deterministic seed.
func NewBagRandomizer(seed int64) *BagRandomizer {
	return &BagRandomizer{
		rng: rand.New(rand.NewSource(seed)),
		bag: make([]Shape, 0, len(Shapes)),
	}
}

// Next returns the next shape, refilling the bag when it runs out.
func (b *BagRandomizer) Next() Shape {
	if len(b.bag) == 0 {
		b.refill()
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}

func (b *BagRandomizer) refill() {
	b.bag = append(b.bag[:0], Shapes[:]...)
	b.rng.Shuffle(len(b.bag), func(i, j int) {
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	})
}
