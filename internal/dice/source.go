// Package dice produces six-sided die faces and holds the dice currently on
// the table.
package dice

import (
	"errors"
	rand "math/rand/v2"
)

const (
	MinFace = 1
	MaxFace = 6

	MinCount = 2
	MaxCount = 3
)

// ErrInvalidCount is returned when a dice count outside {2, 3} is requested.
var ErrInvalidCount = errors.New("dice count must be 2 or 3")

// ValidCount reports whether n dice can be played.
func ValidCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}

// Roller produces count independent faces in [MinFace, MaxFace].
type Roller interface {
	Roll(count int) []int
}

// Source is a Roller backed by a seeded generator.
type Source struct {
	rng  *rand.Rand
	seed int64
}

// NewSource returns a Source whose sequence is fixed by seed.
func NewSource(seed int64) *Source {
	return &Source{rng: NewRNG(seed), seed: seed}
}

// NewRandomSource returns a Source seeded from the wall clock.
func NewRandomSource() *Source {
	return NewSource(TimeSeed())
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Roll returns count uniformly distributed faces. Callers validate count.
func (s *Source) Roll(count int) []int {
	values := make([]int, count)
	for i := range values {
		values[i] = s.Face()
	}
	return values
}

// Face returns a single face.
func (s *Source) Face() int {
	return MinFace + s.rng.IntN(MaxFace-MinFace+1)
}

// Total sums values.
func Total(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
