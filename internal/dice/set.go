package dice

import "fmt"

// Set is the dice on the table. It always holds MaxCount faces; only the
// first Count of them are in play. Faces past Count keep their last value
// so switching back to three dice shows the old third die.
type Set struct {
	faces [MaxCount]int
	count int
}

// NewSet returns a set of count dice all showing one.
func NewSet(count int) (Set, error) {
	if !ValidCount(count) {
		return Set{}, fmt.Errorf("new set of %d: %w", count, ErrInvalidCount)
	}
	return Set{faces: [MaxCount]int{1, 1, 1}, count: count}, nil
}

// Reset puts the starting set back on the table: MinCount dice, every face
// showing one.
func (s *Set) Reset() {
	*s = Set{faces: [MaxCount]int{1, 1, 1}, count: MinCount}
}

// Count returns the number of dice in play.
func (s Set) Count() int {
	return s.count
}

// Faces returns every retained face, including ones not in play.
func (s Set) Faces() [MaxCount]int {
	return s.faces
}

// Active returns a copy of the faces in play.
func (s Set) Active() []int {
	active := make([]int, s.count)
	copy(active, s.faces[:s.count])
	return active
}

// Total is the sum of the faces in play. It is always derived, never stored.
func (s Set) Total() int {
	return Total(s.faces[:s.count])
}

// Fill overwrites the leading faces with values; trailing faces are kept.
func (s *Set) Fill(values []int) {
	copy(s.faces[:], values)
}

// Resize changes how many dice are in play without touching the faces.
func (s *Set) Resize(count int) error {
	if !ValidCount(count) {
		return fmt.Errorf("resize to %d: %w", count, ErrInvalidCount)
	}
	s.count = count
	return nil
}

// Roll resizes the set and replaces the faces in play with fresh ones.
func (s *Set) Roll(r Roller, count int) error {
	if err := s.Resize(count); err != nil {
		return err
	}
	s.Fill(r.Roll(count))
	return nil
}

func (s Set) String() string {
	return fmt.Sprint(s.Active())
}
