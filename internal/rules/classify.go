package rules

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidDiceCount is returned when asked to classify anything other than
// two or three dice.
var ErrInvalidDiceCount = errors.New("can only classify 2 or 3 dice")

// specialSequences are the spaced triples that also count as sequences.
var specialSequences = [][3]int{
	{1, 2, 4},
	{1, 3, 5},
	{2, 4, 6},
}

// Classify labels the dice in play. It does not look at house rules; use
// Config.Gate for that.
func Classify(values []int) (Label, error) {
	switch len(values) {
	case 2:
		if values[0] == values[1] {
			return Double, nil
		}
		return None, nil
	case 3:
		// Triple is checked first.
		if values[0] == values[1] && values[1] == values[2] {
			return Triple, nil
		}
		if isSequence(values) {
			return Sequence, nil
		}
		return None, nil
	default:
		return None, fmt.Errorf("classify %v: %w", values, ErrInvalidDiceCount)
	}
}

// MustClassify is Classify for callers that have already checked the count.
func MustClassify(values []int) Label {
	label, err := Classify(values)
	if err != nil {
		panic(err)
	}
	return label
}

func isSequence(values []int) bool {
	var sorted [3]int
	copy(sorted[:], values)
	slices.Sort(sorted[:])

	if sorted[0]+1 == sorted[1] && sorted[1]+1 == sorted[2] {
		return true
	}
	return slices.Contains(specialSequences, sorted)
}
