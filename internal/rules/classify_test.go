package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   Label
	}{
		{"two equal dice", []int{3, 3}, Double},
		{"two different dice", []int{2, 5}, None},
		{"three equal dice", []int{4, 4, 4}, Triple},
		{"run in order", []int{1, 2, 3}, Sequence},
		{"run out of order", []int{6, 4, 5}, Sequence},
		{"spaced 2-4-6", []int{2, 4, 6}, Sequence},
		{"spaced 1-2-4", []int{1, 2, 4}, Sequence},
		{"spaced 1-3-5 shuffled", []int{5, 1, 3}, Sequence},
		{"near miss", []int{1, 2, 5}, None},
		{"pair within three is not a double", []int{3, 3, 5}, None},
		{"3-5-6 is not special", []int{3, 5, 6}, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDoesNotReorderInput(t *testing.T) {
	values := []int{6, 4, 5}
	_, err := Classify(values)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4, 5}, values)
}

func TestClassifyRejectsOtherLengths(t *testing.T) {
	for _, values := range [][]int{nil, {1}, {1, 2, 3, 4}} {
		_, err := Classify(values)
		assert.ErrorIs(t, err, ErrInvalidDiceCount)
	}
	assert.Panics(t, func() { MustClassify([]int{1}) })
}

func TestClassifyAllThreeDiceCombinations(t *testing.T) {
	counts := map[Label]int{}
	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			for c := 1; c <= 6; c++ {
				counts[MustClassify([]int{a, b, c})]++
			}
		}
	}
	assert.Equal(t, 6, counts[Triple])
	// four runs and three spaced sets, six orderings each
	assert.Equal(t, 42, counts[Sequence])
	assert.Equal(t, 216-6-42, counts[None])
	assert.Zero(t, counts[Double])
}

func TestLabelStrings(t *testing.T) {
	for _, l := range []Label{None, Double, Triple, Sequence} {
		parsed, err := ParseLabel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	_, err := ParseLabel("quad")
	assert.Error(t, err)

	assert.Empty(t, None.Message())
	assert.Contains(t, Double.Message(), "Roll Again")
	assert.False(t, None.Special())
	assert.True(t, Sequence.Special())
}
