package ledger

import (
	"testing"
	"time"

	"github.com/lox/speeddice/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAppendIsNewestFirst(t *testing.T) {
	l := New()
	l.Append(NewRecord(0, []int{1, 2}, rules.None, t0))
	l.Append(NewRecord(1, []int{3, 3}, rules.Double, t0.Add(time.Second)))
	l.Append(NewRecord(1, []int{4, 5}, rules.None, t0.Add(2*time.Second)))

	records := l.Records()
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Number)
	assert.Equal(t, []int{4, 5}, records[0].Values)
	assert.Equal(t, 1, records[2].Number)
	assert.Equal(t, 0, records[2].Player)

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, records[0], latest)
}

func TestRecordsAreImmutable(t *testing.T) {
	l := New()
	values := []int{2, 3, 4}
	stored := l.Append(NewRecord(0, values, rules.Sequence, t0))

	values[0] = 6
	stored.Values[1] = 6
	l.Records()[0].Values[2] = 6

	got := l.Records()[0]
	assert.Equal(t, []int{2, 3, 4}, got.Values)
	assert.Equal(t, 9, got.Total)
}

func TestTotalMatchesValues(t *testing.T) {
	l := New()
	for _, values := range [][]int{{1, 1}, {6, 6, 6}, {2, 5}, {1, 3, 5}} {
		l.Append(NewRecord(0, values, rules.None, t0))
	}
	l.Append(NewRecord(1, []int{4, 4}, rules.None, t0))

	for _, r := range l.Records() {
		sum := 0
		for _, v := range r.Values {
			sum += v
		}
		assert.Equal(t, sum, r.Total, "record %d", r.Number)
	}
}

func TestStatsFor(t *testing.T) {
	l := New()
	l.Append(NewRecord(0, []int{1, 2}, rules.None, t0))
	l.Append(NewRecord(1, []int{3, 3}, rules.Double, t0))
	l.Append(NewRecord(0, []int{6, 6}, rules.Double, t0))

	s0 := l.StatsFor(0)
	assert.Equal(t, 2, s0.Rolls)
	assert.Equal(t, 1, s0.Specials)
	avg, ok := s0.Average()
	require.True(t, ok)
	assert.InDelta(t, 7.5, avg, 1e-9)
	assert.Equal(t, "7.5", s0.AverageString())

	s2 := l.StatsFor(2)
	assert.Zero(t, s2.Rolls)
	_, ok = s2.Average()
	assert.False(t, ok)
	assert.Equal(t, "-", s2.AverageString())

	summary := l.Summary(3)
	require.Len(t, summary, 3)
	assert.Equal(t, s0, summary[0])
	assert.Equal(t, l.StatsFor(1), summary[1])
	assert.Equal(t, s2, summary[2])
}

func TestStatsWithout(t *testing.T) {
	l := New()
	l.Append(NewRecord(0, []int{1, 2}, rules.None, t0))
	before := l.StatsFor(0)
	latest := l.Append(NewRecord(0, []int{4, 4}, rules.Double, t0))

	assert.Equal(t, before, l.StatsFor(0).Without(latest))
	assert.Equal(t, l.StatsFor(1), l.StatsFor(1).Without(latest), "other players are untouched")
	assert.Equal(t, Stats{Player: 0}, Stats{Player: 0}.Without(latest))
}

func TestClear(t *testing.T) {
	l := New()
	l.Append(NewRecord(0, []int{1, 2}, rules.None, t0))
	l.Clear()

	assert.Zero(t, l.Len())
	assert.Empty(t, l.Records())
	_, ok := l.Latest()
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		s := l.StatsFor(0)
		assert.Zero(t, s.Rolls)
		assert.Zero(t, s.Specials)
		_, ok := s.Average()
		assert.False(t, ok)
	})

	r := l.Append(NewRecord(1, []int{5, 5}, rules.Double, t0))
	assert.Equal(t, 1, r.Number)
}

func TestRecordString(t *testing.T) {
	r := NewRecord(1, []int{3, 3}, rules.Double, t0)
	r.Number = 4
	assert.Equal(t, "#4 player 2: 3 + 3 = 6 (double)", r.String())
}
