package ledger

import "strconv"

// Stats summarises one player's rolls. It is recomputed from the records on
// every call.
type Stats struct {
	Player   int
	Rolls    int
	Specials int // rolls whose effective label was not none
	Sum      int
}

// Average returns the mean total. ok is false when the player has not
// rolled.
func (s Stats) Average() (avg float64, ok bool) {
	if s.Rolls == 0 {
		return 0, false
	}
	return float64(s.Sum) / float64(s.Rolls), true
}

// AverageString formats the average to one decimal, or "-" with no rolls.
func (s Stats) AverageString() string {
	avg, ok := s.Average()
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// Without returns s as if r had not been rolled.
func (s Stats) Without(r Record) Stats {
	if r.Player != s.Player || s.Rolls == 0 {
		return s
	}
	s.Rolls--
	s.Sum -= r.Total
	if r.Effective.Special() {
		s.Specials--
	}
	return s
}

// StatsFor aggregates the records rolled by player.
func (l *Ledger) StatsFor(player int) Stats {
	stats := Stats{Player: player}
	for _, r := range l.records {
		if r.Player != player {
			continue
		}
		stats.Rolls++
		stats.Sum += r.Total
		if r.Effective.Special() {
			stats.Specials++
		}
	}
	return stats
}

// Summary returns StatsFor every seat in [0, playerCount).
func (l *Ledger) Summary(playerCount int) []Stats {
	out := make([]Stats, playerCount)
	for i := range out {
		out[i].Player = i
	}
	for _, r := range l.records {
		if r.Player < 0 || r.Player >= playerCount {
			continue
		}
		s := &out[r.Player]
		s.Rolls++
		s.Sum += r.Total
		if r.Effective.Special() {
			s.Specials++
		}
	}
	return out
}
