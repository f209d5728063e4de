// Package ledger keeps the history of completed rolls for a session.
package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/speeddice/internal/rules"
)

// Record is one completed roll. Records are copied in and out of the ledger
// so a stored record never changes.
type Record struct {
	Number    int         // 1-based position in the session
	Player    int         // zero-based seat that rolled
	Values    []int       // faces in play at roll time
	Total     int         // sum of Values
	Effective rules.Label // label after house rules were applied
	Timestamp time.Time
}

// NewRecord builds a record, computing Total from values.
func NewRecord(player int, values []int, effective rules.Label, at time.Time) Record {
	r := Record{
		Player:    player,
		Values:    slices.Clone(values),
		Effective: effective,
		Timestamp: at,
	}
	for _, v := range values {
		r.Total += v
	}
	return r
}

func (r Record) clone() Record {
	r.Values = slices.Clone(r.Values)
	return r
}

func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d player %d: ", r.Number, r.Player+1)
	for i, v := range r.Values {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	fmt.Fprintf(&b, " = %d", r.Total)
	if r.Effective.Special() {
		fmt.Fprintf(&b, " (%s)", r.Effective)
	}
	return b.String()
}

// Reader is the read-only view of a ledger handed to collaborators.
type Reader interface {
	Len() int
	Records() []Record
	Latest() (Record, bool)
	StatsFor(player int) Stats
	Summary(playerCount int) []Stats
}

// Ledger is an append-only log of rolls, read newest first. Records are
// stored oldest first internally so Append is amortised O(1).
type Ledger struct {
	records []Record
}

var _ Reader = (*Ledger)(nil)

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append stores r as the newest record, numbering it, and returns the stored
// copy.
func (l *Ledger) Append(r Record) Record {
	r = r.clone()
	r.Number = len(l.records) + 1
	l.records = append(l.records, r)
	return r.clone()
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.records = nil
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of every record, newest first.
func (l *Ledger) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		out = append(out, l.records[i].clone())
	}
	return out
}

// Latest returns the newest record.
func (l *Ledger) Latest() (Record, bool) {
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[len(l.records)-1].clone(), true
}
