// Package rules classifies dice rolls and holds the house rules that decide
// which special rolls the game reacts to.
package rules

import "fmt"

// Label is the special-roll classification of a set of dice. Labels are
// mutually exclusive.
type Label int

const (
	None Label = iota
	Double
	Triple
	Sequence
)

func (l Label) String() string {
	switch l {
	case None:
		return "none"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Special reports whether l is anything other than None.
func (l Label) Special() bool {
	return l != None
}

// Message is the banner shown when a special roll counts.
func (l Label) Message() string {
	switch l {
	case Double:
		return "Double! Roll Again!"
	case Triple:
		return "Triple Threat! Collect from each player!"
	case Sequence:
		return "Sequence! Bonus Activated!"
	default:
		return ""
	}
}

// ParseLabel is the inverse of String.
func ParseLabel(s string) (Label, error) {
	for _, l := range []Label{None, Double, Triple, Sequence} {
		if l.String() == s {
			return l, nil
		}
	}
	return None, fmt.Errorf("unknown roll label %q", s)
}
